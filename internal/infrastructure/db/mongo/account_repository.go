package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/csemotors/dealership/internal/core/domain"
)

const accountCollection = "accounts"

type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique email index the registration path relies
// on. Call once at startup.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoAccount struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Email          string             `bson:"email"`
	PasswordHash   string             `bson:"password_hash"`
	Role           string             `bson:"role"`
	FailedAttempts int                `bson:"failed_attempts"`
	LockedUntil    *time.Time         `bson:"locked_until,omitempty"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, acct *domain.Account) (*domain.Account, error) {
	doc := mongoAccount{
		FirstName:    acct.FirstName,
		LastName:     acct.LastName,
		Email:        acct.Email,
		PasswordHash: acct.PasswordHash,
		Role:         acct.Role,
		CreatedAt:    acct.CreatedAt.Unix(),
		UpdatedAt:    acct.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *acct
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAccountRepository) UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	update := bson.M{"$set": bson.M{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"updated_at": time.Now().UTC().Unix(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAccount
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *MongoAccountRepository) EmailInUseByOther(ctx context.Context, email, excludingID string) (bool, error) {
	filter := bson.M{"email": email}
	if oid, err := primitive.ObjectIDFromHex(excludingID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

// IncrementFailedAndMaybeLock performs the counter bump and the lock
// decision as a single server-side pipeline update, so two concurrent
// failures can never both observe the pre-increment count.
func (r *MongoAccountRepository) IncrementFailedAndMaybeLock(ctx context.Context, id string, maxAttempts int, lockFor time.Duration) (domain.LockState, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.LockState{}, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()
	until := now.Add(lockFor)

	// Stage 1 increments; stage 2 sees the incremented value, so the lock
	// triggers exactly when the new count reaches the threshold.
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"failed_attempts": bson.M{"$add": bson.A{bson.M{"$ifNull": bson.A{"$failed_attempts", 0}}, 1}},
		}}},
		{{Key: "$set", Value: bson.M{
			"locked_until": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{"$failed_attempts", maxAttempts}},
				until,
				"$locked_until",
			}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAccount
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.LockState{}, domain.ErrAccountNotFound
		}
		return domain.LockState{}, fmt.Errorf("increment failed attempts: %w", err)
	}
	return domain.LockState{FailedAttempts: ma.FailedAttempts, LockedUntil: ma.LockedUntil}, nil
}

func (r *MongoAccountRepository) ResetFailedAttempts(ctx context.Context, id string) error {
	return r.clearLock(ctx, id)
}

func (r *MongoAccountRepository) ForceUnlock(ctx context.Context, id string) error {
	return r.clearLock(ctx, id)
}

func (r *MongoAccountRepository) clearLock(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{
		"$set":   bson.M{"failed_attempts": 0},
		"$unset": bson.M{"locked_until": ""},
	})
	if err != nil {
		return fmt.Errorf("clear lock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ListLocked returns accounts whose lock is still in force, most recently
// locked first.
func (r *MongoAccountRepository) ListLocked(ctx context.Context) ([]*domain.Account, error) {
	filter := bson.M{"locked_until": bson.M{"$gt": time.Now().UTC()}}
	opts := options.Find().SetSort(bson.D{{Key: "locked_until", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list locked accounts: %w", err)
	}
	defer cur.Close(ctx)

	var accounts []*domain.Account
	for cur.Next(ctx) {
		var ma mongoAccount
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list locked accounts: %w", err)
	}
	return accounts, nil
}

func (ma *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:             ma.ID.Hex(),
		FirstName:      ma.FirstName,
		LastName:       ma.LastName,
		Email:          ma.Email,
		PasswordHash:   ma.PasswordHash,
		Role:           ma.Role,
		FailedAttempts: ma.FailedAttempts,
		LockedUntil:    ma.LockedUntil,
		CreatedAt:      unixToTime(ma.CreatedAt),
		UpdatedAt:      unixToTime(ma.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
