package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/csemotors/dealership/internal/core/domain"
)

const (
	classificationCollection = "classifications"
	vehicleCollection        = "vehicles"
)

type MongoInventoryRepository struct {
	classifications *mongo.Collection
	vehicles        *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *MongoInventoryRepository {
	return &MongoInventoryRepository{
		classifications: db.Collection(classificationCollection),
		vehicles:        db.Collection(vehicleCollection),
	}
}

// EnsureIndexes creates the unique classification-name index. Call once at
// startup.
func (r *MongoInventoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.classifications.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create classification index: %w", err)
	}
	return nil
}

type mongoClassification struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type mongoVehicle struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ClassificationID string             `bson:"classification_id"`
	Make             string             `bson:"make"`
	Model            string             `bson:"model"`
	Year             int                `bson:"year"`
	Description      string             `bson:"description"`
	Image            string             `bson:"image"`
	Thumbnail        string             `bson:"thumbnail"`
	Price            float64            `bson:"price"`
	Miles            int                `bson:"miles"`
	Color            string             `bson:"color"`
	CreatedAt        int64              `bson:"created_at"`
	UpdatedAt        int64              `bson:"updated_at"`
}

func (r *MongoInventoryRepository) Classifications(ctx context.Context) ([]*domain.Classification, error) {
	cur, err := r.classifications.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Classification
	for cur.Next(ctx) {
		var mc mongoClassification
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode classification: %w", err)
		}
		out = append(out, &domain.Classification{ID: mc.ID.Hex(), Name: mc.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) InsertClassification(ctx context.Context, name string) (*domain.Classification, error) {
	res, err := r.classifications.InsertOne(ctx, mongoClassification{Name: name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClassificationExists
		}
		return nil, fmt.Errorf("insert classification: %w", err)
	}

	created := &domain.Classification{Name: name}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return created, nil
}

func (r *MongoInventoryRepository) VehiclesByClassification(ctx context.Context, classificationID string) ([]*domain.Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "make", Value: 1}, {Key: "model", Value: 1}})
	cur, err := r.vehicles.Find(ctx, bson.M{"classification_id": classificationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Vehicle
	for cur.Next(ctx) {
		var mv mongoVehicle
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode vehicle: %w", err)
		}
		out = append(out, mv.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) FindVehicleByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.vehicles.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *MongoInventoryRepository) InsertVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	doc := vehicleToMongo(v)
	res, err := r.vehicles.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}

	created := *v
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoInventoryRepository) UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(v.ID)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	update := bson.M{"$set": bson.M{
		"classification_id": v.ClassificationID,
		"make":              v.Make,
		"model":             v.Model,
		"year":              v.Year,
		"description":       v.Description,
		"image":             v.Image,
		"thumbnail":         v.Thumbnail,
		"price":             v.Price,
		"miles":             v.Miles,
		"color":             v.Color,
		"updated_at":        v.UpdatedAt.Unix(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mv mongoVehicle
	if err := r.vehicles.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return mv.toDomain(), nil
}

func vehicleToMongo(v *domain.Vehicle) mongoVehicle {
	return mongoVehicle{
		ClassificationID: v.ClassificationID,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            v.Price,
		Miles:            v.Miles,
		Color:            v.Color,
		CreatedAt:        v.CreatedAt.Unix(),
		UpdatedAt:        v.UpdatedAt.Unix(),
	}
}

func (mv *mongoVehicle) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               mv.ID.Hex(),
		ClassificationID: mv.ClassificationID,
		Make:             mv.Make,
		Model:            mv.Model,
		Year:             mv.Year,
		Description:      mv.Description,
		Image:            mv.Image,
		Thumbnail:        mv.Thumbnail,
		Price:            mv.Price,
		Miles:            mv.Miles,
		Color:            mv.Color,
		CreatedAt:        unixToTime(mv.CreatedAt),
		UpdatedAt:        unixToTime(mv.UpdatedAt),
	}
}
