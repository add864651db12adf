package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csemotors/dealership/internal/core/domain"
)

const auditCollection = "security_events"

// MongoAuditRepository persists the account security trail (failed logins,
// lockouts, operator unlocks).
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoSecurityEvent struct {
	AccountID string `bson:"account_id"`
	Email     string `bson:"email,omitempty"`
	Kind      string `bson:"kind"`
	Detail    string `bson:"detail,omitempty"`
	At        int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.SecurityEvent) error {
	doc := mongoSecurityEvent{
		AccountID: event.AccountID,
		Email:     event.Email,
		Kind:      event.Kind,
		Detail:    event.Detail,
		At:        event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}
