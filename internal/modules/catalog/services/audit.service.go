package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adrian-moloca/dental-sub014/internal/infrastructure/database/mongodb"
)

// Audit actions recorded for catalog mutations.
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionSoftDelete = "soft_delete"
	AuditActionReactivate = "reactivate"
)

// CatalogAuditEvent is one catalog mutation as persisted in MongoDB.
type CatalogAuditEvent struct {
	EventID     string    `bson:"event_id" json:"event_id"`
	ModuleCode  string    `bson:"module_code" json:"module_code"`
	Action      string    `bson:"action" json:"action"`
	Actor       string    `bson:"actor" json:"actor"`
	FromVersion int       `bson:"from_version" json:"from_version"`
	ToVersion   int       `bson:"to_version" json:"to_version"`
	OccurredAt  time.Time `bson:"occurred_at" json:"occurred_at"`
}

// CatalogAuditService appends and reads the catalog mutation trail.
type CatalogAuditService struct {
	mongo *mongodb.Client
}

func NewCatalogAuditService(mongo *mongodb.Client) *CatalogAuditService {
	return &CatalogAuditService{mongo: mongo}
}

// Record appends one mutation event. Fills EventID and OccurredAt when
// the caller left them empty.
func (s *CatalogAuditService) Record(ctx context.Context, event CatalogAuditEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	collection := s.mongo.Collection(mongodb.CatalogAuditCollection)
	if _, err := collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to record catalog audit event: %w", err)
	}
	return nil
}

// ListByModule returns the most recent events for one module code.
func (s *CatalogAuditService) ListByModule(ctx context.Context, code ModuleCode, limit int64) ([]CatalogAuditEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	collection := s.mongo.Collection(mongodb.CatalogAuditCollection)

	opts := options.Find().
		SetSort(bson.D{{Key: "occurred_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{"module_code": code.String()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog audit events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]CatalogAuditEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode catalog audit events: %w", err)
	}
	return events, nil
}
