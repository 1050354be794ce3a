package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogAuditCollection collection carrying one document per catalog mutation.
const CatalogAuditCollection = "catalog_audit"

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// EnsureCatalogAuditCollection creates the audit collection with its JSON
// schema validator and the module_code index. Idempotent: an already
// existing collection is left untouched.
func (cm *CollectionManager) EnsureCatalogAuditCollection(ctx context.Context) error {
	names, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, name := range names {
		if name == CatalogAuditCollection {
			return nil
		}
	}

	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"event_id", "module_code", "action", "occurred_at"},
			"properties": bson.M{
				"event_id": bson.M{
					"bsonType":    "string",
					"description": "Unique event identifier (UUID)",
				},
				"module_code": bson.M{
					"bsonType":    "string",
					"description": "Catalog module the mutation applied to",
				},
				"action": bson.M{
					"bsonType":    "string",
					"enum":        []string{"create", "update", "soft_delete", "reactivate"},
					"description": "Mutation kind",
				},
				"actor": bson.M{
					"bsonType":    "string",
					"description": "Caller identity, empty when the admin guard is disabled",
				},
				"from_version": bson.M{
					"bsonType":    "int",
					"description": "Module version before the mutation (0 on create)",
				},
				"to_version": bson.M{
					"bsonType":    "int",
					"description": "Module version after the mutation",
				},
				"occurred_at": bson.M{
					"bsonType":    "date",
					"description": "Mutation timestamp",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.CreateCollection(ctx, CatalogAuditCollection, opts); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", CatalogAuditCollection, err)
	}

	return cm.client.CreateIndex(ctx, CatalogAuditCollection,
		bson.D{{Key: "module_code", Value: 1}, {Key: "occurred_at", Value: -1}},
		options.Index().SetUnique(false))
}
