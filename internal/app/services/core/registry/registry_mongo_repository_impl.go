package registry

import (
	"context"
	"time"

	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RegistryMongoRepository struct {
	Collection *mongo.Collection
}

func NewRegistryMongoRepository(db *mongo.Client, dbName string) contracts.RegistryRepository {
	return &RegistryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRegistryEntries),
	}
}

func (r *RegistryMongoRepository) FindByID(ctx context.Context, entryID string) (*models.RegistryEntry, error) {
	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var entry models.RegistryEntry
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &entry, nil
}

func (r *RegistryMongoRepository) FindByNaturalKey(ctx context.Context, organizationName, endpoint string) (*models.RegistryEntry, error) {
	var entry models.RegistryEntry
	filter := bson.M{
		"organization_name": organizationName,
		"endpoint":          endpoint,
	}
	err := r.Collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &entry, nil
}

func (r *RegistryMongoRepository) FindAll(ctx context.Context, status string, page, pageSize int) ([]models.RegistryEntry, int, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "organization_name", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	entries := []models.RegistryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, int(total), nil
}

// FindEligible returns entries matching the criteria, sorted by organization
// name so fan-out results come back in a stable order.
func (r *RegistryMongoRepository) FindEligible(ctx context.Context, criteria contracts.EligibilityCriteria) ([]models.RegistryEntry, error) {
	filter := bson.M{
		"status":            bson.M{"$in": criteria.Statuses},
		"organization_type": criteria.OrganizationType,
		"requires_auth":     criteria.RequiresAuth,
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "organization_name", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	entries := []models.RegistryEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entries, nil
}

func (r *RegistryMongoRepository) Create(ctx context.Context, entry *models.RegistryEntry) (*models.RegistryEntry, error) {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	result, err := r.Collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	entry.ID = result.InsertedID.(primitive.ObjectID)
	return entry, nil
}

func (r *RegistryMongoRepository) Update(ctx context.Context, entry *models.RegistryEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	filter := bson.M{"_id": entry.ID}
	update := bson.M{"$set": bson.M{
		"organization_type":          entry.OrganizationType,
		"api_type":                   entry.APIType,
		"auth_type":                  entry.AuthType,
		"status":                     entry.Status,
		"requires_auth":              entry.RequiresAuth,
		"supports_identifier_search": entry.SupportsIdentifierSearch,
		"supports_name_search":       entry.SupportsNameSearch,
		"notes":                      entry.Notes,
		"updated_at":                 entry.UpdatedAt,
	}}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *RegistryMongoRepository) RecordProbeSuccess(ctx context.Context, entryID string, statusCode int, latencyMs int64, probedAt time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	var current models.RegistryEntry
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&current)
	if err != nil && err != mongo.ErrNoDocuments {
		return exceptions.ErrMongoDBFindDocument(err)
	}
	update := bson.M{
		"$set": bson.M{
			"last_probe_at":          probedAt,
			"last_probe_status_code": statusCode,
			"last_probe_latency_ms":  latencyMs,
			"last_success_at":        probedAt,
			"avg_response_time_ms":   foldAvgResponseTime(current.AvgResponseTimeMs, latencyMs),
			"consecutive_failures":   0,
			"updated_at":             time.Now().UTC(),
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	// a reachable endpoint rejoins the pool as active; verified and
	// inactive entries keep their operator-assigned status
	promoteFilter := bson.M{
		"_id": objectID,
		"status": bson.M{"$in": []string{
			constvars.RegistryStatusDiscovered,
			constvars.RegistryStatusTesting,
			constvars.RegistryStatusTested,
			constvars.RegistryStatusError,
		}},
	}
	promoteUpdate := bson.M{"$set": bson.M{"status": constvars.RegistryStatusActive}}
	_, err = r.Collection.UpdateOne(ctx, promoteFilter, promoteUpdate)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// foldAvgResponseTime blends the latest probe latency into the running
// average, seeding it with the first observation.
func foldAvgResponseTime(current, latencyMs int64) int64 {
	if current <= 0 {
		return latencyMs
	}
	return (current + latencyMs) / 2
}

// RecordProbeFailure increments the failure counter and flips the entry to
// error status once the counter reaches the threshold.
func (r *RegistryMongoRepository) RecordProbeFailure(ctx context.Context, entryID string, statusCode int, probedAt time.Time, failureThreshold int) error {
	objectID, err := primitive.ObjectIDFromHex(entryID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{
		"$set": bson.M{
			"last_probe_at":          probedAt,
			"last_probe_status_code": statusCode,
			"updated_at":             time.Now().UTC(),
		},
		"$inc": bson.M{"consecutive_failures": 1},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	statusUpdate := bson.M{"$set": bson.M{"status": constvars.RegistryStatusError}}
	statusFilter := bson.M{
		"_id":                  objectID,
		"consecutive_failures": bson.M{"$gte": failureThreshold},
	}
	_, err = r.Collection.UpdateOne(ctx, statusFilter, statusUpdate)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
