package baseline

import (
	"context"
	"time"

	"providercard-service/internal/app/contracts"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"
	"providercard-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BaselineMongoRepository struct {
	Collection *mongo.Collection
}

func NewBaselineMongoRepository(db *mongo.Client, dbName string) contracts.BaselineRepository {
	return &BaselineMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBaselineRecords),
	}
}

func (r *BaselineMongoRepository) FindByNPI(ctx context.Context, npi string) (*models.BaselineRecord, error) {
	var record models.BaselineRecord
	err := r.Collection.FindOne(ctx, bson.M{"npi": npi}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &record, nil
}

func (r *BaselineMongoRepository) Upsert(ctx context.Context, record *models.BaselineRecord) error {
	now := time.Now().UTC()
	record.UpdatedAt = now

	filter := bson.M{"npi": record.NPI}
	update := bson.M{
		"$set": bson.M{
			"first_name":  record.FirstName,
			"middle_name": record.MiddleName,
			"last_name":   record.LastName,
			"suffix":      record.Suffix,
			"street":      record.Street,
			"city":        record.City,
			"state":       record.State,
			"postal_code": record.PostalCode,
			"phone":       record.Phone,
			"specialties": record.Specialties,
			"updated_at":  record.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"npi":        record.NPI,
			"created_at": now,
		},
	}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
