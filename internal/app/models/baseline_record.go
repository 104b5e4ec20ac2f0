package models

import (
	"time"

	"providercard-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaselineRecord is the trusted roster entry a provider's federated results
// are reconciled against, keyed by NPI.
type BaselineRecord struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	NPI         string             `json:"npi" bson:"npi"`
	FirstName   string             `json:"first_name" bson:"first_name"`
	MiddleName  string             `json:"middle_name,omitempty" bson:"middle_name,omitempty"`
	LastName    string             `json:"last_name" bson:"last_name"`
	Suffix      string             `json:"suffix,omitempty" bson:"suffix,omitempty"`
	Street      string             `json:"street,omitempty" bson:"street,omitempty"`
	City        string             `json:"city,omitempty" bson:"city,omitempty"`
	State       string             `json:"state,omitempty" bson:"state,omitempty"`
	PostalCode  string             `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Specialties []string           `json:"specialties,omitempty" bson:"specialties,omitempty"`
	LastUpdated string             `json:"last_updated,omitempty" bson:"last_updated,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// ConvertIntoCanonical maps the baseline into the canonical record shape so
// it can be compared field-for-field with source records.
func (b *BaselineRecord) ConvertIntoCanonical() *responses.CanonicalProviderRecord {
	record := responses.NewCanonicalProviderRecord(b.NPI)
	record.FirstName = b.FirstName
	record.MiddleName = b.MiddleName
	record.LastName = b.LastName
	record.Suffix = b.Suffix
	if b.Street != "" || b.City != "" {
		record.Addresses = append(record.Addresses, responses.Address{
			Line:       b.Street,
			City:       b.City,
			State:      b.State,
			PostalCode: b.PostalCode,
		})
	}
	if b.Phone != "" {
		record.PhoneNumbers = append(record.PhoneNumbers, b.Phone)
	}
	for _, code := range b.Specialties {
		record.Specialties = append(record.Specialties, responses.Specialty{Code: code})
	}
	record.LastUpdated = b.LastUpdated
	return record
}
