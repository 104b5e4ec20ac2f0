package fhir

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/models"
	"providercard-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const testNPI = "1234567890"

const practitionerBundle = `{
	"resourceType": "Bundle",
	"type": "searchset",
	"total": 1,
	"entry": [{
		"resource": {
			"resourceType": "Practitioner",
			"id": "prac-1",
			"meta": {"lastUpdated": "2024-03-01T12:00:00Z"},
			"identifier": [{"system": "http://hl7.org/fhir/sid/us-npi", "value": "1234567890"}],
			"name": [{"use": "official", "family": "Smith", "given": ["Jane", "Q"], "prefix": ["Dr."], "suffix": ["MD"]}],
			"gender": "female",
			"communication": [
				{"coding": [{"system": "urn:ietf:bcp:47", "code": "en", "display": "English"}]},
				{"text": "Spanish"}
			],
			"telecom": [{"system": "phone", "value": "555-0142"}],
			"address": [{"use": "work", "line": ["123 Main St"], "city": "Springfield", "state": "IL", "postalCode": "62704"}]
		}
	}]
}`

const roleBundle = `{
	"resourceType": "Bundle",
	"type": "searchset",
	"total": 2,
	"entry": [{
		"resource": {
			"resourceType": "PractitionerRole",
			"id": "role-1",
			"practitioner": {"reference": "Practitioner/prac-1"},
			"specialty": [
				{"coding": [{"system": "http://nucc.org/provider-taxonomy", "code": "207Q00000X", "display": "Family Medicine"}]},
				{"coding": [{"system": "http://nucc.org/provider-taxonomy", "code": "207Q00000X", "display": "Family Medicine"}]},
				{"coding": [{}]}
			],
			"telecom": [{"system": "phone", "value": "555-0199"}],
			"extension": [
				{
					"url": "http://hl7.org/fhir/us/davinci-pdex-plan-net/StructureDefinition/network-reference",
					"valueReference": {"reference": "Organization/net-1", "display": "Gold PPO"}
				},
				{
					"url": "http://hl7.org/fhir/us/davinci-pdex-plan-net/StructureDefinition/newpatients",
					"extension": [{
						"url": "acceptingPatients",
						"valueCodeableConcept": {"coding": [{"code": "newpt"}]}
					}]
				}
			]
		}
	}, {
		"resource": {
			"resourceType": "PractitionerRole",
			"id": "role-2",
			"practitioner": {"reference": "Practitioner/prac-1"},
			"extension": [
				{
					"url": "http://hl7.org/fhir/us/davinci-pdex-plan-net/StructureDefinition/network-reference",
					"valueReference": {"reference": "Organization/net-1", "display": "Gold PPO"}
				}
			]
		}
	}]
}`

func newTestClient() *directorySearchClient {
	internalConfig := &config.InternalConfig{
		Search: config.Search{
			SourceTimeoutInSeconds:     2,
			RoleLookupTimeoutInSeconds: 1,
		},
	}
	return NewDirectorySearchClient(internalConfig, zap.NewNop()).(*directorySearchClient)
}

func newTestEntry(endpoint string) *models.RegistryEntry {
	return &models.RegistryEntry{
		ID:               primitive.NewObjectID(),
		OrganizationName: "Test Payer",
		Endpoint:         endpoint,
		Status:           constvars.RegistryStatusActive,
	}
}

func TestSearchByNPI(t *testing.T) {
	t.Run("success with role merge", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/Practitioner":
				assert.Equal(t, "http://hl7.org/fhir/sid/us-npi|"+testNPI, r.URL.Query().Get("identifier"))
				w.Write([]byte(practitionerBundle))
			case "/PractitionerRole":
				assert.Equal(t, "prac-1", r.URL.Query().Get("practitioner"))
				w.Write([]byte(roleBundle))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusSuccess, result.Status)
		assert.NotNil(t, result.Record)

		record := result.Record
		assert.Equal(t, testNPI, record.NPI)
		assert.Equal(t, "Jane", record.FirstName)
		assert.Equal(t, "Q", record.MiddleName)
		assert.Equal(t, "Smith", record.LastName)
		assert.Equal(t, "Dr.", record.Prefix)
		assert.Equal(t, "MD", record.Suffix)
		assert.Equal(t, "female", record.Gender)
		assert.Equal(t, []string{"English", "Spanish"}, record.Languages)
		assert.Equal(t, "2024-03-01T12:00:00Z", record.LastUpdated)

		assert.Len(t, record.Addresses, 1)
		assert.Equal(t, "123 Main St", record.Addresses[0].Line)
		assert.Equal(t, "Springfield", record.Addresses[0].City)

		assert.ElementsMatch(t, []string{"555-0142", "555-0199"}, record.PhoneNumbers)

		// duplicated specialty codes collapse to one; the coding with
		// neither code nor display is dropped
		assert.Len(t, record.Specialties, 1)
		assert.Equal(t, "207Q00000X", record.Specialties[0].Code)

		// same network referenced from both roles
		assert.Len(t, record.Networks, 1)
		assert.Equal(t, "Organization/net-1", record.Networks[0].Reference)

		if assert.NotNil(t, record.AcceptingNewPatients) {
			assert.True(t, *record.AcceptingNewPatients)
		}
	})

	t.Run("record collections are never nil", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Practitioner" {
				w.Write([]byte(`{
					"resourceType": "Bundle",
					"entry": [{"resource": {
						"resourceType": "Practitioner",
						"id": "prac-2",
						"identifier": [{"system": "http://hl7.org/fhir/sid/us-npi", "value": "1234567890"}]
					}}]
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusSuccess, result.Status)
		assert.NotNil(t, result.Record.Specialties)
		assert.NotNil(t, result.Record.Languages)
		assert.NotNil(t, result.Record.Addresses)
		assert.NotNil(t, result.Record.PhoneNumbers)
		assert.NotNil(t, result.Record.Networks)
		assert.Nil(t, result.Record.AcceptingNewPatients)
	})

	t.Run("bare practitioner resource body accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Practitioner" {
				w.Write([]byte(`{
					"resourceType": "Practitioner",
					"id": "prac-3",
					"identifier": [{"system": "http://hl7.org/fhir/sid/us-npi", "value": "1234567890"}],
					"name": [{"family": "Jones", "given": ["Pat"]}]
				}`))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusSuccess, result.Status)
		assert.Equal(t, "Jones", result.Record.LastName)
	})

	t.Run("any 2xx status is treated as success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Practitioner" {
				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(practitionerBundle))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusSuccess, result.Status)
		assert.Equal(t, "Smith", result.Record.LastName)
	})

	t.Run("empty bundle is not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"resourceType": "Bundle", "type": "searchset", "total": 0}`))
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusNotFound, result.Status)
		assert.Nil(t, result.Record)
	})

	t.Run("401 maps to auth required", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusAuthRequired, result.Status)
	})

	t.Run("403 maps to auth required", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusAuthRequired, result.Status)
	})

	t.Run("404 maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusNotFound, result.Status)
	})

	t.Run("server error maps to error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusError, result.Status)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("malformed body maps to error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"resourceType": "Bundle", "entry": [`))
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusError, result.Status)
	})

	t.Run("slow source reports a timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(1500 * time.Millisecond)
			w.Write([]byte(practitionerBundle))
		}))
		defer server.Close()

		internalConfig := &config.InternalConfig{
			Search: config.Search{
				SourceTimeoutInSeconds:     1,
				RoleLookupTimeoutInSeconds: 1,
			},
		}
		client := NewDirectorySearchClient(internalConfig, zap.NewNop()).(*directorySearchClient)
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusError, result.Status)
		assert.Equal(t, "timeout (1s)", result.Error)
	})

	t.Run("unreachable endpoint maps to error", func(t *testing.T) {
		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry("http://127.0.0.1:1"), testNPI)

		assert.Equal(t, constvars.SourceStatusError, result.Status)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("role lookup failure still returns demographics", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/Practitioner" {
				w.Write([]byte(practitionerBundle))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient()
		result := client.SearchByNPI(context.Background(), newTestEntry(server.URL), testNPI)

		assert.Equal(t, constvars.SourceStatusSuccess, result.Status)
		assert.Equal(t, "Smith", result.Record.LastName)
		assert.Empty(t, result.Record.Networks)
	})
}
