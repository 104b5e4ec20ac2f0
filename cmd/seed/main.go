package main

import (
	"context"
	"time"

	"providercard-service/internal/app/config"
	"providercard-service/internal/app/drivers/database"
	"providercard-service/internal/app/drivers/logger"
	"providercard-service/internal/app/models"
	"providercard-service/internal/app/services/core/registry"
	"providercard-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
)

type seedEntry struct {
	OrganizationName string
	Endpoint         string
	AuthType         string
	Notes            string
}

// majorPayerEndpoints are the publicly documented FHIR provider directory
// endpoints the CMS interoperability mandate requires payers to expose.
var majorPayerEndpoints = []seedEntry{
	{
		OrganizationName: "UnitedHealthcare",
		Endpoint:         "https://api.uhc.com/fhir/provider-directory/v1",
		AuthType:         constvars.AuthTypeOAuth,
		Notes:            "Requires registration at apimarketplace.uhcprovider.com. Supports FHIR R4 and DaVinci PDEX Plan Net IG.",
	},
	{
		OrganizationName: "Elevance Health (Anthem)",
		Endpoint:         "https://totalview.healthos.elevancehealth.com/resources/registered/anthem/api/v1/fhir",
		AuthType:         constvars.AuthTypeNone,
		Notes:            "Public endpoint for Provider Directory. Multiple brand-specific endpoints available.",
	},
	{
		OrganizationName: "Centene Corporation",
		Endpoint:         "https://fhir.centene.com/provider-directory/v1",
		AuthType:         constvars.AuthTypeNone,
		Notes:            "Operates multiple brands including Ambetter, Health Net, Fidelis Care. Primarily Medicaid and Marketplace plans.",
	},
	{
		OrganizationName: "Humana",
		Endpoint:         "https://fhir.humana.com/api",
		AuthType:         constvars.AuthTypeNone,
		Notes:            "Public FHIR endpoints. Also supports Organization, PractitionerRole, Location, InsurancePlan resources.",
	},
	{
		OrganizationName: "Aetna (CVS Health)",
		Endpoint:         "https://api.aetna.com/fhir/provider-directory/v1",
		AuthType:         constvars.AuthTypeOAuth,
		Notes:            "Requires registration at developerportal.aetna.com. Covers Medicare and Medicaid networks.",
	},
	{
		OrganizationName: "Kaiser Permanente",
		Endpoint:         "https://api.kp.org/fhir/provider-directory/v1",
		AuthType:         constvars.AuthTypeNone,
		Notes:            "Integrated health system with insurance. Regional coverage in select states.",
	},
	{
		OrganizationName: "Cigna Healthcare",
		Endpoint:         "https://fhir.cigna.com/ProviderDirectory/v1",
		AuthType:         constvars.AuthTypeOAuth,
		Notes:            "Developer sandbox available at developer.cigna.com. Requires client credentials.",
	},
	{
		OrganizationName: "Health Care Service Corporation (BCBS)",
		Endpoint:         "https://api.hcsc.com/fhir/provider-directory/v1",
		AuthType:         constvars.AuthTypeNone,
		Notes:            "Operates BCBS plans in Illinois, Texas, New Mexico, Oklahoma, and Montana.",
	},
	{
		OrganizationName: "Molina Healthcare",
		Endpoint:         "https://fhir.molinahealthcare.com/provider-directory/v1",
		AuthType:         constvars.AuthTypeNone,
		Notes:            "Focuses on Medicaid, Medicare, and Marketplace plans.",
	},
}

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	defer mongoClient.Disconnect(context.Background())

	registryRepository := registry.NewRegistryMongoRepository(mongoClient, driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for _, seed := range majorPayerEndpoints {
		existing, err := registryRepository.FindByNaturalKey(ctx, seed.OrganizationName, seed.Endpoint)
		if err != nil {
			log.WithError(err).WithField("organization", seed.OrganizationName).Error("lookup failed")
			continue
		}
		if existing != nil {
			log.WithField("organization", seed.OrganizationName).Info("already present, skipping")
			continue
		}

		entry := &models.RegistryEntry{
			OrganizationName:         seed.OrganizationName,
			Endpoint:                 seed.Endpoint,
			OrganizationType:         constvars.OrganizationTypeInsurancePayer,
			APIType:                  constvars.APITypeFHIR,
			AuthType:                 seed.AuthType,
			RequiresAuth:             seed.AuthType != constvars.AuthTypeNone,
			SupportsIdentifierSearch: true,
			Status:                   constvars.RegistryStatusDiscovered,
			DiscoveredBy:             constvars.DiscoveredByManual,
			Notes:                    seed.Notes,
		}
		if _, err := registryRepository.Create(ctx, entry); err != nil {
			log.WithError(err).WithField("organization", seed.OrganizationName).Error("seed failed")
			continue
		}
		seeded++
		log.WithFields(logrus.Fields{
			"organization": seed.OrganizationName,
			"endpoint":     seed.Endpoint,
		}).Info("seeded registry entry")
	}

	log.WithField("seeded_count", seeded).Info("registry seed completed")
}
