package routers

import (
	"providercard-service/internal/app/delivery/http/controllers"
	"providercard-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachRegistryRoutes(router chi.Router, middlewares *middlewares.Middlewares, registryController *controllers.RegistryController) {
	router.Get("/", registryController.FindAll)

	// mutations require the superadmin API key
	router.With(middlewares.APIKeyAuth).Post("/", registryController.Upsert)
	router.With(middlewares.APIKeyAuth).Post("/{entryID}/probe", registryController.EnqueueProbe)
	router.With(middlewares.APIKeyAuth).Post("/{entryID}/deactivate", registryController.Deactivate)
}
