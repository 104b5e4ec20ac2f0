package routers

import (
	"providercard-service/internal/app/delivery/http/controllers"
	"providercard-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSearchRoutes(router chi.Router, middlewares *middlewares.Middlewares, searchController *controllers.SearchController) {
	router.With(middlewares.CallerIdentity).Post("/", searchController.Search)
}
