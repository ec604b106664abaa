package router

import (
	"github.com/cineview/backend/internal/application"
	"github.com/cineview/backend/internal/container"
	pginfra "github.com/cineview/backend/internal/infrastructure/postgres"
	handlers "github.com/cineview/backend/internal/interface/http"
	"github.com/cineview/backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	userSvc := application.NewUserService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
	)
	catalogSvc := application.NewCatalogService(
		container.GetTMDB(),
		repo,
		container.GetLogger(),
	)

	authHandler := handlers.NewAuthHandler(userSvc, container.GetLogger())
	userHandler := handlers.NewUserHandler(userSvc, catalogSvc, container.GetLogger())
	movieHandler := handlers.NewMovieHandler(catalogSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewMovieModule(movieHandler, container.GetJWT()))
}
