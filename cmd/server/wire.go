// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"collab_hub_backend/internal/app"
	"collab_hub_backend/internal/config"
	"collab_hub_backend/internal/invite"
	"collab_hub_backend/internal/jobs"
	"collab_hub_backend/internal/platform/database"
	"collab_hub_backend/internal/project"
	"collab_hub_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(ctx context.Context, cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		database.NewGORM,

		// Users
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Invites
		invite.NewGORMRepository,
		invite.NewService,
		invite.NewHandler,

		// Projects
		project.NewGORMRepository,
		project.NewService,
		project.NewHandler,

		// Jobs
		jobs.NewStoreProbe,
		jobs.NewStoreHealthJob,

		// Application Layer
		app.NewWriteGuard,
		app.NewServer,
	)
	return nil, nil, nil
}
