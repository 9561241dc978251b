package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/farmrakshaa/farm-guardian/cmd/app/commands"
	"github.com/farmrakshaa/farm-guardian/internal/app"
	"github.com/farmrakshaa/farm-guardian/internal/config"
	"github.com/farmrakshaa/farm-guardian/internal/database"
	userRepository "github.com/farmrakshaa/farm-guardian/internal/user/repository"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "import-legacy-users",
			Usage: "Copy accounts from the legacy MongoDB database into the SQL user store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "mongo-uri",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Connection URI of the legacy MongoDB server",
				},
				&cli.StringFlag{
					Name:    "mongo-db",
					Aliases: []string{"d"},
					Value:   "farm_guardian",
					Usage:   "Name of the legacy MongoDB database",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				importUseCase, err := container.ImportUseCase()
				if err != nil {
					return err
				}

				legacyDB, err := database.ConnectMongo(ctx, database.MongoConfig{
					URI:            cmd.String("mongo-uri"),
					Database:       cmd.String("mongo-db"),
					ConnectTimeout: 10 * time.Second,
				})
				if err != nil {
					return fmt.Errorf("failed to connect to legacy database: %w", err)
				}
				defer func() { _ = legacyDB.Client().Disconnect(context.Background()) }()

				return commands.RunImportLegacyUsers(
					ctx,
					importUseCase,
					userRepository.NewLegacyUserSource(legacyDB),
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
