package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/farmrakshaa/farm-guardian/cmd/app/commands"
	"github.com/farmrakshaa/farm-guardian/internal/app"
	"github.com/farmrakshaa/farm-guardian/internal/config"
)

func getFarmCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "coverage",
			Usage: "Show vaccination coverage for a farmer's livestock",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "user-id",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "User ID (UUID) of the farmer",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunVaccinationCoverage(
					ctx,
					userUseCase,
					commands.DefaultIO().Writer,
					cmd.String("user-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "compliance",
			Usage: "Show compliance checklists and mark items complete",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "complete",
					Aliases: []string{"c"},
					Usage:   "Item to mark done, as checklist/item",
				},
				langFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				complianceUseCase, err := container.ComplianceUseCase()
				if err != nil {
					return err
				}

				return commands.RunCompliance(
					ctx,
					complianceUseCase,
					commands.DefaultIO().Writer,
					cmd.String("complete"),
					cmd.String("lang"),
					cmd.String("format"),
				)
			},
		},
	}
}
