package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/farmrakshaa/farm-guardian/cmd/app/commands"
	"github.com/farmrakshaa/farm-guardian/internal/app"
	assessmentUseCase "github.com/farmrakshaa/farm-guardian/internal/assessment/usecase"
	"github.com/farmrakshaa/farm-guardian/internal/config"
)

func answerFlag(usage string) cli.Flag {
	return &cli.StringMapFlag{
		Name:    "answer",
		Aliases: []string{"a"},
		Usage:   usage,
	}
}

func farmNameFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "farm-name",
		Aliases: []string{"n"},
		Usage:   "Farm name stored with a saved assessment",
	}
}

func saveFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "save",
		Aliases: []string{"s"},
		Usage:   "Keep the result in the local assessment history",
	}
}

func withAssessmentUseCase(
	ctx context.Context,
	fn func(container *app.Container, useCase assessmentUseCase.UseCase) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.AssessmentUseCase()
	if err != nil {
		return err
	}
	return fn(container, useCase)
}

func getAssessmentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "risk-check",
			Usage: "Score the six-question disease risk checker",
			Flags: []cli.Flag{
				answerFlag("Answer as question=score, repeatable (see --questions)"),
				&cli.StringFlag{
					Name:    "region",
					Aliases: []string{"r"},
					Value:   "Punjab",
					Usage:   "State used for the regional modifier",
				},
				&cli.StringFlag{
					Name:  "system",
					Value: "poultry",
					Usage: "Production system: 'poultry', 'pigs' or 'mixed'",
				},
				&cli.BoolFlag{
					Name:  "questions",
					Usage: "List questions and option scores instead of scoring",
				},
				farmNameFlag(),
				saveFlag(),
				langFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if cmd.Bool("questions") {
					return commands.RunListRiskQuestions(commands.DefaultIO().Writer, cmd.String("lang"))
				}

				answers, err := commands.ParseAnswers(cmd.StringMap("answer"))
				if err != nil {
					return err
				}

				return withAssessmentUseCase(ctx, func(_ *app.Container, useCase assessmentUseCase.UseCase) error {
					return commands.RunRiskCheck(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						assessmentUseCase.RiskInput{
							Answers:  answers,
							Region:   cmd.String("region"),
							System:   cmd.String("system"),
							FarmName: cmd.String("farm-name"),
							Save:     cmd.Bool("save"),
						},
						cmd.String("lang"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "biosecurity-check",
			Usage: "Score the biosecurity checklist (each practice 0-20)",
			Flags: []cli.Flag{
				answerFlag("Practice score as practice=score, repeatable"),
				farmNameFlag(),
				saveFlag(),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				answers, err := commands.ParseAnswers(cmd.StringMap("answer"))
				if err != nil {
					return err
				}

				return withAssessmentUseCase(ctx, func(_ *app.Container, useCase assessmentUseCase.UseCase) error {
					return commands.RunBiosecurityCheck(
						ctx,
						useCase,
						commands.DefaultIO().Writer,
						assessmentUseCase.BiosecurityInput{
							Answers:  answers,
							FarmName: cmd.String("farm-name"),
							Save:     cmd.Bool("save"),
						},
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "assessments",
			Usage: "Manage the local assessment history",
			Commands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List saved assessments, most recent first",
					Flags: []cli.Flag{formatFlag()},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withAssessmentUseCase(ctx, func(_ *app.Container, useCase assessmentUseCase.UseCase) error {
							return commands.RunListAssessments(
								ctx, useCase, commands.DefaultIO().Writer, cmd.String("format"),
							)
						})
					},
				},
				{
					Name:  "show",
					Usage: "Show one saved assessment",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "id",
							Aliases:  []string{"i"},
							Required: true,
							Usage:    "Assessment ID (UUID)",
						},
						formatFlag(),
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withAssessmentUseCase(ctx, func(_ *app.Container, useCase assessmentUseCase.UseCase) error {
							return commands.RunShowAssessment(
								ctx, useCase, commands.DefaultIO().Writer, cmd.String("id"), cmd.String("format"),
							)
						})
					},
				},
				{
					Name:  "delete",
					Usage: "Delete one saved assessment",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:     "id",
							Aliases:  []string{"i"},
							Required: true,
							Usage:    "Assessment ID (UUID)",
						},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						return withAssessmentUseCase(ctx, func(container *app.Container, useCase assessmentUseCase.UseCase) error {
							return commands.RunDeleteAssessment(
								ctx, useCase, container.Logger(), commands.DefaultIO().Writer, cmd.String("id"),
							)
						})
					},
				},
			},
		},
	}
}
