package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getAssessmentCommands()...)
	cmds = append(cmds, getFarmCommands()...)
	return cmds
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func langFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "lang",
		Aliases: []string{"l"},
		Value:   "en",
		Usage:   "Language for prompts and recommendations: 'en' or 'hi'",
	}
}
