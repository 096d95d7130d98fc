package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "draftflow",
		Usage:                 "Author workflows through conversation",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "chat",
				Aliases: []string{"c"},
				Usage:   "Start an interactive authoring conversation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "database-url",
						Usage:   "Database connection URL for persistence",
						Value:   "file://./data",
						Sources: cli.EnvVars("DATABASE_URL"),
					},
					&cli.StringFlag{
						Name:    "ai-service-url",
						Usage:   "Base URL of the AI chat service (disabled when empty)",
						Sources: cli.EnvVars("AI_SERVICE_URL"),
					},
					&cli.StringFlag{
						Name:    "log-level",
						Usage:   "Log level (debug, info, warn, error)",
						Value:   "warn",
						Sources: cli.EnvVars("LOG_LEVEL"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runChat(ctx, cmd)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
