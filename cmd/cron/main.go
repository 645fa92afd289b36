package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
			commandReindex(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			container := NewContainer(map[string]string{})

			cronRunner := cron.New()

			job, err := NewLeaderboardJob(container)
			if err != nil {
				return err
			}
			if err := job.Start(cronRunner); err != nil {
				return err
			}

			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

func commandReindex() *cli.Command {
	return &cli.Command{
		Name:  "reindex",
		Usage: "rebuild the redis leaderboards from Postgres",
		Action: func(c *cli.Context) error {
			container := NewContainer(map[string]string{})

			job, err := NewLeaderboardJob(container)
			if err != nil {
				return err
			}

			return job.Reindex(context.Background())
		},
	}
}
