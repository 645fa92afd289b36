package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"saucebot/internal/datastore"
	"saucebot/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
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
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandConfigSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name: "migrate",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			steps := []func(context.Context, *bun.DB) error{
				datastore.CreateTableUser,
				datastore.CreateTableUserBalance,
				datastore.CreateTableUserInventory,
				datastore.CreateTableUserBuilding,
				datastore.CreateTableUserXP,
				datastore.CreateTableConfig,
			}
			for _, step := range steps {
				if err := step(ctx, db); err != nil {
					return err
				}
			}

			log.Println("migration done")
			return nil
		},
	}
}

func commandConfigSeed() *cli.Command {
	return &cli.Command{
		Name: "seed-config",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			defaults := map[string]string{
				services.CONFIG_SERVER_MODE:            services.SERVER_MODE_DEVELOPMENT,
				services.CONFIG_LEADERBOARD_LIMIT:      "20",
				services.CONFIG_SPAWN_COOLDOWN_SECONDS: "90",
				services.CONFIG_ACTIVITY_TTL_SECONDS:   "120",
				services.CONFIG_GUESS_RANGE_MAX:        "100",
				services.CONFIG_XP_PER_MESSAGE:         "2",
				services.CONFIG_TEXT_WELCOME:           "Welcome to the Sauce Kingdom, %s!",
			}
			for key, value := range defaults {
				if err := datastore.UpsertConfig(ctx, db, key, value); err != nil {
					return err
				}
			}

			log.Println("config seeded")
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New()), nil
}
