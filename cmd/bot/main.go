package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saucebot/internal/services"

	"github.com/bwmarrin/discordgo"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
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
		Name: "bot-discord",
		Commands: []*cli.Command{
			commandBot(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandBot() *cli.Command {
	return &cli.Command{
		Name: "bot",
		Action: func(c *cli.Context) error {
			vs, err := env.EnvsRequired(
				"BOT_TOKEN",
				"DB_DSN",
				"REDIS_URL",
			)
			if err != nil {
				return err
			}

			container := NewContainer(vs)

			session, err := discordgo.New("Bot " + vs["BOT_TOKEN"])
			if err != nil {
				return err
			}
			session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

			bot := &botHandler{container: container, session: session}
			session.AddHandler(bot.onMessageCreate)
			session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
				log.Printf("logged in as %s", r.User.Username)
			})

			if err := session.Open(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errWg, errCtx := errgroup.WithContext(ctx)

			errWg.Go(func() error {
				serviceActivity, err := do.Invoke[*services.ServiceActivity](container)
				if err != nil {
					return err
				}
				bot.sweepLoop(errCtx, serviceActivity, 15*time.Second)
				return nil
			})

			errWg.Go(func() error {
				<-errCtx.Done()
				return session.Close()
			})

			return errWg.Wait()
		},
	}
}
