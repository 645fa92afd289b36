package main

import (
	"context"
	"log"
	"os"
	"strings"

	"saucebot/internal/interfaces"
	"saucebot/internal/models"
	"saucebot/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/samber/do"
)

type LeaderboardJob struct {
	serviceLeaderboard *services.ServiceLeaderboard
	notifier           interfaces.Notifier
	guildIDs           []string
}

func NewLeaderboardJob(container *do.Injector) (*LeaderboardJob, error) {
	serviceLeaderboard, err := do.Invoke[*services.ServiceLeaderboard](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[interfaces.Notifier](container)
	if err != nil {
		return nil, err
	}

	var guildIDs []string
	for _, id := range strings.Split(os.Getenv("GUILD_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			guildIDs = append(guildIDs, id)
		}
	}

	return &LeaderboardJob{serviceLeaderboard, notifier, guildIDs}, nil
}

func (job *LeaderboardJob) Start(runner *cron.Cron) error {
	// freeze daily standings just before midnight UTC
	if _, err := runner.AddFunc("55 23 * * *", job.snapshotDaily); err != nil {
		return err
	}

	// weekly boards reset Monday midnight UTC
	if _, err := runner.AddFunc("0 0 * * 1", job.resetWeekly); err != nil {
		return err
	}

	// DM yesterday's podium shortly after the day rolls over
	if _, err := runner.AddFunc("5 0 * * *", job.announceDaily); err != nil {
		return err
	}

	return nil
}

func (job *LeaderboardJob) snapshotDaily() {
	ctx := context.Background()
	for _, guildID := range job.guildIDs {
		for _, board := range []string{models.BOARD_GOLD, models.BOARD_XP, models.BOARD_DIAMONDS} {
			if err := job.serviceLeaderboard.SnapshotDaily(ctx, guildID, board); err != nil {
				log.Printf("snapshot %s/%s: %v", guildID, board, err)
			}
		}
	}
}

func (job *LeaderboardJob) announceDaily() {
	ctx := context.Background()
	for _, guildID := range job.guildIDs {
		for _, board := range []string{models.BOARD_GOLD, models.BOARD_XP, models.BOARD_DIAMONDS} {
			if err := job.serviceLeaderboard.AnnounceDaily(ctx, job.notifier, guildID, board); err != nil {
				log.Printf("announce %s/%s: %v", guildID, board, err)
			}
		}
	}
}

func (job *LeaderboardJob) resetWeekly() {
	ctx := context.Background()
	for _, guildID := range job.guildIDs {
		if err := job.serviceLeaderboard.ResetWeekly(ctx, guildID); err != nil {
			log.Printf("weekly reset %s: %v", guildID, err)
		}
	}
}

// Reindex rebuilds every configured guild's boards from Postgres, for use
// after a redis wipe.
func (job *LeaderboardJob) Reindex(ctx context.Context) error {
	for _, guildID := range job.guildIDs {
		if err := job.serviceLeaderboard.Rebuild(ctx, guildID); err != nil {
			return err
		}
	}

	return nil
}
