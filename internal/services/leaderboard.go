package services

import (
	"context"
	"fmt"
	"time"

	"saucebot/internal/datastore"
	"saucebot/internal/datastore/redis_store"
	"saucebot/internal/interfaces"
	"saucebot/internal/models"
	"saucebot/internal/pkg"
	"saucebot/internal/pkg/caching"
	"saucebot/internal/rewards"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// podiumSize is how many finishers receive a daily standings message.
const podiumSize = 3

type ServiceLeaderboard struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB
	cache      caching.Cache

	serviceConfig *ServiceConfig
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, redisDB, postgresDB, cache, serviceConfig}, nil
}

// GetLeaderboard returns the top entries of a board, usernames resolved from
// Postgres.
func (service *ServiceLeaderboard) GetLeaderboard(ctx context.Context, guildID string, board string) ([]models.LeaderboardEntry, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, LEADERBOARD_DEFAULT_LIMIT)

	callback := func() ([]models.LeaderboardEntry, error) {
		entries, err := redis_store.TopLeaderboard(ctx, service.redisDB, guildID, board, int64(limit))
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		for i := range entries {
			userID := entries[i].UserID
			user, err := caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_15_MINS, func() (*models.User, error) {
				return datastore.FindUserByID(ctx, service.postgresDB, userID)
			})
			if err != nil {
				continue
			}
			entries[i].Username = user.Username
		}

		return entries, nil
	}

	return caching.UseCache(ctx, service.cache, DBKeyLeaderboardView(guildID, board), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceLeaderboard) GetRank(ctx context.Context, guildID string, board string, userID string) (int64, error) {
	rank, err := redis_store.LeaderboardRank(ctx, service.redisDB, guildID, board, userID)
	if err == redis.Nil {
		return -1, nil
	}
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	return rank, nil
}

// SnapshotDaily freezes today's standings so the cron job can announce them
// after a reset.
func (service *ServiceLeaderboard) SnapshotDaily(ctx context.Context, guildID string, board string) error {
	entries, err := redis_store.TopLeaderboard(ctx, service.redisDB, guildID, board, LEADERBOARD_DEFAULT_LIMIT)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	day := pkg.DayKey(time.Now())
	return redis_store.SaveDailySnapshot(ctx, service.redisDB, guildID, day, entries)
}

func standingMessage(rank int, board string, score int64) string {
	return fmt.Sprintf("🏆 You finished #%d on yesterday's %s board with %d!", rank, board, score)
}

// podium keeps the head of a snapshot eligible for a standings message.
func podium(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	if len(entries) > podiumSize {
		return entries[:podiumSize]
	}
	return entries
}

// AnnounceDaily messages yesterday's podium their final standing. ShouldNotify
// caps deliveries to one per user per cooldown window, so a user topping
// several boards hears about it once.
func (service *ServiceLeaderboard) AnnounceDaily(ctx context.Context, notifier interfaces.Notifier, guildID string, board string) error {
	day := pkg.DayKey(time.Now().AddDate(0, 0, -1))
	entries, err := redis_store.GetDailySnapshot(ctx, service.redisDB, guildID, day)
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	minutes, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_NOTIFY_COOLDOWN_MINUTES, NOTIFY_COOLDOWN_DEFAULT)
	cooldown := time.Duration(minutes) * time.Minute

	for _, entry := range podium(entries) {
		fresh, err := redis_store.ShouldNotify(ctx, service.redisDB, entry.UserID, cooldown)
		if err != nil || !fresh {
			continue
		}

		// closed DMs are a per-user problem, skip and keep going
		//nolint:errcheck
		notifier.Notify(ctx, entry.UserID, standingMessage(entry.Rank, board, entry.Score))
	}

	return nil
}

// Rebuild reseeds a guild's boards from Postgres after a redis wipe. Balances
// are account-wide, so a rebuilt gold or diamond board carries lifetime totals
// rather than per-guild earnings.
func (service *ServiceLeaderboard) Rebuild(ctx context.Context, guildID string) error {
	xps, err := datastore.TopUserXP(ctx, service.postgresDB, guildID, LEADERBOARD_DEFAULT_LIMIT)
	if err != nil {
		return errorx.Wrap(err, errorx.Service)
	}
	for _, row := range xps {
		if err := redis_store.SetLeaderboardScore(ctx, service.redisDB, guildID, models.BOARD_XP, row.UserID, float64(row.XP)); err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
	}

	boards := map[string]string{
		rewards.CurrencyGold:    models.BOARD_GOLD,
		rewards.CurrencyDiamond: models.BOARD_DIAMONDS,
	}
	for currency, board := range boards {
		rows, err := datastore.TopBalances(ctx, service.postgresDB, currency, LEADERBOARD_DEFAULT_LIMIT)
		if err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
		for _, row := range rows {
			if err := redis_store.SetLeaderboardScore(ctx, service.redisDB, guildID, board, row.UserID, float64(row.Amount)); err != nil {
				return errorx.Wrap(err, errorx.Service)
			}
		}
	}

	//nolint:errcheck
	caching.DeleteKeys(ctx, service.redisDB, "leaderboard_view:"+guildID+":*")
	return nil
}

// ResetWeekly clears the per-guild boards at the top of the week.
func (service *ServiceLeaderboard) ResetWeekly(ctx context.Context, guildID string) error {
	for _, board := range []string{models.BOARD_GOLD, models.BOARD_XP, models.BOARD_DIAMONDS} {
		if err := redis_store.ResetLeaderboard(ctx, service.redisDB, guildID, board); err != nil {
			return errorx.Wrap(err, errorx.Service)
		}
	}

	//nolint:errcheck
	caching.DeleteKeys(ctx, service.redisDB, "leaderboard_view:"+guildID+":*")
	return nil
}
