package services

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"saucebot/internal/datastore"
	"saucebot/internal/datastore/redis_store"
	"saucebot/internal/models"
	"saucebot/internal/pkg"
	"saucebot/internal/pkg/caching"
	"saucebot/internal/progression"
	"saucebot/internal/rewards"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceUser struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache
	rng        *rand.Rand

	serviceConfig *ServiceConfig
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
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

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &ServiceUser{container, redisDB, rs, postgresDB, cache, rng, serviceConfig}, nil
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userID string, username string) (*models.User, error) {
	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err == nil {
		if username != "" && user.Username != username {
			user.Username = username
			//nolint:errcheck
			datastore.EditUser(ctx, service.postgresDB, user)
		}
		return user, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()
	user = &models.User{
		ID:        userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = datastore.InsertUser(ctx, service.postgresDB, user)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return user, nil
}

func (service *ServiceUser) GetProfile(ctx context.Context, userID string, guildID string) (*models.Profile, error) {
	callback := func() (*models.Profile, error) {
		user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, errorx.Wrap(err, errorx.NotExist)
			}
			return nil, errorx.Wrap(err, errorx.Service)
		}

		balances, err := datastore.GetUserBalances(ctx, service.postgresDB, userID)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		xp, err := datastore.GetUserXP(ctx, service.postgresDB, userID, guildID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		buildings, err := datastore.GetUserBuildings(ctx, service.postgresDB, userID)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		inventory, err := datastore.GetUserInventory(ctx, service.postgresDB, userID)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		level := progression.MainLevel(xp)
		golden := progression.GoldenTier(user.GoldenXP)

		return &models.Profile{
			User:       user,
			Balances:   balances,
			Level:      level.Level,
			LevelXP:    level.Spent,
			NextLevel:  level.Needed,
			GoldenTier: golden.Level,
			Buildings:  buildings,
			Inventory:  inventory,
		}, nil
	}

	return caching.UseCache(ctx, service.cache, DBKeyProfile(userID), CACHE_TTL_15_SECONDS, callback)
}

// CountCommand bumps the user's lifetime prefix-command counter.
func (service *ServiceUser) CountCommand(ctx context.Context, userID string) error {
	return datastore.BumpCounter(ctx, service.postgresDB, userID, "commands_used", 1)
}

// AddMessageXP credits chat activity and reports the new level when the
// message crossed a threshold, zero otherwise.
func (service *ServiceUser) AddMessageXP(ctx context.Context, userID string, guildID string) (int, error) {
	perMessage, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_PER_MESSAGE, XP_PER_MESSAGE_DEFAULT)

	before, err := datastore.GetUserXP(ctx, service.postgresDB, userID, guildID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	err = datastore.AddUserXP(ctx, service.postgresDB, userID, guildID, int64(perMessage))
	if err != nil {
		return 0, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	redis_store.BumpLeaderboard(ctx, service.redisDB, guildID, models.BOARD_XP, userID, float64(perMessage))

	after := before + int64(perMessage)
	levelBefore := progression.MainLevel(before)
	levelAfter := progression.MainLevel(after)
	if levelAfter.Level > levelBefore.Level {
		return levelAfter.Level, nil
	}

	return 0, nil
}

// ApplyOutcomes writes every grant of the given outcomes to storage. Currency
// lands on balances, boxes and collectibles land in the inventory. Leaderboard
// scores move with the sauce and diamond totals.
func (service *ServiceUser) ApplyOutcomes(ctx context.Context, db bun.IDB, userID string, guildID string, outcomes []rewards.Outcome) error {
	for _, outcome := range outcomes {
		for _, grant := range outcome.Grants {
			var err error
			switch grant.Kind {
			case rewards.GrantCurrency:
				err = datastore.AdjustBalance(ctx, db, userID, grant.Currency, grant.Amount)
				if err == nil && guildID != "" {
					switch grant.Currency {
					case rewards.CurrencyGold:
						//nolint:errcheck
						redis_store.BumpLeaderboard(ctx, service.redisDB, guildID, models.BOARD_GOLD, userID, float64(grant.Amount))
					case rewards.CurrencyDiamond:
						//nolint:errcheck
						redis_store.BumpLeaderboard(ctx, service.redisDB, guildID, models.BOARD_DIAMONDS, userID, float64(grant.Amount))
					}
				}
			case rewards.GrantCollectible:
				err = datastore.AddInventory(ctx, db, userID, models.CollectibleKind(grant.CollectibleKind, grant.Collectible), 1)
			case rewards.GrantBox:
				err = datastore.AddInventory(ctx, db, userID, models.BoxKind(grant.Box), grant.Quantity)
			}
			if err != nil {
				return errorx.Wrap(err, errorx.Service)
			}
		}
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyProfile(userID))
	return nil
}

func (service *ServiceUser) ClaimDaily(ctx context.Context, userID string, guildID string) (*models.Result, error) {
	return service.claimStreak(ctx, userID, guildID, "daily")
}

func (service *ServiceUser) ClaimWeekly(ctx context.Context, userID string, guildID string) (*models.Result, error) {
	return service.claimStreak(ctx, userID, guildID, "weekly")
}

func (service *ServiceUser) claimStreak(ctx context.Context, userID string, guildID string, kind string) (*models.Result, error) {
	mutex := service.rs.NewMutex(LockKeyUserClaim(userID, kind), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrUserClaimLock, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	now := time.Now()

	var last *time.Time
	if kind == "daily" {
		last = user.LastDailyAt
	} else {
		last = user.LastWeeklyAt
	}

	if last != nil {
		if kind == "daily" && pkg.SameUTCDay(*last, now) {
			return models.Failed(models.StatusCooldown), nil
		}
		if kind == "weekly" && pkg.SameUTCWeek(*last, now) {
			return models.Failed(models.StatusCooldown), nil
		}
	}

	if kind == "daily" {
		yesterday := now.Add(-24 * time.Hour)
		if last != nil && pkg.SameUTCDay(*last, yesterday) {
			user.Streak++
		} else {
			user.Streak = 1
		}
		user.LastDailyAt = &now
	} else {
		user.LastWeeklyAt = &now
	}

	boostTier := user.Streak / 7
	var outcome rewards.Outcome
	if kind == "daily" {
		outcome = rewards.DailyClaim(service.rng, boostTier)
	} else {
		outcome = rewards.WeeklyClaim(service.rng, boostTier)
	}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := datastore.EditUser(ctx, tx, user); err != nil {
			return err
		}
		return service.ApplyOutcomes(ctx, tx, userID, guildID, []rewards.Outcome{outcome})
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return models.OK(outcome).WithDetail("streak", user.Streak), nil
}
