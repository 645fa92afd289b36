package services

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"saucebot/internal/activities"
	"saucebot/internal/datastore"
	"saucebot/internal/datastore/redis_store"
	"saucebot/internal/models"
	"saucebot/internal/pkg/caching"
	"saucebot/internal/rewards"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// golden pass XP credited per opened box, any tier
const goldenXPPerBox = 10

// SugarRushPrice is the diamond price of a personal boost window.
const SugarRushPrice = 5

type shopItem struct {
	Currency string
	Price    int64
	Grant    rewards.Grant
}

var shopCatalog = map[string]shopItem{
	"small-box":   {Currency: rewards.CurrencyGold, Price: 20, Grant: rewards.Box(rewards.BoxSmall, 1)},
	"regular-box": {Currency: rewards.CurrencyGold, Price: 45, Grant: rewards.Box(rewards.BoxRegular, 1)},
	"big-box":     {Currency: rewards.CurrencyGold, Price: 110, Grant: rewards.Box(rewards.BoxBig, 1)},
	"mega-box":    {Currency: rewards.CurrencyGold, Price: 250, Grant: rewards.Box(rewards.BoxMega, 1)},
	"mystery-box": {Currency: rewards.CurrencyDiamond, Price: 8, Grant: rewards.Box(rewards.BoxMystery, 1)},
}

type ServiceEconomy struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache
	registry   *activities.Registry
	rng        *rand.Rand

	serviceUser *ServiceUser
}

func NewServiceEconomy(container *do.Injector) (*ServiceEconomy, error) {
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

	registry, err := do.Invoke[*activities.Registry](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &ServiceEconomy{container, redisDB, rs, postgresDB, cache, registry, rng, serviceUser}, nil
}

// OpenBox consumes one box of the given tier from the user's inventory and
// applies the drawn rewards. A Sugar Rush boost triples currency amounts at
// draw time.
func (service *ServiceEconomy) OpenBox(ctx context.Context, userID string, guildID string, tier string) (*models.Result, error) {
	mutex := service.rs.NewMutex(LockKeyUserBox(userID), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrUserBoxLock, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	kind := models.BoxKind(tier)
	line, err := datastore.GetInventoryLine(ctx, service.postgresDB, userID, kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Failed(models.StatusInsufficientFunds), nil
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if line.Quantity < 1 {
		return models.Failed(models.StatusInsufficientFunds), nil
	}

	sugarRush := service.activeSugarRush(ctx, userID, guildID)

	var outcomes []rewards.Outcome
	switch tier {
	case rewards.BoxMystery:
		outcomes = []rewards.Outcome{rewards.OpenMysteryBox(service.rng)}
	case rewards.BoxArtifact:
		outcomes = []rewards.Outcome{rewards.OpenArtifactBox(service.rng)}
	default:
		outcomes = rewards.OpenBox(service.rng, tier, sugarRush)
	}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := datastore.RemoveInventory(ctx, tx, userID, kind, 1); err != nil {
			return err
		}
		if err := datastore.BumpCounter(ctx, tx, userID, "boxes_opened", 1); err != nil {
			return err
		}
		if err := datastore.AddGoldenXP(ctx, tx, userID, goldenXPPerBox); err != nil {
			return err
		}
		return service.serviceUser.ApplyOutcomes(ctx, tx, userID, guildID, outcomes)
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	result := models.OK(outcomes...)
	if sugarRush {
		result = result.WithDetail("sugar_rush", true)
	}
	return result, nil
}

// RollBox hands the user one random box, tier picked by the weighted
// chooser. One roll per user per cooldown window.
func (service *ServiceEconomy) RollBox(ctx context.Context, userID string) (*models.Result, error) {
	ok, err := redis_store.TrySpawnCooldown(ctx, service.redisDB, "user-box:"+userID, 4*time.Hour)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return models.Failed(models.StatusCooldown), nil
	}

	tier := rewards.PickBoxTier()
	err = datastore.AddInventory(ctx, service.postgresDB, userID, models.BoxKind(tier), 1)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyProfile(userID))

	return models.OK().WithDetail("tier", tier), nil
}

// StarrDrop rolls a rarity and its reward in one step, used by the random
// message drop.
func (service *ServiceEconomy) StarrDrop(ctx context.Context, userID string, guildID string) (*models.Result, error) {
	rarity := rewards.PickStarrRarity(service.rng)
	outcome := rewards.StarrDropReward(service.rng, rarity)

	err := service.serviceUser.ApplyOutcomes(ctx, service.postgresDB, userID, guildID, []rewards.Outcome{outcome})
	if err != nil {
		return nil, err
	}

	return models.OK(outcome).WithDetail("rarity", rarity), nil
}

func (service *ServiceEconomy) BuyItem(ctx context.Context, userID string, guildID string, item string) (*models.Result, error) {
	entry, ok := shopCatalog[item]
	if !ok {
		return nil, errorx.Wrap(errors.New("unknown shop item"), errorx.NotExist)
	}

	mutex := service.rs.NewMutex(LockKeyUserBox(userID), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrUserBoxLock, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	balance, err := datastore.GetBalance(ctx, service.postgresDB, userID, entry.Currency)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if balance < entry.Price {
		return models.Failed(models.StatusInsufficientFunds).WithDetail("shortfall", entry.Price-balance), nil
	}

	outcome := rewards.Outcome{Label: "Shop: " + item, Grants: []rewards.Grant{entry.Grant}}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := datastore.AdjustBalance(ctx, tx, userID, entry.Currency, -entry.Price); err != nil {
			return err
		}
		return service.serviceUser.ApplyOutcomes(ctx, tx, userID, guildID, []rewards.Outcome{outcome})
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return models.OK(outcome), nil
}

// activeSugarRush reports whether a boost window covers the user. A personal
// window or a guild-wide event both count. The check falls back to the redis
// mirror, so a window opened before a restart still applies.
func (service *ServiceEconomy) activeSugarRush(ctx context.Context, userID string, guildID string) bool {
	if service.registry.ActiveBoost(activities.ScopeUser(userID)) > 1 {
		return true
	}
	if guildID != "" && service.registry.ActiveBoost(activities.ScopeGuild(guildID)) > 1 {
		return true
	}

	boost, err := redis_store.GetBoost(ctx, service.redisDB, userID)
	if err != nil {
		return false
	}

	return restoreBoost(service.registry, userID, boost, time.Now())
}

// restoreBoost replays a mirrored boost into the registry. Only a window with
// time remaining is restored.
func restoreBoost(registry *activities.Registry, userID string, boost *models.BoostState, now time.Time) bool {
	if boost == nil || boost.Multiplier <= 1 {
		return false
	}

	remaining := boost.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return false
	}

	//nolint:errcheck
	registry.Create(activities.ScopeUser(userID), activities.KindBoost, remaining, func(a *activities.Activity) {
		a.Multiplier = int64(boost.Multiplier)
	})
	return true
}

// ActivateSugarRush sells the user a personal timed boost, paid in diamonds.
// The window lives in the registry and is mirrored to redis so a restart
// cannot strand it.
func (service *ServiceEconomy) ActivateSugarRush(ctx context.Context, userID string, guildID string, duration time.Duration) (*models.Result, error) {
	mutex := service.rs.NewMutex(LockKeyUserBox(userID), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrUserBoxLock, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	if service.activeSugarRush(ctx, userID, guildID) {
		return models.Failed(models.StatusCooldown), nil
	}

	balance, err := datastore.GetBalance(ctx, service.postgresDB, userID, rewards.CurrencyDiamond)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if balance < SugarRushPrice {
		return models.Failed(models.StatusInsufficientFunds).WithDetail("shortfall", SugarRushPrice-balance), nil
	}

	if err := datastore.AdjustBalance(ctx, service.postgresDB, userID, rewards.CurrencyDiamond, -SugarRushPrice); err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	expiresAt := time.Now().Add(duration)
	_, err = service.registry.Create(activities.ScopeUser(userID), activities.KindBoost, duration, func(a *activities.Activity) {
		a.Multiplier = rewards.SugarRushFactor
	})
	if err != nil {
		//nolint:errcheck
		datastore.AdjustBalance(ctx, service.postgresDB, userID, rewards.CurrencyDiamond, SugarRushPrice)
		return models.Failed(models.StatusCooldown), nil
	}

	//nolint:errcheck
	redis_store.SaveBoost(ctx, service.redisDB, userID, &models.BoostState{
		Multiplier: rewards.SugarRushFactor,
		ExpiresAt:  expiresAt,
	})

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyProfile(userID))

	return models.OK().WithDetail("expires_in", duration.String()), nil
}
