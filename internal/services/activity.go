package services

import (
	"context"
	"math/rand"
	"time"

	"saucebot/internal/activities"
	"saucebot/internal/datastore"
	"saucebot/internal/datastore/redis_store"
	"saucebot/internal/models"
	"saucebot/internal/rewards"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// popupQuestions is the pool a spawned pop-up draws from. Answers are matched
// case-insensitively.
var popupQuestions = []struct {
	Question string
	Answer   string
}{
	{"Which condiment is made from fermented soybeans?", "soy sauce"},
	{"What fruit is ketchup made from?", "tomato"},
	{"Which sauce is named after a city in northern Mexico?", "tabasco"},
	{"What is the main herb in pesto?", "basil"},
	{"Mayonnaise is an emulsion of oil and what?", "egg"},
	{"Which spicy sauce is made from Hatch chiles?", "green chile"},
	{"What gives mustard its yellow color?", "turmeric"},
	{"Which country invented Worcestershire sauce?", "england"},
}

type ServiceActivity struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	rs         *redsync.Redsync
	postgresDB *bun.DB
	registry   *activities.Registry
	rng        *rand.Rand

	serviceUser    *ServiceUser
	serviceEconomy *ServiceEconomy
	serviceConfig  *ServiceConfig
}

func NewServiceActivity(container *do.Injector) (*ServiceActivity, error) {
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

	registry, err := do.Invoke[*activities.Registry](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	serviceEconomy, err := do.Invoke[*ServiceEconomy](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &ServiceActivity{container, redisDB, rs, postgresDB, registry, rng, serviceUser, serviceEconomy, serviceConfig}, nil
}

// lockSpawn serializes replicas racing a spawn into the same channel. The
// registry only guards activities inside one process.
func (service *ServiceActivity) lockSpawn(ctx context.Context, channelID string) (*redsync.Mutex, error) {
	mutex := service.rs.NewMutex(LockKeySpawn(channelID), redsync.WithExpiry(5*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrSpawnLock, errorx.RateLimiting)
	}

	return mutex, nil
}

func (service *ServiceActivity) activityTTL(ctx context.Context) time.Duration {
	seconds, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_ACTIVITY_TTL_SECONDS, ACTIVITY_TTL_DEFAULT)
	return time.Duration(seconds) * time.Second
}

// SpawnPopup puts a question into the channel. The redis cooldown gates how
// often a channel can host one; the registry enforces one live activity per
// channel.
func (service *ServiceActivity) SpawnPopup(ctx context.Context, channelID string) (*models.Result, error) {
	mutex, err := service.lockSpawn(ctx, channelID)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	cooldown, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SPAWN_COOLDOWN_SECONDS, SPAWN_COOLDOWN_DEFAULT)
	ok, err := redis_store.TrySpawnCooldown(ctx, service.redisDB, channelID, time.Duration(cooldown)*time.Second)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !ok {
		return models.Failed(models.StatusCooldown), nil
	}

	q := popupQuestions[service.rng.Intn(len(popupQuestions))]
	_, err = service.registry.Create(activities.ScopeChannel(channelID), activities.KindPopup, service.activityTTL(ctx), func(a *activities.Activity) {
		a.Answer = q.Answer
	})
	if err != nil {
		return models.Failed(models.StatusCooldown), nil
	}

	return models.OK().WithDetail("question", q.Question), nil
}

func (service *ServiceActivity) AnswerPopup(ctx context.Context, channelID string, userID string, guildID string, answer string) (*models.Result, error) {
	claim := service.registry.ClaimAnswer(activities.ScopeChannel(channelID), answer)
	if claim.Status != activities.StatusOK {
		return models.Failed(models.ResultStatus(claim.Status)), nil
	}

	outcome := rewards.PopupReward()
	err := service.serviceUser.ApplyOutcomes(ctx, service.postgresDB, userID, guildID, []rewards.Outcome{outcome})
	if err != nil {
		return nil, err
	}

	return models.OK(outcome), nil
}

// SpawnDrop places a Starr Drop with a pre-rolled rarity; the first claim
// wins it.
func (service *ServiceActivity) SpawnDrop(ctx context.Context, channelID string) (*models.Result, error) {
	mutex, err := service.lockSpawn(ctx, channelID)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	rarity := rewards.PickStarrRarity(service.rng)
	_, err = service.registry.Create(activities.ScopeChannel(channelID), activities.KindDrop, service.activityTTL(ctx), func(a *activities.Activity) {
		a.Rarity = rarity
	})
	if err != nil {
		return models.Failed(models.StatusCooldown), nil
	}

	return models.OK().WithDetail("rarity", rarity), nil
}

func (service *ServiceActivity) CatchDrop(ctx context.Context, channelID string, userID string, guildID string) (*models.Result, error) {
	claim := service.registry.ClaimDrop(activities.ScopeChannel(channelID))
	if claim.Status != activities.StatusOK {
		return models.Failed(models.ResultStatus(claim.Status)), nil
	}

	outcome := rewards.StarrDropReward(service.rng, claim.Activity.Rarity)
	err := service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := datastore.BumpCounter(ctx, tx, userID, "drops_caught", 1); err != nil {
			return err
		}
		return service.serviceUser.ApplyOutcomes(ctx, tx, userID, guildID, []rewards.Outcome{outcome})
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return models.OK(outcome).WithDetail("rarity", claim.Activity.Rarity), nil
}

// SpawnGuess starts a number-guessing round in the channel.
func (service *ServiceActivity) SpawnGuess(ctx context.Context, channelID string) (*models.Result, error) {
	mutex, err := service.lockSpawn(ctx, channelID)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	max, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_GUESS_RANGE_MAX, GUESS_RANGE_MAX_DEFAULT)
	target := service.rng.Intn(max) + 1

	_, err = service.registry.Create(activities.ScopeChannel(channelID), activities.KindGuess, service.activityTTL(ctx), func(a *activities.Activity) {
		a.Target = target
	})
	if err != nil {
		return models.Failed(models.StatusCooldown), nil
	}

	return models.OK().WithDetail("max", max), nil
}

func (service *ServiceActivity) SubmitGuess(ctx context.Context, channelID string, userID string, guildID string, guess int) (*models.Result, error) {
	claim := service.registry.SubmitGuess(activities.ScopeChannel(channelID), userID, guess)

	switch claim.Status {
	case activities.StatusOK:
		outcome := rewards.Outcome{Label: "Guess Prize", Grants: []rewards.Grant{
			rewards.Box(rewards.BoxRegular, 1),
			rewards.Currency(rewards.CurrencyGold, 5),
		}}
		err := service.serviceUser.ApplyOutcomes(ctx, service.postgresDB, userID, guildID, []rewards.Outcome{outcome})
		if err != nil {
			return nil, err
		}
		return models.OK(outcome).WithDetail("target", guess), nil
	case activities.StatusTooLow:
		return models.Failed(models.StatusWrongAnswer).
			WithDetail("hint", "higher").
			WithDetail("attempts_left", service.registry.AttemptsLeft(activities.ScopeChannel(channelID), userID)), nil
	case activities.StatusTooHigh:
		return models.Failed(models.StatusWrongAnswer).
			WithDetail("hint", "lower").
			WithDetail("attempts_left", service.registry.AttemptsLeft(activities.ScopeChannel(channelID), userID)), nil
	default:
		return models.Failed(models.ResultStatus(claim.Status)), nil
	}
}

// ResetChannel clears the spawn cooldown so a moderator can force the next
// activity.
func (service *ServiceActivity) ResetChannel(ctx context.Context, channelID string) error {
	if err := redis_store.ClearSpawnCooldown(ctx, service.redisDB, channelID); err != nil {
		return errorx.Wrap(err, errorx.Service)
	}

	return nil
}

// Sweep expires stale activities and returns them so the bot can post one
// "time's up" message per activity.
func (service *ServiceActivity) Sweep(ctx context.Context) []*activities.Activity {
	return service.registry.Sweep()
}
