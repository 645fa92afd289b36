package services

import (
	"context"
	"fmt"

	"saucebot/internal/datastore"
	"saucebot/internal/datastore/redis_store"
	"saucebot/internal/models"
	"saucebot/internal/progression"
	"saucebot/internal/rewards"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServicePass struct {
	container  *do.Injector
	redisDB    redis.UniversalClient
	postgresDB *bun.DB

	serviceUser *ServiceUser
}

func NewServicePass(container *do.Injector) (*ServicePass, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return &ServicePass{container, redisDB, postgresDB, serviceUser}, nil
}

// TierReward is the fixed reward of one golden pass tier. Every fifth tier
// pays a box, every tenth a mystery box.
func TierReward(tier int) rewards.Outcome {
	label := fmt.Sprintf("Golden Pass Tier %d", tier)
	switch {
	case tier%10 == 0:
		return rewards.Outcome{Label: label, Grants: []rewards.Grant{rewards.Box(rewards.BoxMystery, 1)}}
	case tier%5 == 0:
		return rewards.Outcome{Label: label, Grants: []rewards.Grant{rewards.Box(rewards.BoxBig, 1)}}
	default:
		return rewards.Outcome{Label: label, Grants: []rewards.Grant{rewards.Currency(rewards.CurrencyGold, int64(2*tier))}}
	}
}

func (service *ServicePass) GetPass(ctx context.Context, userID string) (*models.Result, error) {
	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}

	progress := progression.GoldenTier(user.GoldenXP)
	claimed, err := redis_store.PassClaims(ctx, service.redisDB, userID)
	if err != nil && err != redis.Nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	return models.OK().
		WithDetail("tier", progress.Level).
		WithDetail("next_tier_xp", progress.Needed).
		WithDetail("claimed", claimed), nil
}

// ClaimTier cashes in one reached tier. Each tier pays out once; the redis
// set is the claim record.
func (service *ServicePass) ClaimTier(ctx context.Context, userID string, guildID string, tier int) (*models.Result, error) {
	if tier < 1 {
		return nil, errorx.Wrap(fmt.Errorf("invalid tier %d", tier), errorx.Invalid)
	}

	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.NotExist)
	}

	progress := progression.GoldenTier(user.GoldenXP)
	if tier > progress.Level {
		return models.Failed(models.StatusNothingToClaim).WithDetail("tier", progress.Level), nil
	}

	fresh, err := redis_store.MarkPassClaim(ctx, service.redisDB, userID, tier)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if !fresh {
		return models.Failed(models.StatusAlreadyClaimed), nil
	}

	outcome := TierReward(tier)
	err = service.serviceUser.ApplyOutcomes(ctx, service.postgresDB, userID, guildID, []rewards.Outcome{outcome})
	if err != nil {
		return nil, err
	}

	return models.OK(outcome).WithDetail("tier", tier), nil
}
