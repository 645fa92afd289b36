package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"saucebot/internal/buildings"
	"saucebot/internal/datastore"
	"saucebot/internal/models"
	"saucebot/internal/pkg/caching"
	"saucebot/internal/rewards"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceBuilding struct {
	container  *do.Injector
	rs         *redsync.Redsync
	postgresDB *bun.DB
	cache      caching.Cache

	serviceUser *ServiceUser
}

func NewServiceBuilding(container *do.Injector) (*ServiceBuilding, error) {
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

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	return &ServiceBuilding{container, rs, postgresDB, cache, serviceUser}, nil
}

func (service *ServiceBuilding) GetBuildings(ctx context.Context, userID string) ([]models.UserBuilding, error) {
	callback := func() ([]models.UserBuilding, error) {
		return datastore.GetUserBuildings(ctx, service.postgresDB, userID)
	}

	return caching.UseCache(ctx, service.cache, DBKeyUserBuildings(userID), CACHE_TTL_15_SECONDS, callback)
}

// Upgrade raises a building one level, or builds it at level 1. Prerequisites
// and costs are checked first, then cost deduction and the level bump commit
// in one transaction.
func (service *ServiceBuilding) Upgrade(ctx context.Context, userID string, guildID string, buildingType string) (*models.Result, error) {
	mutex := service.rs.NewMutex(LockKeyUserBuilding(userID), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrUserBuildingLock, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	rows, err := datastore.GetUserBuildings(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	levels := buildings.Levels{}
	for _, row := range rows {
		levels[row.Type] = row.Level
	}

	if err := buildings.CanUpgrade(levels, buildingType); err != nil {
		var prereq *buildings.PrerequisiteError
		if errors.As(err, &prereq) {
			return models.Failed(models.StatusMissingPrerequisite).WithDetail("missing", prereq.Missing), nil
		}
		if errors.Is(err, buildings.ErrMaxLevel) {
			return models.Failed(models.StatusMaxLevel), nil
		}
		return nil, errorx.Wrap(err, errorx.Invalid)
	}

	targetLevel := levels[buildingType] + 1
	cost, err := buildings.UpgradeCost(buildingType, targetLevel)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}

	balances, err := datastore.GetUserBalances(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	held := map[string]int64{}
	for _, b := range balances {
		held[b.Currency] = b.Amount
	}

	if shortfall := buildings.Shortfall(held, cost); len(shortfall) > 0 {
		return models.Failed(models.StatusInsufficientFunds).WithDetail("shortfall", shortfall), nil
	}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for currency, amount := range cost {
			if err := datastore.AdjustBalance(ctx, tx, userID, currency, -amount); err != nil {
				return err
			}
		}
		return datastore.SetBuildingLevel(ctx, tx, userID, buildingType, targetLevel)
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUserBuildings(userID))
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyProfile(userID))

	return models.OK().WithDetail("building", buildingType).WithDetail("level", targetLevel), nil
}

// Collect gathers output from every building the user owns. Fractional
// diamond output pools across buildings and pays out whole diamonds only.
func (service *ServiceBuilding) Collect(ctx context.Context, userID string, guildID string) (*models.Result, error) {
	mutex := service.rs.NewMutex(LockKeyUserBuilding(userID), redsync.WithExpiry(10*time.Second), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errorx.Wrap(ErrUserBuildingLock, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.UnlockContext(ctx)

	user, err := datastore.FindUserByID(ctx, service.postgresDB, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errorx.Wrap(err, errorx.NotExist)
		}
		return nil, errorx.Wrap(err, errorx.Service)
	}

	rows, err := datastore.GetUserBuildings(ctx, service.postgresDB, userID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}
	if len(rows) == 0 {
		return models.Failed(models.StatusNothingToClaim), nil
	}

	now := time.Now()
	remainder := user.DiamondRemainder
	var outcomes []rewards.Outcome
	collectedAt := map[string]time.Time{}

	for _, row := range rows {
		inst := buildings.Instance{Type: row.Type, Level: row.Level, LastCollected: row.LastCollectedAt}
		yield, last := buildings.Collect(inst, remainder, now)
		remainder = yield.Remainder
		if !yield.Collected {
			continue
		}

		collectedAt[row.Type] = last
		if len(yield.Grants) > 0 {
			grants := make([]rewards.Grant, 0, len(yield.Grants))
			for currency, amount := range yield.Grants {
				grants = append(grants, rewards.Currency(currency, amount))
			}
			outcomes = append(outcomes, rewards.Outcome{Label: row.Type, Grants: grants})
		}
	}

	if len(collectedAt) == 0 {
		return models.Failed(models.StatusNothingToClaim), nil
	}

	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for buildingType, at := range collectedAt {
			if err := datastore.SetBuildingCollected(ctx, tx, userID, buildingType, at); err != nil {
				return err
			}
		}
		if err := datastore.SetDiamondRemainder(ctx, tx, userID, remainder); err != nil {
			return err
		}
		return service.serviceUser.ApplyOutcomes(ctx, tx, userID, guildID, outcomes)
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUserBuildings(userID))

	return models.OK(outcomes...).WithDetail("collected", len(collectedAt)), nil
}
