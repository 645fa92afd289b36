package services

import (
	"context"
	"time"

	"saucebot/internal/activities"
	"saucebot/internal/models"
	"saucebot/internal/rewards"
)

// StartSugarRush opens a guild-wide Sugar Rush window. Box currency rewards
// triple while it lasts.
func (service *ServiceActivity) StartSugarRush(ctx context.Context, guildID string) (*models.Result, error) {
	minutes, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_BOOST_DURATION_MINUTES, BOOST_DURATION_DEFAULT)
	duration := time.Duration(minutes) * time.Minute

	_, err := service.registry.Create(activities.ScopeGuild(guildID), activities.KindBoost, duration, func(a *activities.Activity) {
		a.Multiplier = rewards.SugarRushFactor
	})
	if err != nil {
		return models.Failed(models.StatusCooldown), nil
	}

	return models.OK().WithDetail("duration_minutes", minutes), nil
}
