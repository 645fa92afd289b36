package datastore

import (
	"context"
	"time"

	"saucebot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserBuilding(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserBuilding)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserBuilding)(nil)).Index("index_user_building_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetUserBuildings(ctx context.Context, db bun.IDB, userID string) ([]models.UserBuilding, error) {
	var rows []models.UserBuilding
	err := db.NewSelect().Model(&rows).Where("user_id = ?", userID).Order("type ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func GetUserBuilding(ctx context.Context, db bun.IDB, userID string, buildingType string) (*models.UserBuilding, error) {
	var row models.UserBuilding
	err := db.NewSelect().Model(&row).Where("user_id = ? AND type = ?", userID, buildingType).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func SetBuildingLevel(ctx context.Context, db bun.IDB, userID string, buildingType string, level int) error {
	row := &models.UserBuilding{UserID: userID, Type: buildingType, Level: level, LastCollectedAt: time.Now()}
	_, err := db.NewInsert().Model(row).
		On("CONFLICT (user_id, type) DO UPDATE").
		Set("level = EXCLUDED.level").
		Exec(ctx)
	return err
}

func SetBuildingCollected(ctx context.Context, db bun.IDB, userID string, buildingType string, at time.Time) error {
	_, err := db.NewUpdate().Model((*models.UserBuilding)(nil)).
		Set("last_collected_at = ?", at).
		Where("user_id = ? AND type = ?", userID, buildingType).
		Exec(ctx)
	return err
}
