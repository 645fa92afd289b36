package datastore

import (
	"context"

	"saucebot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserInventory(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserInventory)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserInventory)(nil)).Index("index_user_inventory_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetUserInventory(ctx context.Context, db bun.IDB, userID string) ([]models.UserInventory, error) {
	var lines []models.UserInventory
	err := db.NewSelect().Model(&lines).Where("user_id = ?", userID).Order("kind ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return lines, nil
}

func GetInventoryLine(ctx context.Context, db bun.IDB, userID string, kind string) (*models.UserInventory, error) {
	var line models.UserInventory
	err := db.NewSelect().Model(&line).Where("user_id = ? AND kind = ?", userID, kind).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &line, nil
}

func AddInventory(ctx context.Context, db bun.IDB, userID string, kind string, delta int64) error {
	line := &models.UserInventory{UserID: userID, Kind: kind, Quantity: delta}
	_, err := db.NewInsert().Model(line).
		On("CONFLICT (user_id, kind) DO UPDATE").
		Set("quantity = user_inventory.quantity + EXCLUDED.quantity").
		Exec(ctx)
	if err != nil {
		return err
	}

	// a line at or below zero is removed
	_, err = db.NewDelete().Model((*models.UserInventory)(nil)).
		Where("user_id = ? AND kind = ? AND quantity <= 0", userID, kind).
		Exec(ctx)
	return err
}

func RemoveInventory(ctx context.Context, db bun.IDB, userID string, kind string, delta int64) error {
	return AddInventory(ctx, db, userID, kind, -delta)
}
