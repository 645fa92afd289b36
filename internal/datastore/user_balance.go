package datastore

import (
	"context"

	"saucebot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserBalance(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserBalance)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserBalance)(nil)).Index("index_user_balance_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetUserBalances(ctx context.Context, db bun.IDB, userID string) ([]models.UserBalance, error) {
	var balances []models.UserBalance
	err := db.NewSelect().Model(&balances).Where("user_id = ?", userID).Order("currency ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return balances, nil
}

func GetBalance(ctx context.Context, db bun.IDB, userID string, currency string) (int64, error) {
	var balance models.UserBalance
	err := db.NewSelect().Model(&balance).Where("user_id = ? AND currency = ?", userID, currency).Scan(ctx)
	if err != nil {
		return 0, err
	}

	return balance.Amount, nil
}

// AdjustBalance upserts the row, adding delta to the stored amount. Negative
// results are clamped to zero: reward grants drive this path and never
// overdraw, and purchase paths check shortfalls before deducting.
func AdjustBalance(ctx context.Context, db bun.IDB, userID string, currency string, delta int64) error {
	balance := &models.UserBalance{UserID: userID, Currency: currency, Amount: delta}
	_, err := db.NewInsert().Model(balance).
		On("CONFLICT (user_id, currency) DO UPDATE").
		Set("amount = GREATEST(user_balance.amount + EXCLUDED.amount, 0)").
		Exec(ctx)
	return err
}

func TopBalances(ctx context.Context, db bun.IDB, currency string, limit int) ([]models.UserBalance, error) {
	var balances []models.UserBalance
	err := db.NewSelect().Model(&balances).
		Where("currency = ?", currency).
		OrderExpr("amount DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return balances, nil
}
