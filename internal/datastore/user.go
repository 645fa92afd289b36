package datastore

import (
	"context"
	"time"

	"saucebot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_created_at").IfNotExists().Column("created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindUserByID(ctx context.Context, db bun.IDB, userID string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func InsertUser(ctx context.Context, db bun.IDB, user *models.User) error {
	_, err := db.NewInsert().Model(user).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	return err
}

func EditUser(ctx context.Context, db bun.IDB, user *models.User) (*models.User, error) {
	user.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func CountUsers(ctx context.Context, db *bun.DB) (int, error) {
	return db.NewSelect().Model((*models.User)(nil)).Count(ctx)
}

func AddGoldenXP(ctx context.Context, db bun.IDB, userID string, delta int64) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("golden_xp = golden_xp + ?", delta).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

func SetDiamondRemainder(ctx context.Context, db bun.IDB, userID string, remainder float64) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("diamond_remainder = ?", remainder).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}

func BumpCounter(ctx context.Context, db bun.IDB, userID string, column string, delta int) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("? = ? + ?", bun.Ident(column), bun.Ident(column), delta).
		Where("id = ?", userID).
		Exec(ctx)
	return err
}
