package datastore

import (
	"context"

	"saucebot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUserXP(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserXP)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserXP)(nil)).Index("index_user_xp_guild_id").IfNotExists().Column("guild_id").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetUserXP(ctx context.Context, db bun.IDB, userID string, guildID string) (int64, error) {
	var row models.UserXP
	err := db.NewSelect().Model(&row).Where("user_id = ? AND guild_id = ?", userID, guildID).Scan(ctx)
	if err != nil {
		return 0, err
	}

	return row.XP, nil
}

func AddUserXP(ctx context.Context, db bun.IDB, userID string, guildID string, delta int64) error {
	row := &models.UserXP{UserID: userID, GuildID: guildID, XP: delta}
	_, err := db.NewInsert().Model(row).
		On("CONFLICT (user_id, guild_id) DO UPDATE").
		Set("xp = user_xp.xp + EXCLUDED.xp").
		Exec(ctx)
	return err
}

func TopUserXP(ctx context.Context, db bun.IDB, guildID string, limit int) ([]models.UserXP, error) {
	var rows []models.UserXP
	err := db.NewSelect().Model(&rows).
		Where("guild_id = ?", guildID).
		OrderExpr("xp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return rows, nil
}
