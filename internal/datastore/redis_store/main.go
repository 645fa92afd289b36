package redis_store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saucebot/internal/models"
	"saucebot/internal/pkg/caching"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const DAILY_SNAPSHOT_TTL = 36 * time.Hour

func dbKeyLeaderboard(guildID string, board string) string {
	return fmt.Sprintf("leaderboard:%s:%s", strings.ToLower(board), guildID)
}

func dbKeySpawnCooldown(channelID string) string {
	return fmt.Sprintf("spawn:cooldown:%s", channelID)
}

func dbKeyUserBoost(userID string) string {
	return fmt.Sprintf("user:%s:boost", userID)
}

func dbKeyPassClaims(userID string) string {
	return fmt.Sprintf("user:%s:pass_claims", userID)
}

func dbKeyDailySnapshot(guildID string, day string) string {
	return fmt.Sprintf("snapshot:daily:%s:%s", guildID, day)
}

func dbKeyLastNotify(userID string) string {
	return fmt.Sprintf("user:%s:last_notify", userID)
}

// Leaderboards are sorted sets keyed per guild. Scores are written on every
// grant so reads never touch Postgres.

func BumpLeaderboard(ctx context.Context, cmd redis.Cmdable, guildID string, board string, userID string, delta float64) error {
	return cmd.ZIncrBy(ctx, dbKeyLeaderboard(guildID, board), delta, userID).Err()
}

func SetLeaderboardScore(ctx context.Context, cmd redis.Cmdable, guildID string, board string, userID string, score float64) error {
	return cmd.ZAdd(ctx, dbKeyLeaderboard(guildID, board), redis.Z{Score: score, Member: userID}).Err()
}

func TopLeaderboard(ctx context.Context, cmd redis.Cmdable, guildID string, board string, limit int64) ([]models.LeaderboardEntry, error) {
	rows, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(guildID, board), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		userID, ok := row.Member.(string)
		if !ok {
			continue
		}

		entries = append(entries, models.LeaderboardEntry{
			Rank:   i + 1,
			UserID: userID,
			Score:  int64(row.Score),
		})
	}

	return entries, nil
}

func LeaderboardRank(ctx context.Context, cmd redis.Cmdable, guildID string, board string, userID string) (int64, error) {
	rank, err := cmd.ZRevRank(ctx, dbKeyLeaderboard(guildID, board), userID).Result()
	if err != nil {
		return 0, err
	}

	return rank + 1, nil
}

func ResetLeaderboard(ctx context.Context, cmd redis.UniversalClient, guildID string, board string) error {
	return caching.DeleteKeys(ctx, cmd, dbKeyLeaderboard(guildID, board))
}

// Spawn cooldowns gate how often a channel can host a popup or drop. SetNX
// makes the check and the claim a single round trip.

func TrySpawnCooldown(ctx context.Context, cmd redis.Cmdable, channelID string, ttl time.Duration) (bool, error) {
	return cmd.SetNX(ctx, dbKeySpawnCooldown(channelID), time.Now().Unix(), ttl).Result()
}

func ClearSpawnCooldown(ctx context.Context, cmd redis.Cmdable, channelID string) error {
	return cmd.Del(ctx, dbKeySpawnCooldown(channelID)).Err()
}

// Boost state mirrors the in-memory registry so a restart does not strand a
// paid multiplier.

func SaveBoost(ctx context.Context, cmd redis.Cmdable, userID string, boost *models.BoostState) error {
	if boost.Multiplier <= 0 {
		return errors.New("invalid boost")
	}

	b, err := msgpack.Marshal(boost)
	if err != nil {
		return err
	}

	ttl := time.Until(boost.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	return cmd.Set(ctx, dbKeyUserBoost(userID), b, ttl).Err()
}

func GetBoost(ctx context.Context, cmd redis.Cmdable, userID string) (*models.BoostState, error) {
	var v *models.BoostState
	b, err := cmd.Get(ctx, dbKeyUserBoost(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}

// Pass claims are a set of tier numbers the user already cashed in.

func MarkPassClaim(ctx context.Context, cmd redis.Cmdable, userID string, tier int) (bool, error) {
	added, err := cmd.SAdd(ctx, dbKeyPassClaims(userID), tier).Result()
	if err != nil {
		return false, err
	}

	return added > 0, nil
}

func PassClaims(ctx context.Context, cmd redis.Cmdable, userID string) ([]string, error) {
	return cmd.SMembers(ctx, dbKeyPassClaims(userID)).Result()
}

func SaveDailySnapshot(ctx context.Context, cmd redis.Cmdable, guildID string, day string, entries []models.LeaderboardEntry) error {
	b, err := msgpack.Marshal(entries)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyDailySnapshot(guildID, day), b, DAILY_SNAPSHOT_TTL).Err()
}

func GetDailySnapshot(ctx context.Context, cmd redis.Cmdable, guildID string, day string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	b, err := cmd.Get(ctx, dbKeyDailySnapshot(guildID, day)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &entries)
	return entries, err
}

func ShouldNotify(ctx context.Context, cmd redis.Cmdable, userID string, cooldown time.Duration) (bool, error) {
	return cmd.SetNX(ctx, dbKeyLastNotify(userID), time.Now().Unix(), cooldown).Result()
}
