package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUserBoxLock = errors.New("user box locked")
var ErrUserBuildingLock = errors.New("user building locked")
var ErrUserClaimLock = errors.New("user claim locked")
var ErrSpawnLock = errors.New("spawn locked")

const (
	CONFIG_SERVER_MODE             = "SERVER_MODE"
	CONFIG_LEADERBOARD_LIMIT       = "LEADERBOARD_LIMIT"
	CONFIG_SPAWN_COOLDOWN_SECONDS  = "SPAWN_COOLDOWN_SECONDS"
	CONFIG_ACTIVITY_TTL_SECONDS    = "ACTIVITY_TTL_SECONDS"
	CONFIG_GUESS_RANGE_MAX         = "GUESS_RANGE_MAX"
	CONFIG_XP_PER_MESSAGE          = "XP_PER_MESSAGE"
	CONFIG_BOOST_DURATION_MINUTES  = "BOOST_DURATION_MINUTES"
	CONFIG_NOTIFY_COOLDOWN_MINUTES = "NOTIFY_COOLDOWN_MINUTES"
	CONFIG_TEXT_WELCOME            = "TEXT_WELCOME"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	LEADERBOARD_DEFAULT_LIMIT = 20
	SPAWN_COOLDOWN_DEFAULT    = 90
	ACTIVITY_TTL_DEFAULT      = 120
	GUESS_RANGE_MAX_DEFAULT   = 100
	XP_PER_MESSAGE_DEFAULT    = 2
	BOOST_DURATION_DEFAULT    = 30
	NOTIFY_COOLDOWN_DEFAULT   = 60

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
	CACHE_TTL_1_DAY      = 24 * time.Hour
)

func LockKeyUserBox(userID string) string {
	return fmt.Sprintf("lock:user-box:%s", userID)
}

func LockKeyUserBuilding(userID string) string {
	return fmt.Sprintf("lock:user-building:%s", userID)
}

func LockKeyUserClaim(userID string, kind string) string {
	return fmt.Sprintf("lock:user-claim:%s:%s", userID, kind)
}

func LockKeySpawn(channelID string) string {
	return fmt.Sprintf("lock:spawn:%s", channelID)
}

// db
func DBKeyUser(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func DBKeyProfile(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

func DBKeyUserBuildings(userID string) string {
	return fmt.Sprintf("user:%s:buildings", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyLeaderboardView(guildID string, board string) string {
	return fmt.Sprintf("leaderboard_view:%s:%s", guildID, board)
}
