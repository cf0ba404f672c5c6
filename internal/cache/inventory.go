package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	UserMutesKeyPrefix = "user:%d:mutes"
)

const (
	UserTTL      = 5 * time.Minute
	UserMutesTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func UserMutesKey(userID uint) string {
	return fmt.Sprintf(UserMutesKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateUserMutes(ctx context.Context, userID uint) {
	Invalidate(ctx, UserMutesKey(userID))
}
