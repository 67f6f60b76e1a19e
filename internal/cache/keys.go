package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	TagListKey         = "tags"
	ShortLinkKeyPrefix = "shortlink:%s"
)

const (
	TagListTTL   = 10 * time.Minute
	ShortLinkTTL = 24 * time.Hour
)

func ShortLinkKey(token string) string {
	return fmt.Sprintf(ShortLinkKeyPrefix, token)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateTagList(ctx context.Context) {
	Invalidate(ctx, TagListKey)
}
