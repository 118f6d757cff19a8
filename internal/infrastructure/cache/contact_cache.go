package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/mycontacts-api/internal/domain/entity"
	"github.com/oksasatya/mycontacts-api/pkg/helpers"
)

// ContactCache keeps each owner's contact list in Redis as one JSON value.
type ContactCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewContactCache(rdb *redis.Client, ttl time.Duration) *ContactCache {
	return &ContactCache{rdb: rdb, ttl: ttl}
}

func contactsKey(owner string) string {
	return "contacts:owner:" + owner
}

func (c *ContactCache) Get(ctx context.Context, owner string) ([]entity.Contact, bool, error) {
	var list []entity.Contact
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, contactsKey(owner), &list)
	if err != nil || !ok {
		return nil, false, err
	}
	return list, true, nil
}

func (c *ContactCache) Set(ctx context.Context, owner string, list []entity.Contact) error {
	return helpers.RedisSetJSON(ctx, c.rdb, contactsKey(owner), list, c.ttl)
}

func (c *ContactCache) Invalidate(ctx context.Context, owner string) error {
	return helpers.RedisDel(ctx, c.rdb, contactsKey(owner))
}
