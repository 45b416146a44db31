package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	ri "github.com/redis/go-redis/v9"

	"Evermatch/config"
	"Evermatch/internal/model/dto"
	"Evermatch/storage/redis"
)

const (
	searchPrefix = "search"
)

// searchKey 按归一化后的查询词和 limit 取键
// limit 必须参与取键：limit=5 缓存的结果对 limit=20 的请求不是命中
func searchKey(query string, limit int) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return redis.Key(searchPrefix, "users", hex.EncodeToString(sum[:8]), strconv.Itoa(limit))
}

// GetSearchResults 读取搜索结果缓存，未命中返回 (nil, false)
func GetSearchResults(ctx context.Context, query string, limit int) ([]dto.SearchUserItem, bool) {
	data, err := redis.Client().Get(ctx, searchKey(query, limit)).Result()
	if err != nil {
		if err != ri.Nil {
			return nil, false
		}
		return nil, false
	}

	var items []dto.SearchUserItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, true
}

// SetSearchResults 缓存搜索结果，TTL 很短，只用来压掉连续击键产生的重复查询
func SetSearchResults(ctx context.Context, query string, limit int, items []dto.SearchUserItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	ttl := time.Duration(config.Cfg.SearchCacheSeconds) * time.Second
	return redis.Client().Set(ctx, searchKey(query, limit), data, ttl).Err()
}
