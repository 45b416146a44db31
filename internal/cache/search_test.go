package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchKeyNormalizesQuery(t *testing.T) {
	assert.Equal(t, searchKey("Ada", 10), searchKey("  ada ", 10))
}

func TestSearchKeyVariesByQueryAndLimit(t *testing.T) {
	assert.NotEqual(t, searchKey("ada", 10), searchKey("bob", 10))

	// limit 不同就是不同的缓存条目，limit=5 的结果不能喂给 limit=20 的请求
	assert.NotEqual(t, searchKey("ada", 5), searchKey("ada", 20))
}
