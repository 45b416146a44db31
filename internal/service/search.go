package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/cache"
	"Evermatch/internal/gateway"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/logger"
)

var (
	searchService *SearchService
	searchOnce    sync.Once
)

func Search() *SearchService {
	searchOnce.Do(func() {
		searchService = NewSearch(
			gateway.GetGateway(),
			time.Duration(config.Cfg.SearchDebounceMillis)*time.Millisecond,
		)
	})
	return searchService
}

// Debouncer 代际计数防抖：每次调用领一个新代号，等待期过后
// 只有仍是最新代的调用继续执行，被后续击键顶掉的直接放弃
type Debouncer struct {
	mu    sync.Mutex
	gen   uint64
	delay time.Duration
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Wait 等待防抖窗口，返回 false 表示本次调用已被更新的调用取代或 ctx 取消
func (d *Debouncer) Wait(ctx context.Context) bool {
	d.mu.Lock()
	d.gen++
	mine := d.gen
	d.mu.Unlock()

	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return mine == d.gen
}

// SearchService 管理后台的会员实时搜索
// 防抖压掉连续击键，短 TTL 缓存压掉重复查询，真正的查询打到平台目录
type SearchService struct {
	gw        gateway.Gateway
	debouncer *Debouncer
}

func NewSearch(gw gateway.Gateway, debounce time.Duration) *SearchService {
	return &SearchService{
		gw:        gw,
		debouncer: NewDebouncer(debounce),
	}
}

// SearchUsers 实时搜索，stale 为 true 表示本次请求已被更新的击键取代，结果应丢弃
func (s *SearchService) SearchUsers(ctx context.Context, query dto.SearchUsersQuery) (items []dto.SearchUserItem, stale bool, err error) {
	q := strings.TrimSpace(query.Q)
	if q == "" {
		return []dto.SearchUserItem{}, false, nil
	}

	limit := query.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	if !s.debouncer.Wait(ctx) {
		return nil, true, nil
	}

	if cached, hit := cache.GetSearchResults(ctx, q, limit); hit {
		return cached, false, nil
	}

	items, err = s.gw.SearchUsers(ctx, q, limit)
	if err != nil {
		return nil, false, err
	}
	if items == nil {
		items = []dto.SearchUserItem{}
	}

	if err := cache.SetSearchResults(ctx, q, limit, items); err != nil {
		logger.Logger.Warn("Failed to cache search results",
			zap.String("query", q),
			zap.Error(err),
		)
	}

	return items, false, nil
}
