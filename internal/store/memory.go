package store

import (
	"context"
	"sync"
	"time"

	"Evermatch/internal/model"
)

// MemoryStore 内存版草稿存储，测试和 Redis 不可用时的降级路径用
type MemoryStore struct {
	mu       sync.RWMutex
	drafts   map[string]model.AnswerSet
	progress map[string]*model.ProgressRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts:   make(map[string]model.AnswerSet),
		progress: make(map[string]*model.ProgressRecord),
	}
}

func (s *MemoryStore) Read(_ context.Context, deviceID string) model.AnswerSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[deviceID].Clone()
}

func (s *MemoryStore) Write(_ context.Context, deviceID string, partial model.AnswerSet) {
	if len(partial) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[deviceID] = s.drafts[deviceID].Merge(partial)
}

func (s *MemoryStore) Clear(_ context.Context, deviceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, deviceID)
	delete(s.progress, deviceID)
}

func (s *MemoryStore) ReadProgress(_ context.Context, deviceID string) *model.ProgressRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.progress[deviceID]
	if !ok {
		return nil
	}
	clone := *record
	clone.CompletedSteps = append([]string(nil), record.CompletedSteps...)
	return &clone
}

func (s *MemoryStore) TouchProgress(_ context.Context, deviceID string, step string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked(deviceID, step)
}

func (s *MemoryStore) CommitStep(_ context.Context, deviceID string, step string, partial model.AnswerSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[deviceID] = s.drafts[deviceID].Merge(partial)
	s.touchLocked(deviceID, step)
}

func (s *MemoryStore) touchLocked(deviceID string, step string) {
	record, ok := s.progress[deviceID]
	if !ok {
		record = &model.ProgressRecord{}
		s.progress[deviceID] = record
	}
	record.Touch(step, time.Now())
}
