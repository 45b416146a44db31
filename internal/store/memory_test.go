package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Evermatch/internal/model"
)

func TestMemoryStore_WriteMergesFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "dev-1", model.AnswerSet{"first_name": "Ana", "age": 28})
	s.Write(ctx, "dev-1", model.AnswerSet{"city": "Lisbon"})

	got := s.Read(ctx, "dev-1")
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got["first_name"])
	assert.Equal(t, 28, got["age"])
	assert.Equal(t, "Lisbon", got["city"])
}

func TestMemoryStore_WriteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	payload := model.AnswerSet{"gender": "woman", "age": 30}

	s.Write(ctx, "dev-1", payload)
	s.Write(ctx, "dev-1", payload)

	got := s.Read(ctx, "dev-1")
	assert.Len(t, got, 2)
	assert.Equal(t, "woman", got["gender"])
}

func TestMemoryStore_LaterWriteOverwritesField(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "dev-1", model.AnswerSet{"city": "Lisbon"})
	s.Write(ctx, "dev-1", model.AnswerSet{"city": "Porto"})

	assert.Equal(t, "Porto", s.Read(ctx, "dev-1")["city"])
}

func TestMemoryStore_ReadReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "dev-1", model.AnswerSet{"city": "Lisbon"})

	got := s.Read(ctx, "dev-1")
	got["city"] = "mutated"

	assert.Equal(t, "Lisbon", s.Read(ctx, "dev-1")["city"])
}

func TestMemoryStore_EmptyWriteIsNoop(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "dev-1", nil)
	s.Write(ctx, "dev-1", model.AnswerSet{})

	assert.Nil(t, s.Read(ctx, "dev-1"))
}

func TestMemoryStore_CompletedStepsAppendOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.TouchProgress(ctx, "dev-1", "basics")
	s.TouchProgress(ctx, "dev-1", "background-series-one")
	// 回头重做早前步骤不会收缩已完成集合
	s.TouchProgress(ctx, "dev-1", "basics")

	record := s.ReadProgress(ctx, "dev-1")
	require.NotNil(t, record)
	assert.Equal(t, "basics", record.CurrentStep)
	assert.Equal(t, []string{"basics", "background-series-one"}, record.CompletedSteps)
}

func TestMemoryStore_CommitStepWritesBoth(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.CommitStep(ctx, "dev-1", "basics", model.AnswerSet{"first_name": "Ana"})

	assert.Equal(t, "Ana", s.Read(ctx, "dev-1")["first_name"])
	record := s.ReadProgress(ctx, "dev-1")
	require.NotNil(t, record)
	assert.True(t, record.Completed("basics"))
	assert.False(t, record.StartedAt.IsZero())
}

func TestMemoryStore_ClearResetsEverything(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.CommitStep(ctx, "dev-1", "basics", model.AnswerSet{"first_name": "Ana"})
	s.Clear(ctx, "dev-1")

	assert.Nil(t, s.Read(ctx, "dev-1"))
	assert.Nil(t, s.ReadProgress(ctx, "dev-1"))
}

func TestMemoryStore_DevicesAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Write(ctx, "dev-1", model.AnswerSet{"city": "Lisbon"})

	assert.Nil(t, s.Read(ctx, "dev-2"))
}
