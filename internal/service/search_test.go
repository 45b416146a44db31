package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerSingleCaller(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	assert.True(t, d.Wait(context.Background()))
}

func TestDebouncerZeroDelay(t *testing.T) {
	d := NewDebouncer(0)
	assert.True(t, d.Wait(context.Background()))
}

func TestDebouncerLaterCallSupersedes(t *testing.T) {
	d := NewDebouncer(100 * time.Millisecond)

	first := make(chan bool, 1)
	go func() {
		first <- d.Wait(context.Background())
	}()

	// 第一个调用还在防抖窗口内时发起第二个，模拟连续击键
	time.Sleep(20 * time.Millisecond)
	second := d.Wait(context.Background())

	assert.False(t, <-first, "superseded keystroke must be dropped")
	assert.True(t, second, "latest keystroke wins")
}

func TestDebouncerContextCancel(t *testing.T) {
	d := NewDebouncer(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	assert.False(t, d.Wait(ctx))
	assert.Less(t, time.Since(start), 500*time.Millisecond, "cancel must not wait out the full window")
}
