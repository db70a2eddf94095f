package events

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventBus_PublishSubscribe 测试事件发布与订阅
func TestEventBus_PublishSubscribe(t *testing.T) {
	bus, err := NewEventBus(false)
	require.NoError(t, err)
	defer bus.Close()

	received := make(chan *ScrapeEvent, 1)
	err = bus.Subscribe("test_handler", EventShowScraped, func(event *ScrapeEvent) error {
		received <- event
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Start())

	event := NewScrapeEvent(EventShowScraped, "job-1", "https://example.com/shows/x/1", &ShowScrapedPayload{
		ShowName: "X",
		Title:    "E1",
	})
	require.NoError(t, bus.Publish(context.Background(), event))

	select {
	case got := <-received:
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, EventShowScraped, got.Type)
		assert.Equal(t, "job-1", got.JobID)
	case <-time.After(3 * time.Second):
		t.Fatal("等待事件超时")
	}
}

// TestEventBus_TypeIsolation 不同类型的事件互不干扰
func TestEventBus_TypeIsolation(t *testing.T) {
	bus, err := NewEventBus(false)
	require.NoError(t, err)
	defer bus.Close()

	var scraped, failed int64
	require.NoError(t, bus.Subscribe("scraped_handler", EventShowScraped, func(event *ScrapeEvent) error {
		atomic.AddInt64(&scraped, 1)
		return nil
	}))
	require.NoError(t, bus.Subscribe("failed_handler", EventShowFailed, func(event *ScrapeEvent) error {
		atomic.AddInt64(&failed, 1)
		return nil
	}))
	require.NoError(t, bus.Start())

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewScrapeEvent(EventShowScraped, "job-1", "", nil)))
	require.NoError(t, bus.Publish(ctx, NewScrapeEvent(EventShowScraped, "job-1", "", nil)))
	require.NoError(t, bus.Publish(ctx, NewScrapeEvent(EventShowFailed, "job-1", "", nil)))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&scraped) == 2 && atomic.LoadInt64(&failed) == 1
	}, 3*time.Second, 50*time.Millisecond)
}

// TestEventBus_SubscribeAfterStart 启动后仍可添加订阅
func TestEventBus_SubscribeAfterStart(t *testing.T) {
	bus, err := NewEventBus(false)
	require.NoError(t, err)
	defer bus.Close()

	require.NoError(t, bus.Start())

	received := make(chan struct{}, 1)
	require.NoError(t, bus.Subscribe("late_handler", EventJobCompleted, func(event *ScrapeEvent) error {
		received <- struct{}{}
		return nil
	}))

	// 给动态处理器启动留出时间
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), NewScrapeEvent(EventJobCompleted, "job-2", "", nil)))

	select {
	case <-received:
	case <-time.After(3 * time.Second):
		t.Fatal("等待事件超时")
	}
}

// TestNewScrapeEvent 测试事件构造
func TestNewScrapeEvent(t *testing.T) {
	event := NewScrapeEvent(EventJobSubmitted, "job-1", "", &JobSubmittedPayload{URLs: []string{"u1"}})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventJobSubmitted, event.Type)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Second)
}
