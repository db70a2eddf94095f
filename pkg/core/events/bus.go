package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventHandler 事件处理函数
type EventHandler func(event *ScrapeEvent) error

// EventBus 进程内事件总线（基于Watermill gochannel）
// 按事件类型作为topic发布，处理器通过消息路由器订阅
type EventBus struct {
	pubsub *gochannel.GoChannel
	router *message.Router
	logger watermill.LoggerAdapter

	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewEventBus 创建事件总线
func NewEventBus(debug bool) (*EventBus, error) {
	logger := watermill.NewStdLogger(debug, false)

	pubsub := gochannel.NewGoChannel(
		gochannel.Config{
			Persistent:                     false,
			BlockPublishUntilSubscriberAck: false,
		},
		logger,
	)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, fmt.Errorf("创建消息路由器失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &EventBus{
		pubsub: pubsub,
		router: router,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Subscribe 订阅指定类型的事件
// handlerName在总线内必须唯一
func (b *EventBus) Subscribe(handlerName string, eventType EventType, handler EventHandler) error {
	b.router.AddNoPublisherHandler(
		handlerName,
		string(eventType),
		b.pubsub,
		func(msg *message.Message) error {
			var event ScrapeEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				return fmt.Errorf("反序列化事件失败: %w", err)
			}
			return handler(&event)
		},
	)

	// 路由器已运行时需要单独启动新处理器
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return b.router.RunHandlers(b.ctx)
	}
	return nil
}

// Start 启动消息路由器
func (b *EventBus) Start() error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = true
	b.mu.Unlock()

	go func() {
		if err := b.router.Run(b.ctx); err != nil {
			b.logger.Error("消息路由器退出", err, nil)
		}
	}()

	// 等待路由器就绪
	select {
	case <-b.router.Running():
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("等待消息路由器就绪超时")
	}
}

// Publish 发布事件
func (b *EventBus) Publish(ctx context.Context, event *ScrapeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("job_id", event.JobID)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339Nano))

	if err := b.pubsub.Publish(string(event.Type), msg); err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

// Close 关闭事件总线
func (b *EventBus) Close() error {
	b.cancel()
	if err := b.router.Close(); err != nil {
		return err
	}
	return b.pubsub.Close()
}
