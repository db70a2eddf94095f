package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/LENAX/hotstar-scraper/pkg/core/events"
)

// StreamHandler WebSocket事件推送处理器
// 订阅事件总线并向所有连接的客户端广播抓取事件
type StreamHandler struct {
	upgrader websocket.Upgrader
	clients  sync.Map // *websocket.Conn -> *sync.Mutex（写锁）
}

// NewStreamHandler 创建StreamHandler并订阅全部事件类型
func NewStreamHandler(bus *events.EventBus) (*StreamHandler, error) {
	h := &StreamHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	eventTypes := []events.EventType{
		events.EventJobSubmitted,
		events.EventJobCompleted,
		events.EventShowStarted,
		events.EventShowScraped,
		events.EventShowFailed,
	}
	for _, eventType := range eventTypes {
		handlerName := fmt.Sprintf("ws_broadcast_%s", eventType)
		if err := bus.Subscribe(handlerName, eventType, h.broadcast); err != nil {
			return nil, fmt.Errorf("订阅事件推送失败: %w", err)
		}
	}
	return h, nil
}

// Stream 建立WebSocket连接
// GET /api/v1/events/stream
func (h *StreamHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("⚠️ [API] WebSocket升级失败: %v", err)
		return
	}

	h.clients.Store(conn, &sync.Mutex{})
	log.Printf("📡 [API] WebSocket客户端已连接: %s", conn.RemoteAddr())

	// 读循环仅用于感知客户端断开
	go func() {
		defer func() {
			h.clients.Delete(conn)
			conn.Close()
			log.Printf("📡 [API] WebSocket客户端已断开: %s", conn.RemoteAddr())
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast 向所有客户端推送事件（事件订阅回调）
func (h *StreamHandler) broadcast(event *events.ScrapeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("编码推送事件失败: %w", err)
	}

	h.clients.Range(func(key, value interface{}) bool {
		conn := key.(*websocket.Conn)
		mu := value.(*sync.Mutex)

		mu.Lock()
		writeErr := conn.WriteMessage(websocket.TextMessage, data)
		mu.Unlock()

		if writeErr != nil {
			h.clients.Delete(conn)
			conn.Close()
		}
		return true
	})
	return nil
}
