package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
)

const subscriptionBuffer = 64

// Hub 按预约维度的留言实时分发器
//
// 订阅者通过 Subscribe 获得一个带缓冲通道的句柄；Publish 将新留言
// 推送给该预约的所有在线订阅者。Cancel 之后保证不会再收到任何投递。
// 消费过慢导致缓冲打满时丢弃本条投递（订阅者重连后会重放全量历史）。
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{} // appointmentID → 订阅者集合
	logger *zap.Logger
}

// Subscription 单个订阅句柄
type Subscription struct {
	C chan dto.MessageResponse

	hub           *Hub
	appointmentID string
	once          sync.Once
}

// NewHub 创建 Hub 实例
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		logger: logger,
	}
}

// Subscribe 订阅某预约的实时留言
func (h *Hub) Subscribe(appointmentID string) *Subscription {
	sub := &Subscription{
		C:             make(chan dto.MessageResponse, subscriptionBuffer),
		hub:           h,
		appointmentID: appointmentID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[appointmentID] == nil {
		h.subs[appointmentID] = make(map[*Subscription]struct{})
	}
	h.subs[appointmentID][sub] = struct{}{}

	return sub
}

// Cancel 取消订阅并关闭通道
// 返回后保证不会再有投递（发送与关闭由同一把锁互斥）
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		defer h.mu.Unlock()

		if set, ok := h.subs[s.appointmentID]; ok {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.appointmentID)
			}
		}
		close(s.C)
	})
}

// Publish 向某预约的所有订阅者推送一条留言
func (h *Hub) Publish(appointmentID string, msg dto.MessageResponse) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[appointmentID] {
		select {
		case sub.C <- msg:
		default:
			h.logger.Warn("订阅者消费过慢，丢弃实时留言",
				zap.String("appointment_id", appointmentID),
				zap.String("message_id", msg.ID),
			)
		}
	}
}

// SubscriberCount 当前某预约的在线订阅者数（监控与测试用）
func (h *Hub) SubscriberCount(appointmentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[appointmentID])
}
