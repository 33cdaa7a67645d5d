package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/internal/services"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/events"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
	"github.com/Pincessis17/MerchFlow/pkg/pagination"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotificationHandler notification polling and the live platform feed
type NotificationHandler struct {
	service  *services.NotificationService
	bus      *events.Bus
	upgrader websocket.Upgrader
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &NotificationHandler{
		service: service,
		bus:     events.NewBus(database.GetRedis(), cfg.Redis.Prefix),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// ListTenant pages the workspace's notifications
func (h *NotificationHandler) ListTenant(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.service.ListTenant(c.GetUint("company_id"), *params, unreadOnly)
	if err != nil {
		response.ServerError(c, "failed to list notifications")
		return
	}

	response.SuccessWithPage(c, notifications, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// MarkTenantRead marks one workspace notification read
func (h *NotificationHandler) MarkTenantRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.MarkTenantRead(c.GetUint("company_id"), uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "marked read", nil)
}

// ListPlatform pages platform console notifications
func (h *NotificationHandler) ListPlatform(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.service.ListPlatform(*params, unreadOnly)
	if err != nil {
		response.ServerError(c, "failed to list notifications")
		return
	}

	response.SuccessWithPage(c, notifications, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// UnreadPlatformCount the console badge number
func (h *NotificationHandler) UnreadPlatformCount(c *gin.Context) {
	count, err := h.service.UnreadPlatformCount()
	if err != nil {
		response.ServerError(c, "failed to count notifications")
		return
	}
	response.Success(c, gin.H{"unread": count})
}

// MarkPlatformRead marks one platform notification read
func (h *NotificationHandler) MarkPlatformRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return
	}

	if err := h.service.MarkPlatformRead(uint(id)); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "marked read", nil)
}

// MarkAllPlatformRead marks every platform notification read
func (h *NotificationHandler) MarkAllPlatformRead(c *gin.Context) {
	count, err := h.service.MarkAllPlatformRead()
	if err != nil {
		response.ServerError(c, "failed to mark notifications read")
		return
	}
	response.SuccessWithMessage(c, "marked read", gin.H{"updated": count})
}

// StreamPlatform upgrades to a WebSocket and forwards platform
// notifications from the Redis channel as they are published. Auth
// runs in middleware; this route sits behind the owner check.
func (h *NotificationHandler) StreamPlatform(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Errorf("Failed to upgrade WebSocket connection: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.bus.SubscribePlatformNotifications(ctx)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		logger.GetLogger().Errorf("Failed to subscribe to notification channel: %v", err)
		return
	}

	// drain client frames so pong handling works, cancel on close
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	const writeTimeout = 10 * time.Second
	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case msg := <-ch:
			if msg == nil {
				continue
			}
			notification, err := events.Decode(msg.Payload)
			if err != nil {
				logger.GetLogger().Warnf("Failed to decode notification: %v", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(notification); err != nil {
				return
			}
		}
	}
}
