package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Pincessis17/MerchFlow/internal/database"
	"github.com/Pincessis17/MerchFlow/pkg/config"
	"github.com/Pincessis17/MerchFlow/pkg/logger"
	"github.com/Pincessis17/MerchFlow/pkg/response"

	"github.com/gin-gonic/gin"
)

// LoginRateLimit throttles login attempts per client IP and email with
// a fixed one-minute window in Redis. If Redis is down the request is
// let through rather than locking everyone out.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := config.GetConfig()
		limit := cfg.Platform.LoginRateLimitPerMin
		if limit <= 0 {
			c.Next()
			return
		}

		ip := strings.ReplaceAll(c.ClientIP(), ":", "_")
		email := peekLoginEmail(c)
		window := time.Now().Unix() / 60
		key := fmt.Sprintf("%s:ratelimit:login:%s:%s:%d", cfg.Redis.Prefix, ip, email, window)

		rdb := database.GetRedis()
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			logger.GetLogger().Warnf("Login rate limit check failed: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}

		if count > int64(limit) {
			response.TooManyRequests(c, "too many login attempts, try again in a minute")
			c.Abort()
			return
		}

		c.Next()
	}
}

// peekLoginEmail reads the email from the login body without consuming
// it, so the handler can still bind the request
func peekLoginEmail(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(payload.Email))
}
