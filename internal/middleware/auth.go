package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/user/watchbox/internal/model"
	"github.com/user/watchbox/internal/store"
	"github.com/user/watchbox/internal/utils"
)

const userContextKey = "session_user"

// SessionChecker 会话检查，由 *store.AuthStore 实现
type SessionChecker interface {
	CheckSession() bool
	State() store.AuthState
}

// RequireSession 必须登录中间件
// 每次请求都检查会话是否过期，过期会被清空并返回 401
func RequireSession(auth SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.CheckSession() {
			utils.Unauthorized(c, "未登录或会话已过期")
			c.Abort()
			return
		}

		// CheckSession 与 State 之间会话可能被定时器清掉
		state := auth.State()
		if state.User == nil {
			utils.Unauthorized(c, "未登录或会话已过期")
			c.Abort()
			return
		}

		c.Set(userContextKey, *state.User)
		c.Next()
	}
}

// GetSessionUser 从上下文获取当前用户（未登录返回 nil）
func GetSessionUser(c *gin.Context) *model.User {
	if v, exists := c.Get(userContextKey); exists {
		if u, ok := v.(model.User); ok {
			return &u
		}
	}
	return nil
}
