package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/watchbox/internal/handler"
	"github.com/user/watchbox/internal/middleware"
)

// Deps 路由依赖
type Deps struct {
	Session     middleware.SessionChecker
	AuthLimiter *middleware.IPRateLimiter // 为 nil 时不限流
	Metrics     http.Handler              // 为 nil 时不暴露 /metrics
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler, deps Deps) {
	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	// ==================== 认证 ====================
	auth := r.Group("/auth")
	{
		limited := auth.Group("")
		if deps.AuthLimiter != nil {
			limited.Use(deps.AuthLimiter.Middleware())
		}
		limited.POST("/signup", h.Signup)
		limited.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.Session)
	}

	api := r.Group("/api")
	{
		// 影片目录（公开）
		api.GET("/genres", h.Genres)
		api.GET("/movies/popular", h.PopularMovies)
		api.GET("/movies/search", h.SearchMovies)
		api.GET("/movies/:id", h.MovieDetail)
		api.GET("/movies/:id/credits", h.MovieCredits)

		// 筛选条件
		api.GET("/filters", h.Filters)
		api.PUT("/filters", h.UpdateFilters)
		api.POST("/filters/genres/:genre", h.ToggleGenre)
		api.POST("/filters/reset", h.ResetFilters)
	}

	// ==================== 待看清单（需要登录）====================
	watchlist := r.Group("/api/watchlist")
	watchlist.Use(middleware.RequireSession(deps.Session))
	{
		watchlist.GET("", h.Watchlist)
		watchlist.POST("", h.AddToWatchlist)
		watchlist.GET("/:movieId", h.WatchlistStatus)
		watchlist.DELETE("/:movieId", h.RemoveFromWatchlist)
	}
}
