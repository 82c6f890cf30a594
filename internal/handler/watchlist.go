package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/watchbox/internal/middleware"
	"github.com/user/watchbox/internal/model"
	"github.com/user/watchbox/internal/utils"
)

// AddWatchlistRequest 加入待看清单
type AddWatchlistRequest struct {
	MovieID   string `json:"movieId" binding:"required,imdbid"`
	Title     string `json:"title" binding:"required"`
	PosterURL string `json:"posterUrl"`
}

type watchlistURI struct {
	MovieID string `uri:"movieId" binding:"required,imdbid"`
}

// Watchlist 当前用户的待看清单
func (h *Handler) Watchlist(c *gin.Context) {
	utils.Success(c, h.watchlist.State())
}

// AddToWatchlist 加入待看清单
func (h *Handler) AddToWatchlist(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	var req AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	movie := model.Movie{ID: req.MovieID, Title: req.Title, PosterURL: req.PosterURL}
	if !h.watchlist.Add(c.Request.Context(), movie, user.ID) {
		utils.BadGateway(c, "加入待看清单失败")
		return
	}
	utils.SuccessWithMessage(c, "已加入待看清单", h.watchlist.State())
}

// RemoveFromWatchlist 移出待看清单
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	var uri watchlistURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.BadRequest(c, "影片 ID 格式错误")
		return
	}

	if !h.watchlist.Remove(c.Request.Context(), uri.MovieID, user.ID) {
		utils.BadGateway(c, "移出待看清单失败")
		return
	}
	utils.SuccessWithMessage(c, "已移出待看清单", h.watchlist.State())
}

// WatchlistStatus 是否在待看清单中
func (h *Handler) WatchlistStatus(c *gin.Context) {
	var uri watchlistURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.BadRequest(c, "影片 ID 格式错误")
		return
	}
	utils.Success(c, gin.H{
		"movieId":     uri.MovieID,
		"inWatchlist": h.watchlist.IsInWatchlist(uri.MovieID),
	})
}
