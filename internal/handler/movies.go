package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/user/watchbox/internal/service"
	"github.com/user/watchbox/internal/utils"
)

type movieURI struct {
	ID string `uri:"id" binding:"required,imdbid"`
}

// Genres 类型列表
func (h *Handler) Genres(c *gin.Context) {
	utils.Success(c, h.catalog.FetchGenres())
}

// PopularMovies 热门影片，按当前筛选条件过滤
func (h *Handler) PopularMovies(c *gin.Context) {
	movies := h.catalog.FetchPopularMovies(c.Request.Context(), c.Query("pageToken"))
	utils.Success(c, h.filters.Apply(movies))
}

// SearchMovies 搜索影片，关键词过短返回空列表
func (h *Handler) SearchMovies(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	utils.Success(c, h.catalog.SearchMovies(c.Request.Context(), q))
}

// MovieDetail 影片详情（含演员表）
func (h *Handler) MovieDetail(c *gin.Context) {
	var uri movieURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.BadRequest(c, "影片 ID 格式错误")
		return
	}

	movie, err := h.catalog.FetchMoviePage(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			utils.NotFound(c, "影片不存在")
			return
		}
		utils.BadGateway(c, "获取影片详情失败")
		return
	}
	utils.Success(c, movie)
}

// MovieCredits 演员表
func (h *Handler) MovieCredits(c *gin.Context) {
	var uri movieURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.BadRequest(c, "影片 ID 格式错误")
		return
	}
	utils.Success(c, h.catalog.FetchMovieCredits(c.Request.Context(), uri.ID))
}
