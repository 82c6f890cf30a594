package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/watchbox/internal/utils"
)

// UpdateFiltersRequest 只更新传入的字段
type UpdateFiltersRequest struct {
	Genres    *[]string `json:"selectedGenres"`
	YearRange *[2]int   `json:"yearRange"`
	MinRating *float64  `json:"minRating"`
}

// Filters 当前筛选条件
func (h *Handler) Filters(c *gin.Context) {
	utils.Success(c, h.filters.State())
}

// UpdateFilters 更新筛选条件
func (h *Handler) UpdateFilters(c *gin.Context) {
	var req UpdateFiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	if req.Genres != nil {
		h.filters.SetGenres(*req.Genres)
	}
	if req.YearRange != nil {
		h.filters.SetYearRange(req.YearRange[0], req.YearRange[1])
	}
	if req.MinRating != nil {
		h.filters.SetMinRating(*req.MinRating)
	}
	utils.Success(c, h.filters.State())
}

// ToggleGenre 切换某个类型的选中状态
func (h *Handler) ToggleGenre(c *gin.Context) {
	h.filters.ToggleGenre(c.Param("genre"))
	utils.Success(c, h.filters.State())
}

// ResetFilters 恢复默认筛选条件
func (h *Handler) ResetFilters(c *gin.Context) {
	h.filters.Reset()
	utils.Success(c, h.filters.State())
}
