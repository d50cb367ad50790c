package handler

import (
	"tubo-go/internal/api/response"
	"tubo-go/internal/service"
	"tubo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search 综合搜索
// @Summary 综合搜索
// @Description 按关键词搜索视频和频道
// @Tags 搜索
// @Produce json
// @Param q query string true "搜索关键词"
// @Success 200 {object} response.Response{data=dto.SearchResultData} "搜索成功"
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	data, err := h.searchService.Search(c.Query("q"))
	if err != nil {
		logger.Error("Search failed", zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索成功", data)
}
