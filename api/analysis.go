package api

import (
	"net/http"

	"factcheck/analysis"
	"factcheck/middleware"
	"factcheck/models"
	"factcheck/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxRequestBody 请求体上限，远大于声明长度上限
const maxRequestBody = 64 << 10

// AnalysisHandler 声明核查处理器
type AnalysisHandler struct {
	svc        *service.AnalysisService
	userScoped bool
}

// NewAnalysisHandler 创建核查处理器，userScoped 为 true 时记录按用户隔离
func NewAnalysisHandler(svc *service.AnalysisService, userScoped bool) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, userScoped: userScoped}
}

// CreateAnalysisRequest 核查请求
type CreateAnalysisRequest struct {
	ClaimText string `json:"claimText" example:"The moon is made of cheese"`
}

// owner 提交记录时的归属用户，未登录为 nil
func (h *AnalysisHandler) owner(c *gin.Context) *uint {
	if id := middleware.GetCurrentUserID(c); id != 0 {
		return &id
	}
	return nil
}

// filter 查询/删除时的用户过滤条件，全局模式下不过滤
func (h *AnalysisHandler) filter(c *gin.Context) *uint {
	if !h.userScoped {
		return nil
	}
	return h.owner(c)
}

// Create 提交声明进行核查
// @Summary 核查声明
// @Description 调用带联网搜索的模型评估声明真实性，保存并返回核查结果
// @Tags 核查
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAnalysisRequest true "待核查的声明"
// @Success 201 {object} models.Analysis "核查结果"
// @Failure 400 {object} Response "声明为空或过长"
// @Failure 502 {object} Response "模型回复异常"
// @Failure 503 {object} Response "模型服务未配置"
// @Router /api/analysis [post]
func (h *AnalysisHandler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)

	var req CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "请求参数错误: "+SafeErrorMessage(err, "无法解析请求体"))
		return
	}

	rec, err := h.svc.Submit(c.Request.Context(), req.ClaimText, h.owner(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Get 获取单条核查记录
// @Summary 获取核查记录
// @Tags 核查
// @Produce json
// @Security BearerAuth
// @Param id path string true "记录 ID"
// @Success 200 {object} models.Analysis
// @Failure 400 {object} Response "ID 格式错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/analysis/{id} [get]
func (h *AnalysisHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rec, err := h.svc.Get(c.Request.Context(), id, h.filter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// History 最近的核查记录
// @Summary 核查历史
// @Description 按创建时间倒序返回最近的核查记录
// @Tags 核查
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Analysis
// @Router /api/analysis/history [get]
func (h *AnalysisHandler) History(c *gin.Context) {
	list, err := h.svc.History(c.Request.Context(), h.filter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []models.Analysis{}
	}
	c.JSON(http.StatusOK, list)
}

// Trending 热门声明
// @Summary 热门声明
// @Description 被多次核查的声明，按次数降序，对所有用户公开
// @Tags 核查
// @Produce json
// @Success 200 {array} models.TrendingClaim
// @Router /api/analysis/trending [get]
func (h *AnalysisHandler) Trending(c *gin.Context) {
	claims, err := h.svc.Trending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if claims == nil {
		claims = []models.TrendingClaim{}
	}
	c.JSON(http.StatusOK, claims)
}

// DeleteResponse 删除结果
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Delete 删除核查记录
// @Summary 删除核查记录
// @Tags 核查
// @Produce json
// @Security BearerAuth
// @Param id path string true "记录 ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} Response "ID 格式错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/history/{id} [delete]
func (h *AnalysisHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, h.filter(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Message: "删除成功", ID: id})
}

// parseID 校验路径中的记录 ID，格式错误时直接返回 400
func parseID(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, analysis.InvalidInputf("invalid record id %q", raw))
		return "", false
	}
	return id.String(), true
}
