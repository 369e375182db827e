package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api/response"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/service"
	"gorm.io/gorm"
)

type MealController struct {
	service *service.MealService
}

// NewMealController 构造函数
func NewMealController(s *service.MealService) *MealController {
	return &MealController{service: s}
}

// CreateLogRequest 保存一餐的参数
type CreateLogRequest struct {
	Items         []model.EstimatedFoodItem `json:"items" binding:"required"`
	TotalCalories float64                   `json:"total_calories"`
	PhotoURL      string                    `json:"photo_url"`
	PlateSizeCM   float64                   `json:"plate_size_cm"`
	CreatedAt     string                    `json:"created_at"` // RFC3339，可选（离线补录）
}

// CreateLog 保存一餐记录
// @Summary 保存一餐记录
// @Tags Log
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLogRequest true "记录参数"
// @Success 200 {object} response.Response{data=model.MealLog}
// @Router /log [post]
func (ctrl *MealController) CreateLog(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	var createdAt *time.Time
	if req.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.CreatedAt); err == nil {
			createdAt = &t
		}
		// 解析失败就当没传，兜底用当前时间
	}

	log, err := ctrl.service.CreateLog(c.Request.Context(), userID,
		req.Items, req.TotalCalories, req.PhotoURL, req.PlateSizeCM, createdAt)
	if err != nil {
		slog.Error("保存记录失败", "userID", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, "保存失败")
		return
	}
	response.Success(c, log)
}

// ListLogs 记录列表
// @Summary 记录列表
// @Description date 参数格式 2006-01-02，只取那一天；不传取全部
// @Tags Log
// @Produce json
// @Security BearerAuth
// @Param date query string false "日期"
// @Success 200 {object} response.Response{data=[]model.MealLog}
// @Router /log [get]
func (ctrl *MealController) ListLogs(c *gin.Context) {
	userID := c.GetString("userID")

	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		// 容忍带时间的日期串，只取前 10 位
		if len(dateStr) > 10 {
			dateStr = dateStr[:10]
		}
		if t, err := time.Parse("2006-01-02", dateStr); err == nil {
			day = &t
		}
	}

	logs, err := ctrl.service.ListLogs(c.Request.Context(), userID, day)
	if err != nil {
		slog.Error("获取记录列表失败", "userID", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, "获取列表失败")
		return
	}
	response.Success(c, logs)
}

// Summary 7 日汇总
// @Summary 最近 7 天每日热量合计
// @Tags Log
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]service.DailySummary}
// @Router /log/summary [get]
func (ctrl *MealController) Summary(c *gin.Context) {
	userID := c.GetString("userID")

	summary, err := ctrl.service.Summary(c.Request.Context(), userID)
	if err != nil {
		slog.Error("获取汇总失败", "userID", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, "获取汇总失败")
		return
	}
	response.Success(c, gin.H{"summary": summary})
}

// GetLog 单条记录
// @Summary 单条记录详情
// @Tags Log
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} response.Response{data=model.MealLog}
// @Router /log/{id} [get]
func (ctrl *MealController) GetLog(c *gin.Context) {
	userID := c.GetString("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "非法 ID")
		return
	}

	log, err := ctrl.service.GetLog(c.Request.Context(), userID, uint(id))
	if err != nil {
		ctrl.mapLogError(c, err)
		return
	}
	response.Success(c, log)
}

// DeleteLog 删除记录
// @Summary 删除记录，仅限本人
// @Tags Log
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录 ID"
// @Success 200 {object} response.Response
// @Router /log/{id} [delete]
func (ctrl *MealController) DeleteLog(c *gin.Context) {
	userID := c.GetString("userID")

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "非法 ID")
		return
	}

	if err := ctrl.service.DeleteLog(c.Request.Context(), userID, uint(id)); err != nil {
		ctrl.mapLogError(c, err)
		return
	}
	response.Success(c, nil)
}

func (ctrl *MealController) mapLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "记录不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, "无权操作此记录")
	default:
		slog.Error("记录操作失败", "error", err)
		response.Error(c, http.StatusInternalServerError, err.Error())
	}
}
