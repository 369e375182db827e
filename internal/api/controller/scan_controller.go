package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api/response"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/vision"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/service"
)

type ScanController struct {
	service *service.ScanService
}

// NewScanController 构造函数
func NewScanController(s *service.ScanService) *ScanController {
	return &ScanController{service: s}
}

// Scan 拍照估算
// @Summary 拍照估算热量
// @Description 上传餐盘照片，AI 识别食物并逐项估算热量/宏量。每次成功调用消耗 1 次扫描额度。
// @Tags Scan
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "餐盘照片"
// @Param plate_size_cm formData number false "盘子直径(cm)，辅助份量估计"
// @Success 200 {object} response.Response{data=service.ScanResult}
// @Failure 402 {object} response.Response "扫描额度用完"
// @Router /scan [post]
func (ctrl *ScanController) Scan(c *gin.Context) {
	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "缺少 image 文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "图片读取失败")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "图片读取失败")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	plateSizeCM := 0.0
	if v := c.PostForm("plate_size_cm"); v != "" {
		plateSizeCM, _ = strconv.ParseFloat(v, 64)
	}

	result, err := ctrl.service.ScanPlate(c.Request.Context(), userID, image, contentType, plateSizeCM)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientBalance):
			// 余额用完是正常业务态，前端引导购买
			response.Error(c, http.StatusPaymentRequired, "扫描次数已用完，请等待每日补给或购买次数包")
		case errors.Is(err, vision.ErrUnparseable):
			slog.Error("视觉模型输出不可解析", "userID", userID)
			response.Error(c, http.StatusInternalServerError, "AI 没看懂这张照片，请换个角度再拍一张")
		default:
			slog.Error("扫描失败", "userID", userID, "error", err)
			response.Error(c, http.StatusInternalServerError, "AI 大脑短路了，请稍后再试")
		}
		return
	}

	response.Success(c, result)
}

// ConfirmRequest 用户改完条目后的确认参数
type ConfirmRequest struct {
	Items    []model.EstimatedFoodItem `json:"items" binding:"required"`
	PhotoURL string                    `json:"photo_url"`
}

// Confirm 确认扫描结果
// @Summary 重新汇总用户编辑后的条目
// @Description 不扣额度、不跑模型，只重算总热量
// @Tags Scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmRequest true "确认参数"
// @Success 200 {object} response.Response{data=service.ScanResult}
// @Router /scan/confirm [post]
func (ctrl *ScanController) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	response.Success(c, ctrl.service.ConfirmScan(req.Items, req.PhotoURL))
}
