package controller

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api/response"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/repository"
)

type FeedbackController struct {
	repo repository.FeedbackRepo
}

func NewFeedbackController(repo repository.FeedbackRepo) *FeedbackController {
	return &FeedbackController{repo: repo}
}

type FeedbackRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// Submit 提交反馈
// @Summary 提交用户反馈
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FeedbackRequest true "反馈内容"
// @Success 200 {object} response.Response{data=model.UserFeedback}
// @Router /feedback [post]
func (ctrl *FeedbackController) Submit(c *gin.Context) {
	userID := c.GetString("userID")

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	feedback := &model.UserFeedback{
		UserID:  userID,
		Message: strings.TrimSpace(req.Message),
	}
	if err := ctrl.repo.Create(c.Request.Context(), feedback); err != nil {
		slog.Error("反馈保存失败", "userID", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, "保存失败")
		return
	}
	response.Success(c, feedback)
}
