package controller

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/icalorie/icalorie-backend/internal/api/response"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/service"
)

// AuthController 处理用户认证和个人资料
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 构造函数
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// ==========================================
// DTOs (请求/响应参数定义)
// ==========================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	ScansRemaining    int    `json:"scans_remaining"`
	DailyCalorieGoal  int    `json:"daily_calorie_goal"`
	CreatedAt         string `json:"created_at"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UpdateProfileRequest struct {
	Name             string `json:"name"`
	DailyCalorieGoal int    `json:"daily_calorie_goal"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (ctrl *AuthController) userResponse(c *gin.Context, user *model.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		ProfilePictureURL: ctrl.authService.ProfilePictureURL(c.Request.Context(), user),
		ScansRemaining:    user.ScansRemaining,
		DailyCalorieGoal:  user.DailyCalorieGoal,
		CreatedAt:         user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ==========================================
// Handlers
// ==========================================

// Register 用户注册
// @Summary 用户注册
// @Description 创建新用户，送满免费扫描额度，直接返回 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册参数"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Router /auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Register params invalid", "err", err)
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.Error("Register failed", "email", req.Email, "err", err)
		// Email 唯一索引冲突也会走到这里，统一提示
		response.Error(c, http.StatusBadRequest, "注册失败: "+err.Error())
		return
	}

	token, err := ctrl.authService.GenerateToken(user.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "生成 Token 失败")
		return
	}

	slog.Info("User registered", "email", req.Email)
	response.Success(c, AuthResponse{Token: token, User: ctrl.userResponse(c, user)})
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验账号密码，颁发 JWT Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录参数"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数格式错误")
		return
	}

	token, user, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("Login failed", "email", req.Email, "err", err)
		// 为了防止暴力破解，提示信息模糊化
		response.Error(c, http.StatusUnauthorized, "登录失败: 账号或密码错误")
		return
	}

	slog.Info("User logged in", "userID", user.ID)
	response.Success(c, AuthResponse{Token: token, User: ctrl.userResponse(c, user)})
}

// Me 当前用户信息
// @Summary 当前用户信息
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=UserResponse}
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := ctrl.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "用户不存在")
		return
	}
	response.Success(c, ctrl.userResponse(c, user))
}

// UpdateProfile 更新资料
// @Summary 更新资料
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料参数"
// @Success 200 {object} response.Response{data=UserResponse}
// @Router /auth/profile [put]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	user, err := ctrl.authService.UpdateProfile(c.Request.Context(), userID, req.Name, req.DailyCalorieGoal)
	if err != nil {
		slog.Error("更新资料失败", "userID", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, "更新失败")
		return
	}
	response.Success(c, ctrl.userResponse(c, user))
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "密码参数"
// @Success 200 {object} response.Response
// @Router /auth/password [put]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	userID := c.GetString("userID")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数错误: "+err.Error())
		return
	}

	if err := ctrl.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.Success(c, nil)
}

// UploadProfilePicture 上传头像
// @Summary 上传头像
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "头像文件"
// @Success 200 {object} response.Response{data=UserResponse}
// @Router /auth/profile-picture [put]
func (ctrl *AuthController) UploadProfilePicture(c *gin.Context) {
	userID := c.GetString("userID")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "缺少文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "文件读取失败")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "文件读取失败")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	user, err := ctrl.authService.UploadProfilePicture(c.Request.Context(), userID, data, contentType)
	if err != nil {
		slog.Error("头像上传失败", "userID", userID, "error", err)
		response.Error(c, http.StatusInternalServerError, "上传失败")
		return
	}
	response.Success(c, ctrl.userResponse(c, user))
}
