package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/icalorie/icalorie-backend/internal/infrastructure/storage"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo     repository.UserRepo
	store        *storage.Client // 头像存储，可以为 nil
	maxFreeScans int
}

func NewAuthService(userRepo repository.UserRepo, store *storage.Client, maxFreeScans int) *AuthService {
	return &AuthService{userRepo: userRepo, store: store, maxFreeScans: maxFreeScans}
}

// Register 注册逻辑
// 新账号直接带满免费扫描额度，补给时间戳从现在起算
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, _ := uuid.NewV7()
	user := &model.User{
		ID:              id.String(),
		Name:            name,
		Email:           email,
		Password:        string(hash),
		ScansRemaining:  s.maxFreeScans,
		LastReplenishAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 登录逻辑，返回 Token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.New("invalid credentials") // 模糊报错为了安全
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser 取当前用户
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile 更新昵称/热量目标
func (s *AuthService) UpdateProfile(ctx context.Context, userID, name string, dailyCalorieGoal int) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if dailyCalorieGoal > 0 {
		user.DailyCalorieGoal = dailyCalorieGoal
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword 改密码，必须先验旧密码
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.userRepo.Update(ctx, user)
}

// UploadProfilePicture 上传头像
// 数据库只存 S3 key，展示时再签限时 URL
func (s *AuthService) UploadProfilePicture(ctx context.Context, userID string, data []byte, contentType string) (*model.User, error) {
	if s.store == nil {
		return nil, errors.New("object storage not configured")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("profiles/%s/%s.jpg", userID, uuid.NewString())
	if err := s.store.UploadPrivateImage(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	user.ProfilePicture = key
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ProfilePictureURL 把存的 key 换成限时访问 URL，没配存储就返回空
func (s *AuthService) ProfilePictureURL(ctx context.Context, user *model.User) string {
	if s.store == nil || user.ProfilePicture == "" {
		return ""
	}
	url, err := s.store.PresignedURL(ctx, user.ProfilePicture, time.Hour)
	if err != nil {
		return ""
	}
	return url
}

// GenerateToken 生成 JWT
func (s *AuthService) GenerateToken(userID string) (string, error) {
	secret := viper.GetString("jwt.secret")
	expireHours := viper.GetInt("jwt.expire_hours")

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * time.Duration(expireHours)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
