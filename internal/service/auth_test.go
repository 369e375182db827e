package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterSeedsFreeScans(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, 5)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 5, user.ScansRemaining)
	assert.False(t, user.LastReplenishAt.IsZero())

	// 密码必须是 bcrypt 哈希，不是明文
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestLogin(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")
	viper.Set("jwt.expire_hours", 1)
	t.Cleanup(func() { viper.Reset() })

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, 5)
	registered, err := svc.Register(context.Background(), "Alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	t.Run("正确密码拿到 token", func(t *testing.T) {
		tokenStr, user, err := svc.Login(context.Background(), "alice@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)

		token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, registered.ID, claims["user_id"])
	})

	// 账号不存在和密码错误必须是同一句报错，不给撞库的人递情报
	t.Run("密码错误模糊报错", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("账号不存在模糊报错", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
		assert.EqualError(t, err, "invalid credentials")
	})
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, 5)
	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "old-pass")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "new-pass")
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "old-pass", "new-pass"))

	updated, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-pass")))
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeUserRepo(&model.User{ID: "u1", Name: "Alice", DailyCalorieGoal: 2000})
	svc := NewAuthService(repo, nil, 5)

	// 只改目标不改名字
	user, err := svc.UpdateProfile(context.Background(), "u1", "", 1800)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 1800, user.DailyCalorieGoal)
}
