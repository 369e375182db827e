package service

import (
	"context"
	"testing"
	"time"

	"github.com/icalorie/icalorie-backend/internal/model"
	"github.com/icalorie/icalorie-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMealRepo 内存版 MealRepo
type fakeMealRepo struct {
	nextID uint
	logs   map[uint]*model.MealLog
	totals []repository.DailyTotal // DailyTotals 直接返回预置数据
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{nextID: 1, logs: make(map[uint]*model.MealLog)}
}

func (r *fakeMealRepo) Create(_ context.Context, log *model.MealLog) error {
	log.ID = r.nextID
	r.nextID++
	r.logs[log.ID] = log
	return nil
}

func (r *fakeMealRepo) GetByID(_ context.Context, id uint) (*model.MealLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return log, nil
}

func (r *fakeMealRepo) ListByUser(_ context.Context, userID string, _ *time.Time) ([]model.MealLog, error) {
	var out []model.MealLog
	for _, log := range r.logs {
		if log.UserID == userID {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeMealRepo) Delete(_ context.Context, id uint) error {
	delete(r.logs, id)
	return nil
}

func (r *fakeMealRepo) DailyTotals(_ context.Context, _ string, _, _ time.Time) ([]repository.DailyTotal, error) {
	return r.totals, nil
}

func TestCreateLogSerializesItems(t *testing.T) {
	meals := newFakeMealRepo()
	svc := NewMealService(meals, newFakeUserRepo())

	items := []model.EstimatedFoodItem{
		{Name: "rice", Calories: 210},
		{Name: "dal", Calories: 320},
	}
	log, err := svc.CreateLog(context.Background(), "u1", items, 530, "http://x/1.jpg", 26, nil)
	require.NoError(t, err)

	assert.NotZero(t, log.ID)
	assert.Equal(t, "u1", log.UserID)
	assert.Equal(t, 530.0, log.TotalCalories)
	assert.JSONEq(t,
		`[{"name":"rice","normalized_name":"","portion":"","grams":0,"calories":210,"protein_g":0,"carbs_g":0,"fat_g":0,"confidence":0},
		  {"name":"dal","normalized_name":"","portion":"","grams":0,"calories":320,"protein_g":0,"carbs_g":0,"fat_g":0,"confidence":0}]`,
		string(log.Items))
}

func TestCreateLogBackdated(t *testing.T) {
	meals := newFakeMealRepo()
	svc := NewMealService(meals, newFakeUserRepo())

	when := time.Date(2026, 8, 20, 12, 30, 0, 0, time.UTC)
	log, err := svc.CreateLog(context.Background(), "u1", nil, 0, "", 0, &when)
	require.NoError(t, err)
	assert.True(t, log.CreatedAt.Equal(when))
}

// 归属权：别人的记录既看不到也删不掉
func TestLogOwnership(t *testing.T) {
	meals := newFakeMealRepo()
	svc := NewMealService(meals, newFakeUserRepo())

	log, err := svc.CreateLog(context.Background(), "owner", nil, 100, "", 0, nil)
	require.NoError(t, err)

	_, err = svc.GetLog(context.Background(), "intruder", log.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteLog(context.Background(), "intruder", log.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// 本人正常删
	require.NoError(t, svc.DeleteLog(context.Background(), "owner", log.ID))
	_, err = svc.GetLog(context.Background(), "owner", log.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// 老用户的 7 日汇总：窗口到今天为止，没有记录的日子补零
func TestSummaryFillsGaps(t *testing.T) {
	meals := newFakeMealRepo()
	users := newFakeUserRepo(&model.User{
		ID:        "u1",
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
	})
	svc := NewMealService(meals, users)

	today := time.Now().UTC().Format("2006-01-02")
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	meals.totals = []repository.DailyTotal{
		{Date: today, TotalCalories: 1800},
		{Date: yesterday, TotalCalories: 2150},
	}

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summary, 7)

	assert.Equal(t, today, summary[6].Date)
	assert.Equal(t, 1800.0, summary[6].TotalCalories)
	assert.Equal(t, 2150.0, summary[5].TotalCalories)
	for i := 0; i < 5; i++ {
		assert.Zero(t, summary[i].TotalCalories, "day %s", summary[i].Date)
	}
}

// 注册不满 7 天的新用户：窗口从注册那天开始往后数
func TestSummaryNewUserWindow(t *testing.T) {
	meals := newFakeMealRepo()
	created := time.Now().UTC().Add(-2 * 24 * time.Hour)
	users := newFakeUserRepo(&model.User{ID: "u1", CreatedAt: created})
	svc := NewMealService(meals, users)

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summary, 7)

	first := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first.Format("2006-01-02"), summary[0].Date)
}
