package repository

import (
	"context"

	"github.com/icalorie/icalorie-backend/internal/model"
	"gorm.io/gorm"
)

type FeedbackRepo interface {
	Create(ctx context.Context, feedback *model.UserFeedback) error
}

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepo(db *gorm.DB) FeedbackRepo {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Create(ctx context.Context, feedback *model.UserFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}
