package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *model.CourseReview) error {
	return r.DB.WithContext(ctx).Omit("User", "Course").Create(review).Error
}

func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID uint) ([]model.CourseReview, error) {
	var reviews []model.CourseReview
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) RecentByCourses(ctx context.Context, courseIDs []uint, limit int) ([]model.CourseReview, error) {
	var reviews []model.CourseReview
	if len(courseIDs) == 0 {
		return reviews, nil
	}
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("course_id IN ?", courseIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}
