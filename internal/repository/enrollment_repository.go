package repository

import (
	"context"
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// WithTx 返回绑定到事务的仓库副本
func (r *EnrollmentRepository) WithTx(tx *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: tx}
}

// CreateIfAbsent 幂等创建选课记录，返回是否新插入
func (r *EnrollmentRepository) CreateIfAbsent(ctx context.Context, enrollment *model.Enrollment) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(enrollment)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &enrollment, nil
}

// FindForUpdate 行锁读取选课记录，需在事务中调用
func (r *EnrollmentRepository) FindForUpdate(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// MarkLessonCompleted 幂等写入课时完成记录，重复访问只刷新完成时间
func (r *EnrollmentRepository) MarkLessonCompleted(ctx context.Context, userID, lessonID uint, at time.Time) error {
	progress := model.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &at,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"completed":    true,
				"completed_at": at,
				"updated_at":   at,
			}),
		}).
		Create(&progress).Error
}

func (r *EnrollmentRepository) CountCourseLessons(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) CountCompletedLessons(ctx context.Context, userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progress.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lesson_progress.user_id = ? AND lesson_progress.completed = ? AND course_modules.course_id = ?", userID, true, courseID).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, enrollment *model.Enrollment) error {
	return r.DB.WithContext(ctx).Model(enrollment).
		Select("Progress", "IsCompleted", "CompletedAt").
		Updates(enrollment).Error
}

// IssueCertificate 幂等发放证书，返回是否为新发放
func (r *EnrollmentRepository) IssueCertificate(ctx context.Context, cert *model.Certificate) (bool, error) {
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(cert)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC, id DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CertificatesByUser(ctx context.Context, userID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("issued_at DESC, id DESC").
		Find(&certs).Error
	return certs, err
}

func (r *EnrollmentRepository) RecentByCourses(ctx context.Context, courseIDs []uint, limit int) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if len(courseIDs) == 0 {
		return enrollments, nil
	}
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("course_id IN ?", courseIDs).
		Order("enrolled_at DESC, id DESC").
		Limit(limit).
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) RecentCertificatesByCourses(ctx context.Context, courseIDs []uint, limit int) ([]model.Certificate, error) {
	var certs []model.Certificate
	if len(courseIDs) == 0 {
		return certs, nil
	}
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("course_id IN ?", courseIDs).
		Order("issued_at DESC, id DESC").
		Limit(limit).
		Find(&certs).Error
	return certs, err
}

// EnrolledAtByCourses 返回选课时间，供按月统计
func (r *EnrollmentRepository) EnrolledAtByCourses(ctx context.Context, courseIDs []uint) ([]time.Time, error) {
	var times []time.Time
	if len(courseIDs) == 0 {
		return times, nil
	}
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Pluck("enrolled_at", &times).Error
	return times, err
}

// CountByCourses 课程集合下的选课记录数
func (r *EnrollmentRepository) CountByCourses(ctx context.Context, courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Count(&count).Error
	return count, err
}

// AvgProgressByCourses 课程集合下选课进度的平均值，无选课时为 0
func (r *EnrollmentRepository) AvgProgressByCourses(ctx context.Context, courseIDs []uint) (float64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var avg float64
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Select("COALESCE(AVG(progress), 0)").
		Where("course_id IN ?", courseIDs).
		Scan(&avg).Error
	return avg, err
}

func (r *EnrollmentRepository) FindLessonProgress(ctx context.Context, userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&progress).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &progress, nil
}
