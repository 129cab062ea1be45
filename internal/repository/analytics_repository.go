package repository

import (
	"context"
	"lms_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) WithTx(tx *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: tx}
}

// GetOrCreate 按课程原子地取得或创建汇总行
func (r *AnalyticsRepository) GetOrCreate(ctx context.Context, courseID uint) (*model.Analytics, error) {
	db := r.DB.WithContext(ctx)
	row := model.Analytics{CourseID: courseID, LastUpdated: time.Now()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, err
	}

	var analytics model.Analytics
	if err := db.Where("course_id = ?", courseID).First(&analytics).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &analytics, nil
}

// IncrementEnrolled 以 SQL 自增方式累加选课人数，避免读改写丢失更新
func (r *AnalyticsRepository) IncrementEnrolled(ctx context.Context, courseID uint) error {
	if _, err := r.GetOrCreate(ctx, courseID); err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&model.Analytics{}).
		Where("course_id = ?", courseID).
		Update("total_enrolled", gorm.Expr("total_enrolled + ?", 1)).Error
}

func (r *AnalyticsRepository) Save(ctx context.Context, analytics *model.Analytics) error {
	return r.DB.WithContext(ctx).Model(analytics).
		Select("TotalEnrolled", "AvgProgress", "CompletionRate", "AvgQuizScore", "LastUpdated").
		Updates(analytics).Error
}

// CourseStats 从选课与测验记录重新扫描课程汇总
func (r *AnalyticsRepository) CourseStats(ctx context.Context, courseID uint) (*model.CourseStats, error) {
	db := r.DB.WithContext(ctx)

	var enroll struct {
		Total       int
		Completed   int
		AvgProgress float64
	}
	err := db.Model(&model.Enrollment{}).
		Select("COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed, " +
			"COALESCE(AVG(progress), 0) AS avg_progress").
		Where("course_id = ?", courseID).
		Scan(&enroll).Error
	if err != nil {
		return nil, err
	}

	avgQuiz, err := r.AvgQuizScore(ctx, []uint{courseID})
	if err != nil {
		return nil, err
	}

	return &model.CourseStats{
		TotalEnrolled:  enroll.Total,
		CompletedCount: enroll.Completed,
		AvgProgress:    enroll.AvgProgress,
		AvgQuizScore:   avgQuiz,
	}, nil
}

func (r *AnalyticsRepository) attemptsOfCourses(db *gorm.DB, courseIDs []uint) *gorm.DB {
	return db.Model(&model.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id IN ?", courseIDs)
}

// AvgQuizScore 课程集合下全部测验尝试的平均分，无尝试时为 0
func (r *AnalyticsRepository) AvgQuizScore(ctx context.Context, courseIDs []uint) (float64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var avg float64
	err := r.attemptsOfCourses(r.DB.WithContext(ctx), courseIDs).
		Select("COALESCE(AVG(quiz_attempts.score), 0)").
		Scan(&avg).Error
	return avg, err
}

// QuizScores 课程集合下全部测验尝试的原始得分
func (r *AnalyticsRepository) QuizScores(ctx context.Context, courseIDs []uint) ([]int, error) {
	var scores []int
	if len(courseIDs) == 0 {
		return scores, nil
	}
	err := r.attemptsOfCourses(r.DB.WithContext(ctx), courseIDs).
		Pluck("quiz_attempts.score", &scores).Error
	return scores, err
}
