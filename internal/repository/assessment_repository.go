package repository

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// lockLesson 锁住课时行，串行化同一课时下的"至多一个"检查
func lockLesson(tx *gorm.DB, lessonID uint) error {
	var lesson model.Lesson
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&lesson, lessonID).Error
	return mapNotFound(err)
}

// CreateQuizForLesson 每个课时至多一个测验，已存在时返回 util.ErrQuizExists
func (r *AssessmentRepository) CreateQuizForLesson(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLesson(tx, quiz.LessonID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.Quiz{}).Where("lesson_id = ?", quiz.LessonID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrQuizExists
		}
		return tx.Omit(clause.Associations).Create(quiz).Error
	})
}

// CreateAssignmentForLesson 每个课时至多一个作业，已存在时返回 util.ErrAssignmentExists
func (r *AssessmentRepository) CreateAssignmentForLesson(ctx context.Context, assignment *model.Assignment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockLesson(tx, assignment.LessonID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&model.Assignment{}).Where("lesson_id = ?", assignment.LessonID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return util.ErrAssignmentExists
		}
		return tx.Create(assignment).Error
	})
}

func (r *AssessmentRepository) FindQuiz(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &quiz, nil
}

func (r *AssessmentRepository) CreateQuestion(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *AssessmentRepository) CreateAttempt(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(attempt).Error
}

func (r *AssessmentRepository) HasAttempted(ctx context.Context, userID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) AttemptsByQuiz(ctx context.Context, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Preload("User").
		Where("quiz_id = ?", quizID).
		Order("attempted_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AssessmentRepository) CountAttempts(ctx context.Context, quizID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) FindAssignment(ctx context.Context, id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.DB.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &assignment, nil
}

func (r *AssessmentRepository) CreateSubmission(ctx context.Context, submission *model.Submission) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(submission).Error
}

func (r *AssessmentRepository) FindSubmission(ctx context.Context, id uint) (*model.Submission, error) {
	var submission model.Submission
	if err := r.DB.WithContext(ctx).First(&submission, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &submission, nil
}

func (r *AssessmentRepository) SetGrade(ctx context.Context, submissionID uint, grade float64) error {
	res := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("id = ?", submissionID).
		Update("grade", grade)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

func (r *AssessmentRepository) HasSubmitted(ctx context.Context, userID, assignmentID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Submission{}).
		Where("student_id = ? AND assignment_id = ?", userID, assignmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) SubmissionsByAssignment(ctx context.Context, assignmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC, id DESC").
		Find(&submissions).Error
	return submissions, err
}

// PendingByCourses 课程集合下尚未评分的提交，最新在前；limit <= 0 表示不限
func (r *AssessmentRepository) PendingByCourses(ctx context.Context, courseIDs []uint, limit int) ([]model.Submission, error) {
	var submissions []model.Submission
	if len(courseIDs) == 0 {
		return submissions, nil
	}
	q := r.DB.WithContext(ctx).
		Preload("Student").
		Preload("Assignment").
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN lessons ON lessons.id = assignments.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id IN ? AND submissions.grade IS NULL", courseIDs).
		Order("submissions.submitted_at DESC, submissions.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&submissions).Error
	return submissions, err
}
