package repository

import (
	"context"
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.DB.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &course, nil
}

// FindDetail 课程及其有序章节、课时（含内容、测验、作业）
func (r *CourseRepository) FindDetail(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Modules.Lessons.Content").
		Preload("Modules.Lessons.Quiz").
		Preload("Modules.Lessons.Assignment").
		First(&course, id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context, page, limit int) ([]model.CourseSummary, int64, error) {
	var total int64
	db := r.DB.WithContext(ctx).Model(&model.Course{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.CourseSummary
	err := db.Select("id, title, category, difficulty, creator_id, created_at").
		Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) FindByCreator(ctx context.Context, creatorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Where("creator_id = ?", creatorID).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) IDsByCreator(ctx context.Context, creatorID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Course{}).
		Where("creator_id = ?", creatorID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *CourseRepository) CreateModule(ctx context.Context, module *model.Module) error {
	return r.DB.WithContext(ctx).Create(module).Error
}

// CreateLessonWithContent 课时与其内容在同一事务中写入
func (r *CourseRepository) CreateLessonWithContent(ctx context.Context, lesson *model.Lesson, content *model.LessonContent) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(lesson).Error; err != nil {
			return err
		}
		content.LessonID = lesson.ID
		if err := tx.Create(content).Error; err != nil {
			return err
		}
		lesson.Content = content
		return nil
	})
}

func (r *CourseRepository) FindLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).
		Preload("Content").
		Preload("Quiz").
		Preload("Assignment").
		First(&lesson, id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &lesson, nil
}

// Delete 级联删除课程下的全部数据，子表先删
func (r *CourseRepository) Delete(ctx context.Context, courseID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Course{}, courseID).Error; err != nil {
			return mapNotFound(err)
		}

		moduleIDs := tx.Model(&model.Module{}).Select("id").Where("course_id = ?", courseID)
		lessonIDs := tx.Model(&model.Lesson{}).Select("id").Where("module_id IN (?)", moduleIDs)
		quizIDs := tx.Model(&model.Quiz{}).Select("id").Where("lesson_id IN (?)", lessonIDs)
		assignmentIDs := tx.Model(&model.Assignment{}).Select("id").Where("lesson_id IN (?)", lessonIDs)

		steps := []struct {
			table interface{}
			query string
			arg   interface{}
		}{
			{&model.Submission{}, "assignment_id IN (?)", assignmentIDs},
			{&model.QuizAttempt{}, "quiz_id IN (?)", quizIDs},
			{&model.Question{}, "quiz_id IN (?)", quizIDs},
			{&model.Quiz{}, "lesson_id IN (?)", lessonIDs},
			{&model.Assignment{}, "lesson_id IN (?)", lessonIDs},
			{&model.LessonContent{}, "lesson_id IN (?)", lessonIDs},
			{&model.LessonProgress{}, "lesson_id IN (?)", lessonIDs},
			{&model.Lesson{}, "module_id IN (?)", moduleIDs},
			{&model.Module{}, "course_id = ?", courseID},
			{&model.Enrollment{}, "course_id = ?", courseID},
			{&model.Certificate{}, "course_id = ?", courseID},
			{&model.CourseReview{}, "course_id = ?", courseID},
			{&model.Analytics{}, "course_id = ?", courseID},
		}

		for _, step := range steps {
			if err := tx.Where(step.query, step.arg).Delete(step.table).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Course{}, courseID).Error
	})
}
