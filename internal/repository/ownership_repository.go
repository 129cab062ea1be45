package repository

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// OwnerScope 需要做归属校验的实体类型
type OwnerScope string

const (
	ScopeCourse     OwnerScope = "course"
	ScopeModule     OwnerScope = "module"
	ScopeLesson     OwnerScope = "lesson"
	ScopeQuiz       OwnerScope = "quiz"
	ScopeAssignment OwnerScope = "assignment"
	ScopeSubmission OwnerScope = "submission"
)

// Ownership 实体所属课程及课程创建者
type Ownership struct {
	CourseID  uint
	CreatorID uint
}

type OwnershipRepository struct {
	DB *gorm.DB
}

func NewOwnershipRepository(db *gorm.DB) *OwnershipRepository {
	return &OwnershipRepository{DB: db}
}

// Lookup 一次 JOIN 查询得到实体所属课程及其创建者
func (r *OwnershipRepository) Lookup(ctx context.Context, scope OwnerScope, id uint) (*Ownership, error) {
	q, err := r.scopeQuery(r.DB.WithContext(ctx), scope)
	if err != nil {
		return nil, err
	}

	var row Ownership
	res := q.Select("c.id AS course_id, c.creator_id AS creator_id").
		Where(fmt.Sprintf("%s.id = ?", scopeAlias(scope)), id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, util.ErrNotFound
	}
	return &row, nil
}

// LocateLesson 课时所在的章节、课程与课程创建者
func (r *OwnershipRepository) LocateLesson(ctx context.Context, lessonID uint) (*model.LessonLocation, error) {
	var loc model.LessonLocation
	res := r.DB.WithContext(ctx).
		Table("lessons AS l").
		Select("l.id AS lesson_id, m.id AS module_id, c.id AS course_id, c.creator_id AS creator_id").
		Joins("JOIN course_modules AS m ON m.id = l.module_id").
		Joins("JOIN courses AS c ON c.id = m.course_id").
		Where("l.id = ?", lessonID).
		Limit(1).
		Scan(&loc)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, util.ErrNotFound
	}
	return &loc, nil
}

func scopeAlias(scope OwnerScope) string {
	switch scope {
	case ScopeCourse:
		return "c"
	case ScopeModule:
		return "m"
	case ScopeLesson:
		return "l"
	case ScopeQuiz:
		return "q"
	case ScopeAssignment:
		return "a"
	case ScopeSubmission:
		return "s"
	}
	return ""
}

func (r *OwnershipRepository) scopeQuery(db *gorm.DB, scope OwnerScope) (*gorm.DB, error) {
	toCourse := func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN courses AS c ON c.id = m.course_id")
	}
	toModule := func(q *gorm.DB) *gorm.DB {
		return toCourse(q.Joins("JOIN course_modules AS m ON m.id = l.module_id"))
	}

	switch scope {
	case ScopeCourse:
		return db.Table("courses AS c"), nil
	case ScopeModule:
		return toCourse(db.Table("course_modules AS m")), nil
	case ScopeLesson:
		return toModule(db.Table("lessons AS l")), nil
	case ScopeQuiz:
		return toModule(db.Table("quizzes AS q").Joins("JOIN lessons AS l ON l.id = q.lesson_id")), nil
	case ScopeAssignment:
		return toModule(db.Table("assignments AS a").Joins("JOIN lessons AS l ON l.id = a.lesson_id")), nil
	case ScopeSubmission:
		return toModule(db.Table("submissions AS s").
			Joins("JOIN assignments AS a ON a.id = s.assignment_id").
			Joins("JOIN lessons AS l ON l.id = a.lesson_id")), nil
	}
	return nil, fmt.Errorf("unknown ownership scope %q", scope)
}
