// Package testutil 提供基于内存 SQLite 的测试数据库与数据构造函数
package testutil

import (
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 每个测试独立的内存库；单连接，事务内必须只使用 tx
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{Name: name, Email: name + "@example.com", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateCourse(t *testing.T, db *gorm.DB, creatorID uint, title string) *model.Course {
	t.Helper()
	c := &model.Course{Title: title, Description: title + " description", Category: "general", Difficulty: "beginner", CreatorID: creatorID}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateModule(t *testing.T, db *gorm.DB, courseID uint, order int) *model.Module {
	t.Helper()
	m := &model.Module{CourseID: courseID, Title: fmt.Sprintf("Module %d", order), Order: order}
	require.NoError(t, db.Create(m).Error)
	return m
}

func CreateLesson(t *testing.T, db *gorm.DB, moduleID uint, order int) *model.Lesson {
	t.Helper()
	l := &model.Lesson{ModuleID: moduleID, Title: fmt.Sprintf("Lesson %d", order), Order: order}
	require.NoError(t, db.Create(l).Error)
	return l
}

// CreateCourseWithLessons 一门课程、一个章节、n 个课时
func CreateCourseWithLessons(t *testing.T, db *gorm.DB, creatorID uint, n int) (*model.Course, []*model.Lesson) {
	t.Helper()
	c := CreateCourse(t, db, creatorID, fmt.Sprintf("Course with %d lessons", n))
	m := CreateModule(t, db, c.ID, 1)
	lessons := make([]*model.Lesson, 0, n)
	for i := 1; i <= n; i++ {
		lessons = append(lessons, CreateLesson(t, db, m.ID, i))
	}
	return c, lessons
}

func CreateQuiz(t *testing.T, db *gorm.DB, lessonID uint, answers ...string) *model.Quiz {
	t.Helper()
	q := &model.Quiz{LessonID: lessonID, Title: "Quiz", TotalMarks: len(answers)}
	require.NoError(t, db.Create(q).Error)
	for i, a := range answers {
		question := &model.Question{QuizID: q.ID, QuestionText: fmt.Sprintf("Q%d", i+1), QuestionType: "short", CorrectAnswer: a}
		require.NoError(t, db.Create(question).Error)
		q.Questions = append(q.Questions, *question)
	}
	return q
}

func CreateAssignment(t *testing.T, db *gorm.DB, lessonID uint) *model.Assignment {
	t.Helper()
	a := &model.Assignment{LessonID: lessonID, Title: "Assignment", DueDate: time.Now().Add(72 * time.Hour)}
	require.NoError(t, db.Create(a).Error)
	return a
}

func Enroll(t *testing.T, db *gorm.DB, userID, courseID uint, enrolledAt time.Time) *model.Enrollment {
	t.Helper()
	e := &model.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: enrolledAt}
	require.NoError(t, db.Create(e).Error)
	return e
}

func CreateAttempt(t *testing.T, db *gorm.DB, userID, quizID uint, score int) *model.QuizAttempt {
	t.Helper()
	a := &model.QuizAttempt{UserID: userID, QuizID: quizID, Score: score, AttemptedAt: time.Now()}
	require.NoError(t, db.Create(a).Error)
	return a
}
