package repository

import (
	"context"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRepository_FindDetailOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)

	owner := testutil.CreateUser(t, db, "owner", model.Instructor)
	course := testutil.CreateCourse(t, db, owner.ID, "Ordered")

	// 同序时按 ID 排列
	m2 := testutil.CreateModule(t, db, course.ID, 2)
	m1 := testutil.CreateModule(t, db, course.ID, 1)
	m1b := testutil.CreateModule(t, db, course.ID, 1)

	l3 := testutil.CreateLesson(t, db, m1.ID, 3)
	l1 := testutil.CreateLesson(t, db, m1.ID, 1)
	require.NoError(t, repo.CreateLessonWithContent(context.Background(),
		&model.Lesson{ModuleID: m1.ID, Title: "Intro", Order: 2},
		&model.LessonContent{ContentType: model.ContentText, Value: "hello"},
	))

	got, err := repo.FindDetail(context.Background(), course.ID)
	require.NoError(t, err)

	require.Len(t, got.Modules, 3)
	assert.Equal(t, []uint{m1.ID, m1b.ID, m2.ID}, []uint{got.Modules[0].ID, got.Modules[1].ID, got.Modules[2].ID})

	lessons := got.Modules[0].Lessons
	require.Len(t, lessons, 3)
	assert.Equal(t, l1.ID, lessons[0].ID)
	assert.Equal(t, "Intro", lessons[1].Title)
	require.NotNil(t, lessons[1].Content)
	assert.Equal(t, "hello", lessons[1].Content.Value)
	assert.Equal(t, l3.ID, lessons[2].ID)

	_, err = repo.FindDetail(context.Background(), 9999)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCourseRepository_List(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)

	owner := testutil.CreateUser(t, db, "owner", model.Instructor)
	var ids []uint
	for _, title := range []string{"a", "b", "c"} {
		ids = append(ids, testutil.CreateCourse(t, db, owner.ID, title).ID)
	}

	page, total, err := repo.List(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[2], page[0].ID)

	page, _, err = repo.List(context.Background(), 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[0], page[0].ID)
}

func TestCourseRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "owner", model.Instructor)
	student := testutil.CreateUser(t, db, "student", model.Student)

	course, lessons := testutil.CreateCourseWithLessons(t, db, owner.ID, 2)
	keep, keepLessons := testutil.CreateCourseWithLessons(t, db, owner.ID, 1)

	seed := func(courseID, lessonID uint) {
		quiz := testutil.CreateQuiz(t, db, lessonID, "A", "B")
		assignment := testutil.CreateAssignment(t, db, lessonID)
		testutil.Enroll(t, db, student.ID, courseID, time.Now())
		testutil.CreateAttempt(t, db, student.ID, quiz.ID, 1)
		now := time.Now()
		require.NoError(t, db.Create(&model.Submission{AssignmentID: assignment.ID, StudentID: student.ID, SubmittedAt: now}).Error)
		require.NoError(t, db.Create(&model.LessonProgress{UserID: student.ID, LessonID: lessonID, Completed: true, CompletedAt: &now}).Error)
		require.NoError(t, db.Create(&model.LessonContent{LessonID: lessonID, ContentType: model.ContentVideo, Value: "v"}).Error)
		require.NoError(t, db.Create(&model.Certificate{UserID: student.ID, CourseID: courseID, IssuedAt: now}).Error)
		require.NoError(t, db.Create(&model.CourseReview{UserID: student.ID, CourseID: courseID, Rating: 5}).Error)
		require.NoError(t, db.Create(&model.Analytics{CourseID: courseID}).Error)
	}
	seed(course.ID, lessons[0].ID)
	seed(keep.ID, keepLessons[0].ID)

	require.NoError(t, repo.Delete(ctx, course.ID))

	tables := []interface{}{
		&model.Course{}, &model.Module{}, &model.Lesson{}, &model.LessonContent{},
		&model.Quiz{}, &model.Question{}, &model.QuizAttempt{}, &model.Assignment{},
		&model.Submission{}, &model.LessonProgress{}, &model.Enrollment{},
		&model.Certificate{}, &model.CourseReview{}, &model.Analytics{},
	}
	for _, table := range tables {
		var n int64
		require.NoError(t, db.Model(table).Count(&n).Error)
		switch table.(type) {
		case *model.Question:
			assert.EqualValues(t, 2, n, "%T", table)
		default:
			assert.EqualValues(t, 1, n, "%T", table)
		}
	}

	var remaining model.Course
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, keep.ID, remaining.ID)

	assert.ErrorIs(t, repo.Delete(ctx, course.ID), util.ErrNotFound)
}
