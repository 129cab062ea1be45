package service

import (
	"context"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setProgress(t *testing.T, db *gorm.DB, e *model.Enrollment, progress int, completed bool) {
	t.Helper()
	require.NoError(t, db.Model(e).Updates(map[string]interface{}{
		"progress":     progress,
		"is_completed": completed,
	}).Error)
}

func TestRecomputeCourseAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	instructor := testutil.CreateUser(t, f.db, "instructor", model.Instructor)
	course, lessons := testutil.CreateCourseWithLessons(t, f.db, instructor.ID, 2)
	quiz := testutil.CreateQuiz(t, f.db, lessons[0].ID, "A", "B")

	progress := []struct {
		value     int
		completed bool
	}{{100, true}, {50, false}, {0, false}}
	for i, p := range progress {
		student := testutil.CreateUser(t, f.db, "student"+string(rune('a'+i)), model.Student)
		e := testutil.Enroll(t, f.db, student.ID, course.ID, time.Now())
		setProgress(t, f.db, e, p.value, p.completed)
		testutil.CreateAttempt(t, f.db, student.ID, quiz.ID, i%2+1)
	}

	// 增量计数与真实数据不一致时以重算结果为准
	require.NoError(t, f.db.Create(&model.Analytics{CourseID: course.ID, TotalEnrolled: 99}).Error)

	now := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	f.analytics.Now = func() time.Time { return now }

	a, err := f.analytics.RecomputeCourseAnalytics(ctx, course.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, a.TotalEnrolled)
	assert.Equal(t, 50.0, a.AvgProgress)
	assert.Equal(t, 33.33, a.CompletionRate)
	assert.Equal(t, 1.33, a.AvgQuizScore)
	assert.True(t, a.LastUpdated.Equal(now))

	var stored model.Analytics
	require.NoError(t, f.db.Where("course_id = ?", course.ID).First(&stored).Error)
	assert.Equal(t, 3, stored.TotalEnrolled)
	assert.EqualValues(t, 1, f.count(t, &model.Analytics{}, "course_id = ?", course.ID))
}

func TestRecomputeCourseAnalytics_NoEnrollments(t *testing.T) {
	f := newFixture(t)

	instructor := testutil.CreateUser(t, f.db, "instructor", model.Instructor)
	course := testutil.CreateCourse(t, f.db, instructor.ID, "Empty")

	a, err := f.analytics.RecomputeCourseAnalytics(context.Background(), course.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, a.TotalEnrolled)
	assert.Zero(t, a.CompletionRate)
	assert.Zero(t, a.AvgProgress)
	assert.Zero(t, a.AvgQuizScore)
}

func TestGetCourseAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := testutil.CreateUser(t, f.db, "owner", model.Instructor)
	stranger := testutil.CreateUser(t, f.db, "stranger", model.Instructor)
	student := testutil.CreateUser(t, f.db, "student", model.Student)
	course, lessons := testutil.CreateCourseWithLessons(t, f.db, owner.ID, 1)
	assignment := testutil.CreateAssignment(t, f.db, lessons[0].ID)

	pending, err := f.assessment.RecordAssignmentSubmission(ctx, student.ID, assignment.ID, "")
	require.NoError(t, err)
	graded, err := f.assessment.RecordAssignmentSubmission(ctx, student.ID, assignment.ID, "")
	require.NoError(t, err)
	_, err = f.assessment.GradeSubmission(ctx, owner.ID, graded.ID, 70)
	require.NoError(t, err)

	_, err = f.analytics.GetCourseAnalytics(ctx, stranger.ID, course.ID)
	assert.ErrorIs(t, err, util.ErrNotCourseOwner)

	view, err := f.analytics.GetCourseAnalytics(ctx, owner.ID, course.ID)
	require.NoError(t, err)

	require.Len(t, view.PendingSubmissions, 1)
	assert.Equal(t, pending.ID, view.PendingSubmissions[0].ID)
	assert.Equal(t, course.ID, view.Analytics.CourseID)
}

func TestInstructorQuizHistogram_ScopedToOwnCourses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine := testutil.CreateUser(t, f.db, "mine", model.Instructor)
	theirs := testutil.CreateUser(t, f.db, "theirs", model.Instructor)
	student := testutil.CreateUser(t, f.db, "student", model.Student)

	_, myLessons := testutil.CreateCourseWithLessons(t, f.db, mine.ID, 1)
	_, theirLessons := testutil.CreateCourseWithLessons(t, f.db, theirs.ID, 1)
	myQuiz := testutil.CreateQuiz(t, f.db, myLessons[0].ID, "A")
	theirQuiz := testutil.CreateQuiz(t, f.db, theirLessons[0].ID, "A")

	for _, s := range []int{10, 60, 80} {
		testutil.CreateAttempt(t, f.db, student.ID, myQuiz.ID, s)
	}
	testutil.CreateAttempt(t, f.db, student.ID, theirQuiz.ID, 95)

	h, err := f.analytics.InstructorQuizHistogram(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, h.Counts)

	h, err = f.analytics.InstructorQuizHistogram(ctx, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1}, h.Counts)

	nobody := testutil.CreateUser(t, f.db, "nobody", model.Instructor)
	h, err = f.analytics.InstructorQuizHistogram(ctx, nobody.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, h.Counts)
}

func TestMonthlyEnrollmentSeries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	instructor := testutil.CreateUser(t, f.db, "instructor", model.Instructor)
	course := testutil.CreateCourse(t, f.db, instructor.ID, "Series")

	enrolledAt := []time.Time{
		time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
	}
	for i, at := range enrolledAt {
		student := testutil.CreateUser(t, f.db, "student"+string(rune('a'+i)), model.Student)
		testutil.Enroll(t, f.db, student.ID, course.ID, at)
	}

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	points, err := f.analytics.MonthlyEnrollmentSeries(ctx, []uint{course.ID}, 3, now)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, counts(points))
	assert.Equal(t, "Jan", points[0].Label)

	f.analytics.SetOptions(AnalyticsOptions{EnrollmentMonths: 3, MatchEnrollmentYear: true})
	points, err = f.analytics.MonthlyEnrollmentSeries(ctx, []uint{course.ID}, 3, now)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, counts(points))
}

func TestInstructorDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	instructor := testutil.CreateUser(t, f.db, "instructor", model.Instructor)
	other := testutil.CreateUser(t, f.db, "other", model.Instructor)
	course, lessons := testutil.CreateCourseWithLessons(t, f.db, instructor.ID, 1)
	second := testutil.CreateCourse(t, f.db, instructor.ID, "Second")
	foreign := testutil.CreateCourse(t, f.db, other.ID, "Foreign")
	quiz := testutil.CreateQuiz(t, f.db, lessons[0].ID, "A")
	assignment := testutil.CreateAssignment(t, f.db, lessons[0].ID)

	now := time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)
	f.analytics.Now = func() time.Time { return now }

	for i := 0; i < 7; i++ {
		student := testutil.CreateUser(t, f.db, "student"+string(rune('a'+i)), model.Student)
		e := testutil.Enroll(t, f.db, student.ID, course.ID, now.AddDate(0, 0, -i))
		setProgress(t, f.db, e, 50, false)
		testutil.CreateAttempt(t, f.db, student.ID, quiz.ID, 40+i*10)
		_, err := f.assessment.RecordAssignmentSubmission(ctx, student.ID, assignment.ID, "")
		require.NoError(t, err)
	}
	s := testutil.CreateUser(t, f.db, "second", model.Student)
	e := testutil.Enroll(t, f.db, s.ID, second.ID, now)
	setProgress(t, f.db, e, 100, true)
	testutil.Enroll(t, f.db, s.ID, foreign.ID, now)

	d, err := f.analytics.InstructorDashboard(ctx, instructor.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalCourses)
	assert.EqualValues(t, 8, d.TotalStudents)
	assert.Equal(t, 56.25, d.AvgCompletion)
	assert.Equal(t, 70.0, d.AvgQuizScore)
	assert.Len(t, d.RecentEnrollments, util.RecentListLimit)
	assert.Len(t, d.PendingSubmissions, util.RecentListLimit)
	assert.Empty(t, d.RecentCertificates)

	assert.Equal(t, []string{"Nov", "Dec", "Jan", "Feb", "Mar", "Apr"}, d.EnrollmentChart.Labels)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 8}, d.EnrollmentChart.Data)

	h, err := f.analytics.InstructorQuizHistogram(ctx, instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, h, d.QuizChart)
	assert.Equal(t, []int{1, 3, 3}, d.QuizChart.Counts)
}

func TestInstructorDashboard_NoCourses(t *testing.T) {
	f := newFixture(t)
	instructor := testutil.CreateUser(t, f.db, "instructor", model.Instructor)

	d, err := f.analytics.InstructorDashboard(context.Background(), instructor.ID)
	require.NoError(t, err)

	assert.Zero(t, d.TotalCourses)
	assert.Zero(t, d.TotalStudents)
	assert.Zero(t, d.AvgCompletion)
	assert.Len(t, d.EnrollmentChart.Data, 6)
	assert.Equal(t, []int{0, 0, 0}, d.QuizChart.Counts)
}
