package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-with-enough-length-0123456789"

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t   *testing.T
	db  *gorm.DB
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: testSecret},
		Storage:   config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()},
		Grading:   config.GradingConfig{MinGrade: 0, MaxGrade: 100},
		Analytics: config.AnalyticsConfig{EnrollmentMonths: 6},
	}
	db := testutil.NewDB(t)
	return &testServer{t: t, db: db, app: newApp(cfg, db, nil)}
}

func (s *testServer) token(u *model.User) string {
	s.t.Helper()
	tok, err := s.app.verifier.IssueToken(u, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path string, u *model.User, body interface{}) (int, apiResponse) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(u))
	}

	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(http.MethodGet, "/api/health", nil, nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"database":"up"`)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/api/courses", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestInstructorRoutes_RoleCheck(t *testing.T) {
	s := newTestServer(t)
	student := testutil.CreateUser(t, s.db, "student", model.Student)
	admin := testutil.CreateUser(t, s.db, "admin", model.Admin)
	instructor := testutil.CreateUser(t, s.db, "instructor", model.Instructor)

	code, _ := s.do(http.MethodGet, "/api/instructor/dashboard", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/instructor/dashboard", admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, "/api/instructor/dashboard", instructor, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestLearningFlow(t *testing.T) {
	s := newTestServer(t)
	instructor := testutil.CreateUser(t, s.db, "instructor", model.Instructor)
	student := testutil.CreateUser(t, s.db, "student", model.Student)

	code, resp := s.do(http.MethodPost, "/api/instructor/courses", instructor, gin.H{"title": "Go in Practice"})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var course model.Course
	require.NoError(t, json.Unmarshal(resp.Data, &course))

	code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/instructor/courses/%d/modules", course.ID), instructor, gin.H{"title": "Basics", "order": 1})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var module model.Module
	require.NoError(t, json.Unmarshal(resp.Data, &module))

	var lessonIDs []uint
	for i := 1; i <= 2; i++ {
		code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/instructor/modules/%d/lessons", module.ID), instructor, gin.H{
			"title":        fmt.Sprintf("Lesson %d", i),
			"order":        i,
			"contentType":  "Text",
			"contentValue": "read me",
		})
		require.Equal(t, http.StatusCreated, code, resp.Message)
		var lesson model.Lesson
		require.NoError(t, json.Unmarshal(resp.Data, &lesson))
		lessonIDs = append(lessonIDs, lesson.ID)
	}

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/lessons/%d/visit", lessonIDs[0]), student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	reviewPath := fmt.Sprintf("/api/courses/%d/reviews", course.ID)
	code, _ = s.do(http.MethodPost, reviewPath, student, gin.H{"rating": 5})
	assert.Equal(t, http.StatusForbidden, code)

	for i := 0; i < 2; i++ {
		code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/courses/%d/enroll", course.ID), student, nil)
		require.Equal(t, http.StatusOK, code)
	}

	code, _ = s.do(http.MethodPost, reviewPath, student, gin.H{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, code)
	code, resp = s.do(http.MethodPost, reviewPath, student, gin.H{"rating": 4, "comment": "clear and short"})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var review model.CourseReview
	require.NoError(t, json.Unmarshal(resp.Data, &review))
	assert.Equal(t, 4, review.Rating)

	code, resp = s.do(http.MethodGet, fmt.Sprintf("/api/courses/%d/modules/%d/lessons/%d", course.ID, module.ID, lessonIDs[0]), student, nil)
	require.Equal(t, http.StatusOK, code, resp.Message)
	var visit service.LessonVisit
	require.NoError(t, json.Unmarshal(resp.Data, &visit))
	assert.Equal(t, 50, visit.Enrollment.Progress)

	code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/lessons/%d/visit", lessonIDs[1]), student, nil)
	require.Equal(t, http.StatusOK, code, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, &visit))
	assert.Equal(t, 100, visit.Enrollment.Progress)
	assert.True(t, visit.CertificateIssued)

	code, resp = s.do(http.MethodGet, "/api/certificates", student, nil)
	require.Equal(t, http.StatusOK, code)
	var certs []model.Certificate
	require.NoError(t, json.Unmarshal(resp.Data, &certs))
	assert.Len(t, certs, 1)

	code, resp = s.do(http.MethodGet, "/api/notifications?unread=true", student, nil)
	require.Equal(t, http.StatusOK, code)
	var notes []model.Notification
	require.NoError(t, json.Unmarshal(resp.Data, &notes))
	assert.Len(t, notes, 2)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/api/courses/%d/modules/%d/lessons/%d", course.ID, module.ID+100, lessonIDs[0]), student, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = s.do(http.MethodGet, "/api/me", student, nil)
	require.Equal(t, http.StatusOK, code)
	var me model.User
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	assert.Equal(t, student.ID, me.ID)
	assert.Equal(t, student.Email, me.Email)
}

func TestGrading(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner", model.Instructor)
	stranger := testutil.CreateUser(t, s.db, "stranger", model.Instructor)
	student := testutil.CreateUser(t, s.db, "student", model.Student)
	_, lessons := testutil.CreateCourseWithLessons(t, s.db, owner.ID, 1)
	assignment := testutil.CreateAssignment(t, s.db, lessons[0].ID)

	code, resp := s.do(http.MethodPost, fmt.Sprintf("/api/assignments/%d/submissions", assignment.ID), student, gin.H{"fileUrl": "not a url"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/assignments/%d/submissions", assignment.ID), student, gin.H{"fileUrl": "https://example.com/essay.pdf"})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var submission model.Submission
	require.NoError(t, json.Unmarshal(resp.Data, &submission))

	path := fmt.Sprintf("/api/instructor/submissions/%d/grade", submission.ID)

	code, _ = s.do(http.MethodPut, path, stranger, gin.H{"grade": 90})
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodPut, path, owner, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(resp.Data), `"field":"grade"`)

	code, _ = s.do(http.MethodPut, path, owner, gin.H{"grade": 150})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = s.do(http.MethodPut, path, owner, gin.H{"grade": 0})
	require.Equal(t, http.StatusOK, code, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, &submission))
	require.NotNil(t, submission.Grade)
	assert.Zero(t, *submission.Grade)
}

func TestQuizEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner", model.Instructor)
	student := testutil.CreateUser(t, s.db, "student", model.Student)
	_, lessons := testutil.CreateCourseWithLessons(t, s.db, owner.ID, 1)

	code, resp := s.do(http.MethodPost, fmt.Sprintf("/api/instructor/lessons/%d/quizzes", lessons[0].ID), owner, gin.H{"title": "Check", "totalMarks": 2})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var quiz model.Quiz
	require.NoError(t, json.Unmarshal(resp.Data, &quiz))

	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/instructor/lessons/%d/quizzes", lessons[0].ID), owner, gin.H{"title": "Again"})
	assert.Equal(t, http.StatusConflict, code)

	var questionIDs []uint
	for _, answer := range []string{"A", "B"} {
		code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/instructor/quizzes/%d/questions", quiz.ID), owner, gin.H{"questionText": "?", "correctAnswer": answer})
		require.Equal(t, http.StatusCreated, code, resp.Message)
		var q model.Question
		require.NoError(t, json.Unmarshal(resp.Data, &q))
		questionIDs = append(questionIDs, q.ID)
	}

	code, resp = s.do(http.MethodGet, fmt.Sprintf("/api/quizzes/%d", quiz.ID), student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(resp.Data), "correctAnswer")

	answers := map[string]string{
		fmt.Sprint(questionIDs[0]): "A",
		fmt.Sprint(questionIDs[1]): "C",
	}
	code, resp = s.do(http.MethodPost, fmt.Sprintf("/api/quizzes/%d/attempts", quiz.ID), student, gin.H{"answers": answers})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	var grade service.QuizGrade
	require.NoError(t, json.Unmarshal(resp.Data, &grade))
	assert.Equal(t, 1, grade.Score)
	assert.Equal(t, 2, grade.Total)

	code, resp = s.do(http.MethodGet, "/api/instructor/quiz-performance", owner, nil)
	require.Equal(t, http.StatusOK, code)
	var histogram model.QuizHistogram
	require.NoError(t, json.Unmarshal(resp.Data, &histogram))

	code, resp = s.do(http.MethodGet, "/api/instructor/dashboard", owner, nil)
	require.Equal(t, http.StatusOK, code)
	var dashboard service.InstructorDashboard
	require.NoError(t, json.Unmarshal(resp.Data, &dashboard))

	assert.Equal(t, histogram, dashboard.QuizChart)
	assert.Equal(t, []int{1, 0, 0}, histogram.Counts)
}

func TestConfigCallbacksSwapPolicy(t *testing.T) {
	s := newTestServer(t)

	cfg := *s.app.Config
	cfg.Grading = config.GradingConfig{MinGrade: 1, MaxGrade: 5}
	cfg.Analytics = config.AnalyticsConfig{EnrollmentMonths: 12, MatchEnrollmentYear: true}
	s.app.applyConfig(&cfg)

	assert.Equal(t, service.GradePolicy{Min: 1, Max: 5}, s.app.services.assessment.GradePolicy())
	assert.Equal(t, service.AnalyticsOptions{EnrollmentMonths: 12, MatchEnrollmentYear: true}, s.app.services.analytics.Options())
}
