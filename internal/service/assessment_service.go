package service

import (
	"context"
	"errors"
	"io"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// QuizGrade 一次测验提交的评分结果
type QuizGrade struct {
	AttemptID uint `json:"attemptId"`
	Score     int  `json:"score"`
	Total     int  `json:"total"`
}

// QuizView 学员可见的测验，不含正确答案
type QuizView struct {
	ID         uint           `json:"id"`
	LessonID   uint           `json:"lessonId"`
	Title      string         `json:"title"`
	TotalMarks int            `json:"totalMarks"`
	Questions  []QuestionView `json:"questions"`
}

type QuestionView struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"questionText"`
	QuestionType string `json:"questionType"`
}

type QuizInput struct {
	Title      string
	TotalMarks int
}

type QuestionInput struct {
	QuestionText  string
	QuestionType  string
	CorrectAnswer string
}

type AssignmentInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	Access         *AccessService
	Storage        *StorageService
	Now            func() time.Time

	mu     sync.RWMutex
	policy GradePolicy
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	access *AccessService,
	storage *StorageService,
	policy GradePolicy,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		Access:         access,
		Storage:        storage,
		Now:            time.Now,
		policy:         policy,
	}
}

// SetGradePolicy 配置热更新时替换评分区间
func (s *AssessmentService) SetGradePolicy(p GradePolicy) {
	s.mu.Lock()
	s.policy = p
	s.mu.Unlock()
}

func (s *AssessmentService) GradePolicy() GradePolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// GradeQuizAttempt 自动评分并追加一条测验记录，得分为答对题数
func (s *AssessmentService) GradeQuizAttempt(ctx context.Context, userID, quizID uint, answers map[uint]string) (*QuizGrade, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.GradeQuizAttempt")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)), attribute.Int64("quiz.id", int64(quizID)))

	quiz, err := s.AssessmentRepo.FindQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:      userID,
		QuizID:      quizID,
		Score:       ScoreAnswers(quiz.Questions, answers),
		AttemptedAt: s.Now(),
	}
	if err := s.AssessmentRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	monitoring.QuizAttemptsTotal.Inc()
	logger.Ctx(ctx).Info("Quiz attempt graded",
		zap.Uint("userID", userID),
		zap.Uint("quizID", quizID),
		zap.Int("score", attempt.Score),
	)

	return &QuizGrade{AttemptID: attempt.ID, Score: attempt.Score, Total: len(quiz.Questions)}, nil
}

func (s *AssessmentService) GetQuiz(ctx context.Context, quizID uint) (*QuizView, error) {
	quiz, err := s.AssessmentRepo.FindQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	view := &QuizView{
		ID:         quiz.ID,
		LessonID:   quiz.LessonID,
		Title:      quiz.Title,
		TotalMarks: quiz.TotalMarks,
		Questions:  make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, QuestionView{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
		})
	}
	return view, nil
}

// RecordAssignmentSubmission 追加一条待批改提交；允许多次提交与逾期提交
func (s *AssessmentService) RecordAssignmentSubmission(ctx context.Context, userID, assignmentID uint, fileRef string) (*model.Submission, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.RecordAssignmentSubmission")
	defer span.End()

	if _, err := s.AssessmentRepo.FindAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}
	return s.createSubmission(ctx, userID, assignmentID, fileRef, "link")
}

// UploadSubmission 先存储附件再记录提交
func (s *AssessmentService) UploadSubmission(ctx context.Context, userID, assignmentID uint, filename string, reader io.ReadSeeker, size int64) (*model.Submission, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.UploadSubmission")
	defer span.End()

	if _, err := s.AssessmentRepo.FindAssignment(ctx, assignmentID); err != nil {
		return nil, err
	}

	key, url, err := s.Storage.StoreSubmissionFile(ctx, assignmentID, filename, reader, size)
	if err != nil {
		return nil, err
	}
	submission, err := s.createSubmission(ctx, userID, assignmentID, url, "upload")
	if err != nil {
		// 记录失败时清理已上传的对象
		if derr := s.Storage.Delete(context.WithoutCancel(ctx), key); derr != nil {
			logger.Ctx(ctx).Warn("Failed to remove orphaned upload", zap.String("key", key), zap.Error(derr))
		}
		return nil, err
	}
	return submission, nil
}

func (s *AssessmentService) createSubmission(ctx context.Context, userID, assignmentID uint, fileRef, source string) (*model.Submission, error) {
	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    userID,
		FileURL:      fileRef,
		SubmittedAt:  s.Now(),
	}
	if err := s.AssessmentRepo.CreateSubmission(ctx, submission); err != nil {
		return nil, err
	}

	monitoring.SubmissionsTotal.WithLabelValues(source).Inc()
	logger.Ctx(ctx).Info("Assignment submitted",
		zap.Uint("userID", userID),
		zap.Uint("assignmentID", assignmentID),
		zap.Uint("submissionID", submission.ID),
	)
	return submission, nil
}

// GradeSubmission 只有提交所属课程的创建者可以评分
func (s *AssessmentService) GradeSubmission(ctx context.Context, instructorID, submissionID uint, grade float64) (*model.Submission, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.GradeSubmission")
	defer span.End()

	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeSubmission, submissionID); err != nil {
		if errors.Is(err, util.ErrNotCourseOwner) {
			return nil, util.ErrCannotGrade
		}
		return nil, err
	}

	if err := s.GradePolicy().Validate(grade); err != nil {
		return nil, err
	}

	if err := s.AssessmentRepo.SetGrade(ctx, submissionID, grade); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("Submission graded",
		zap.Uint("instructorID", instructorID),
		zap.Uint("submissionID", submissionID),
		zap.Float64("grade", grade),
	)
	return s.AssessmentRepo.FindSubmission(ctx, submissionID)
}

// AddQuiz 每个课时至多一个测验
func (s *AssessmentService) AddQuiz(ctx context.Context, instructorID, lessonID uint, input QuizInput) (*model.Quiz, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeLesson, lessonID); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{LessonID: lessonID, Title: input.Title, TotalMarks: input.TotalMarks}
	if err := s.AssessmentRepo.CreateQuizForLesson(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *AssessmentService) AddQuestion(ctx context.Context, instructorID, quizID uint, input QuestionInput) (*model.Question, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeQuiz, quizID); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuizID:        quizID,
		QuestionText:  input.QuestionText,
		QuestionType:  input.QuestionType,
		CorrectAnswer: input.CorrectAnswer,
	}
	if err := s.AssessmentRepo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// AddAssignment 每个课时至多一个作业
func (s *AssessmentService) AddAssignment(ctx context.Context, instructorID, lessonID uint, input AssignmentInput) (*model.Assignment, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeLesson, lessonID); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		LessonID:    lessonID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
	}
	if err := s.AssessmentRepo.CreateAssignmentForLesson(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssessmentService) QuizResults(ctx context.Context, instructorID, quizID uint) ([]model.QuizAttempt, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeQuiz, quizID); err != nil {
		return nil, err
	}
	return s.AssessmentRepo.AttemptsByQuiz(ctx, quizID)
}

func (s *AssessmentService) AssignmentSubmissions(ctx context.Context, instructorID, assignmentID uint) ([]model.Submission, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeAssignment, assignmentID); err != nil {
		return nil, err
	}
	return s.AssessmentRepo.SubmissionsByAssignment(ctx, assignmentID)
}
