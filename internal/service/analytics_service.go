package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// AnalyticsOptions 月度选课图表的参数
type AnalyticsOptions struct {
	EnrollmentMonths    int
	MatchEnrollmentYear bool
}

// CourseAnalyticsView 课程分析页：重算后的汇总与待批改提交
type CourseAnalyticsView struct {
	Analytics          *model.Analytics   `json:"analytics"`
	PendingSubmissions []model.Submission `json:"pendingSubmissions"`
}

type EnrollmentChart struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// InstructorDashboard 讲师总览
type InstructorDashboard struct {
	Courses            []model.Course       `json:"courses"`
	TotalCourses       int                  `json:"totalCourses"`
	TotalStudents      int64                `json:"totalStudents"`
	AvgCompletion      float64              `json:"avgCompletion"`
	AvgQuizScore       float64              `json:"avgQuizScore"`
	RecentEnrollments  []model.Enrollment   `json:"recentEnrollments"`
	PendingSubmissions []model.Submission   `json:"pendingSubmissions"`
	RecentReviews      []model.CourseReview `json:"recentReviews"`
	RecentCertificates []model.Certificate  `json:"recentCertificates"`
	EnrollmentChart    EnrollmentChart      `json:"enrollmentChart"`
	QuizChart          model.QuizHistogram  `json:"quizChart"`
}

type AnalyticsService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AnalyticsRepo  *repository.AnalyticsRepository
	AssessmentRepo *repository.AssessmentRepository
	ReviewRepo     *repository.ReviewRepository
	Access         *AccessService
	DB             *gorm.DB
	Now            func() time.Time

	mu      sync.RWMutex
	options AnalyticsOptions
}

func NewAnalyticsService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	analyticsRepo *repository.AnalyticsRepository,
	assessmentRepo *repository.AssessmentRepository,
	reviewRepo *repository.ReviewRepository,
	access *AccessService,
	db *gorm.DB,
	options AnalyticsOptions,
) *AnalyticsService {
	return &AnalyticsService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		AnalyticsRepo:  analyticsRepo,
		AssessmentRepo: assessmentRepo,
		ReviewRepo:     reviewRepo,
		Access:         access,
		DB:             db,
		Now:            time.Now,
		options:        options,
	}
}

func (s *AnalyticsService) SetOptions(opts AnalyticsOptions) {
	s.mu.Lock()
	s.options = opts
	s.mu.Unlock()
}

func (s *AnalyticsService) Options() AnalyticsOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.options
}

// RecomputeCourseAnalytics 从选课与测验记录全量重算课程汇总并写回
func (s *AnalyticsService) RecomputeCourseAnalytics(ctx context.Context, courseID uint) (*model.Analytics, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.RecomputeCourseAnalytics")
	defer span.End()
	span.SetAttributes(attribute.Int64("course.id", int64(courseID)))

	timer := prometheus.NewTimer(monitoring.AnalyticsRecomputeDuration)
	defer timer.ObserveDuration()

	var analytics *model.Analytics
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.AnalyticsRepo.WithTx(tx)

		row, err := repo.GetOrCreate(ctx, courseID)
		if err != nil {
			return err
		}
		stats, err := repo.CourseStats(ctx, courseID)
		if err != nil {
			return err
		}

		applyStats(row, stats)
		row.LastUpdated = s.Now()

		if err := repo.Save(ctx, row); err != nil {
			return err
		}
		analytics = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return analytics, nil
}

// applyStats 无选课时完成率的分母按 1 计，结果为 0
func applyStats(row *model.Analytics, stats *model.CourseStats) {
	denominator := stats.TotalEnrolled
	if denominator == 0 {
		denominator = 1
	}

	row.TotalEnrolled = stats.TotalEnrolled
	row.AvgProgress = util.Round2(stats.AvgProgress)
	row.CompletionRate = util.Round2(float64(stats.CompletedCount) / float64(denominator) * 100)
	row.AvgQuizScore = util.Round2(stats.AvgQuizScore)
}

// GetCourseAnalytics 讲师查看课程分析，每次查看都会重算
func (s *AnalyticsService) GetCourseAnalytics(ctx context.Context, instructorID, courseID uint) (*CourseAnalyticsView, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeCourse, courseID); err != nil {
		return nil, err
	}

	analytics, err := s.RecomputeCourseAnalytics(ctx, courseID)
	if err != nil {
		return nil, err
	}

	pending, err := s.AssessmentRepo.PendingByCourses(ctx, []uint{courseID}, 0)
	if err != nil {
		return nil, err
	}
	return &CourseAnalyticsView{Analytics: analytics, PendingSubmissions: pending}, nil
}

func (s *AnalyticsService) QuizScoreHistogram(ctx context.Context, courseIDs []uint) (model.QuizHistogram, error) {
	scores, err := s.AnalyticsRepo.QuizScores(ctx, courseIDs)
	if err != nil {
		return model.QuizHistogram{}, err
	}
	return BucketQuizScores(scores), nil
}

// InstructorQuizHistogram 讲师名下全部课程的测验成绩分布，与仪表盘使用同一分桶
func (s *AnalyticsService) InstructorQuizHistogram(ctx context.Context, instructorID uint) (model.QuizHistogram, error) {
	courseIDs, err := s.CourseRepo.IDsByCreator(ctx, instructorID)
	if err != nil {
		return model.QuizHistogram{}, err
	}
	return s.QuizScoreHistogram(ctx, courseIDs)
}

// MonthlyEnrollmentSeries 截至 now 所在月的最近 months 个自然月的选课数，最早的在前
func (s *AnalyticsService) MonthlyEnrollmentSeries(ctx context.Context, courseIDs []uint, months int, now time.Time) ([]model.MonthlyPoint, error) {
	times, err := s.EnrollmentRepo.EnrolledAtByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	for i := range times {
		times[i] = times[i].In(now.Location())
	}

	points := MonthWindows(now, months)
	return CountByMonth(points, times, s.Options().MatchEnrollmentYear), nil
}

func (s *AnalyticsService) InstructorDashboard(ctx context.Context, instructorID uint) (*InstructorDashboard, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.InstructorDashboard")
	defer span.End()

	courses, err := s.CourseRepo.FindByCreator(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	d := &InstructorDashboard{Courses: courses, TotalCourses: len(courses)}

	if d.TotalStudents, err = s.EnrollmentRepo.CountByCourses(ctx, courseIDs); err != nil {
		return nil, err
	}
	avgCompletion, err := s.EnrollmentRepo.AvgProgressByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	d.AvgCompletion = util.Round2(avgCompletion)

	avgQuiz, err := s.AnalyticsRepo.AvgQuizScore(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	d.AvgQuizScore = util.Round2(avgQuiz)

	if d.RecentEnrollments, err = s.EnrollmentRepo.RecentByCourses(ctx, courseIDs, util.RecentListLimit); err != nil {
		return nil, err
	}
	if d.PendingSubmissions, err = s.AssessmentRepo.PendingByCourses(ctx, courseIDs, util.RecentListLimit); err != nil {
		return nil, err
	}
	if d.RecentReviews, err = s.ReviewRepo.RecentByCourses(ctx, courseIDs, util.RecentListLimit); err != nil {
		return nil, err
	}
	if d.RecentCertificates, err = s.EnrollmentRepo.RecentCertificatesByCourses(ctx, courseIDs, util.RecentListLimit); err != nil {
		return nil, err
	}

	series, err := s.MonthlyEnrollmentSeries(ctx, courseIDs, s.Options().EnrollmentMonths, s.Now())
	if err != nil {
		return nil, err
	}
	d.EnrollmentChart = EnrollmentChart{
		Labels: make([]string, 0, len(series)),
		Data:   make([]int, 0, len(series)),
	}
	for _, p := range series {
		d.EnrollmentChart.Labels = append(d.EnrollmentChart.Labels, p.Label)
		d.EnrollmentChart.Data = append(d.EnrollmentChart.Data, p.Count)
	}

	if d.QuizChart, err = s.QuizScoreHistogram(ctx, courseIDs); err != nil {
		return nil, err
	}
	return d, nil
}
