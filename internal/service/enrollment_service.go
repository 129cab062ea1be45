package service

import (
	"context"
	"errors"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LessonVisit 访问课时的结果，附带课时详情
type LessonVisit struct {
	LessonProgress      *model.LessonProgress `json:"lessonProgress"`
	Enrollment          *model.Enrollment     `json:"enrollment"`
	CertificateIssued   bool                  `json:"certificateIssued"`
	Lesson              *model.Lesson         `json:"lesson"`
	QuizAttempted       bool                  `json:"quizAttempted"`
	AssignmentSubmitted bool                  `json:"assignmentSubmitted"`
}

type StudentDashboard struct {
	Enrollments  []model.Enrollment  `json:"enrollments"`
	Certificates []model.Certificate `json:"certificates"`
}

type EnrollmentService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AnalyticsRepo  *repository.AnalyticsRepository
	AssessmentRepo *repository.AssessmentRepository
	OwnershipRepo  *repository.OwnershipRepository
	Notifications  *NotificationService
	DB             *gorm.DB
	Now            func() time.Time
}

func NewEnrollmentService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	analyticsRepo *repository.AnalyticsRepository,
	assessmentRepo *repository.AssessmentRepository,
	ownershipRepo *repository.OwnershipRepository,
	notifications *NotificationService,
	db *gorm.DB,
) *EnrollmentService {
	return &EnrollmentService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		AnalyticsRepo:  analyticsRepo,
		AssessmentRepo: assessmentRepo,
		OwnershipRepo:  ownershipRepo,
		Notifications:  notifications,
		DB:             db,
		Now:            time.Now,
	}
}

// Enroll 幂等选课：已选课时直接返回原记录，不报错也不重复计数
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	ctx, span := tracing.Tracer.Start(ctx, "EnrollmentService.Enroll")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)), attribute.Int64("course.id", int64(courseID)))

	course, err := s.CourseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var (
		enrollment *model.Enrollment
		note       *model.Notification
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollments := s.EnrollmentRepo.WithTx(tx)

		candidate := &model.Enrollment{UserID: userID, CourseID: courseID, EnrolledAt: s.Now()}
		created, err := enrollments.CreateIfAbsent(ctx, candidate)
		if err != nil {
			return err
		}
		if !created {
			enrollment, err = enrollments.FindByUserAndCourse(ctx, userID, courseID)
			return err
		}
		enrollment = candidate

		if err := s.AnalyticsRepo.WithTx(tx).IncrementEnrolled(ctx, courseID); err != nil {
			return err
		}

		note, err = s.Notifications.CreateTx(ctx, tx, userID, model.NotificationEnrollment,
			fmt.Sprintf("You have enrolled in %s.", course.Title))
		return err
	})
	if err != nil {
		return nil, err
	}

	if note != nil {
		monitoring.EnrollmentsTotal.Inc()
		logger.Ctx(ctx).Info("User enrolled in course", zap.Uint("userID", userID), zap.Uint("courseID", courseID))
		s.Notifications.Dispatch(ctx, note)
	}
	return enrollment, nil
}

// RecordLessonVisit 标记课时完成并重算选课进度
func (s *EnrollmentService) RecordLessonVisit(ctx context.Context, userID, lessonID uint) (*LessonVisit, error) {
	loc, err := s.OwnershipRepo.LocateLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	return s.visit(ctx, userID, loc)
}

// VisitLessonAt 与 RecordLessonVisit 相同，但要求路径上的课程、章节与课时层级一致
func (s *EnrollmentService) VisitLessonAt(ctx context.Context, userID, courseID, moduleID, lessonID uint) (*LessonVisit, error) {
	loc, err := s.OwnershipRepo.LocateLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if loc.ModuleID != moduleID || loc.CourseID != courseID {
		return nil, util.ErrNotFound
	}
	return s.visit(ctx, userID, loc)
}

func (s *EnrollmentService) visit(ctx context.Context, userID uint, loc *model.LessonLocation) (*LessonVisit, error) {
	ctx, span := tracing.Tracer.Start(ctx, "EnrollmentService.RecordLessonVisit")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", int64(userID)), attribute.Int64("lesson.id", int64(loc.LessonID)))

	course, err := s.CourseRepo.FindByID(ctx, loc.CourseID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	result := &LessonVisit{}
	var note *model.Notification

	// 选课行加锁，保证同一 (用户, 课程) 的进度更新与证书发放串行
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrollments := s.EnrollmentRepo.WithTx(tx)

		enrollment, err := enrollments.FindForUpdate(ctx, userID, loc.CourseID)
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrNotEnrolled
		}
		if err != nil {
			return err
		}

		if err := enrollments.MarkLessonCompleted(ctx, userID, loc.LessonID, now); err != nil {
			return err
		}

		total, err := enrollments.CountCourseLessons(ctx, loc.CourseID)
		if err != nil {
			return err
		}
		completed, err := enrollments.CountCompletedLessons(ctx, userID, loc.CourseID)
		if err != nil {
			return err
		}

		if progress, ok := CalculateProgress(completed, total); ok {
			enrollment.Progress = progress
			if progress >= 100 && !enrollment.IsCompleted {
				enrollment.IsCompleted = true
				enrollment.CompletedAt = &now

				issued, err := enrollments.IssueCertificate(ctx, &model.Certificate{
					UserID:   userID,
					CourseID: loc.CourseID,
					IssuedAt: now,
				})
				if err != nil {
					return err
				}
				if issued {
					result.CertificateIssued = true
					note, err = s.Notifications.CreateTx(ctx, tx, userID, model.NotificationCertificate,
						fmt.Sprintf("Congratulations! You have completed the course %s and earned a certificate.", course.Title))
					if err != nil {
						return err
					}
				}
			}
			if err := enrollments.UpdateProgress(ctx, enrollment); err != nil {
				return err
			}
		}
		result.Enrollment = enrollment

		result.LessonProgress, err = enrollments.FindLessonProgress(ctx, userID, loc.LessonID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.CertificateIssued {
		monitoring.CertificatesIssued.Inc()
		logger.Ctx(ctx).Info("Certificate issued", zap.Uint("userID", userID), zap.Uint("courseID", loc.CourseID))
		s.Notifications.Dispatch(ctx, note)
	}

	if err := s.fillLessonView(ctx, userID, loc.LessonID, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *EnrollmentService) fillLessonView(ctx context.Context, userID, lessonID uint, result *LessonVisit) error {
	lesson, err := s.CourseRepo.FindLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	result.Lesson = lesson

	if lesson.Quiz != nil {
		if result.QuizAttempted, err = s.AssessmentRepo.HasAttempted(ctx, userID, lesson.Quiz.ID); err != nil {
			return err
		}
	}
	if lesson.Assignment != nil {
		if result.AssignmentSubmitted, err = s.AssessmentRepo.HasSubmitted(ctx, userID, lesson.Assignment.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	return s.EnrollmentRepo.Exists(ctx, userID, courseID)
}

func (s *EnrollmentService) Certificates(ctx context.Context, userID uint) ([]model.Certificate, error) {
	return s.EnrollmentRepo.CertificatesByUser(ctx, userID)
}

func (s *EnrollmentService) Dashboard(ctx context.Context, userID uint) (*StudentDashboard, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	certificates, err := s.EnrollmentRepo.CertificatesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StudentDashboard{Enrollments: enrollments, Certificates: certificates}, nil
}
