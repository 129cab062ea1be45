package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/testutil"
	"sync"
	"testing"

	"gorm.io/gorm"
)

// recordingPublisher 记录投递的通知
type recordingPublisher struct {
	mu   sync.Mutex
	sent []model.Notification
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, n *model.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *n)
	return p.err
}

func (p *recordingPublisher) Sent() []model.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Notification(nil), p.sent...)
}

type fixture struct {
	db         *gorm.DB
	publisher  *recordingPublisher
	access     *AccessService
	catalog    *CatalogService
	enrollment *EnrollmentService
	assessment *AssessmentService
	analytics  *AnalyticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	courses := repository.NewCourseRepository(db)
	enrollments := repository.NewEnrollmentRepository(db)
	assessments := repository.NewAssessmentRepository(db)
	analytics := repository.NewAnalyticsRepository(db)
	reviews := repository.NewReviewRepository(db)
	ownership := repository.NewOwnershipRepository(db)

	publisher := &recordingPublisher{}
	notifications := NewNotificationService(repository.NewNotificationRepository(db), nil)
	notifications.Publisher = publisher

	access := NewAccessService(ownership)
	storage := &StorageService{Provider: &LocalStorageProvider{Root: t.TempDir()}}

	return &fixture{
		db:         db,
		publisher:  publisher,
		access:     access,
		catalog:    NewCatalogService(courses, enrollments, reviews, access),
		enrollment: NewEnrollmentService(courses, enrollments, analytics, assessments, ownership, notifications, db),
		assessment: NewAssessmentService(assessments, access, storage, GradePolicy{Min: 0, Max: 100}),
		analytics: NewAnalyticsService(courses, enrollments, analytics, assessments, reviews, access, db,
			AnalyticsOptions{EnrollmentMonths: 6}),
	}
}

func (f *fixture) count(t *testing.T, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
