package service

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type CourseInput struct {
	Title       string
	Description string
	Category    string
	Difficulty  string
}

type ModuleInput struct {
	Title       string
	Description string
	Order       int
}

// LessonInput 课时与其内容一并创建
type LessonInput struct {
	Title        string
	Order        int
	ContentType  model.ContentType
	ContentValue string
	ContentOrder int
}

type ReviewInput struct {
	Rating  int
	Comment string
}

// CourseDetail 课程详情，附带当前用户的选课状态
type CourseDetail struct {
	*model.Course
	IsEnrolled bool                 `json:"isEnrolled"`
	Reviews    []model.CourseReview `json:"reviews"`
}

type CatalogService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ReviewRepo     *repository.ReviewRepository
	Access         *AccessService
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	reviewRepo *repository.ReviewRepository,
	access *AccessService,
) *CatalogService {
	return &CatalogService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ReviewRepo:     reviewRepo,
		Access:         access,
	}
}

func (s *CatalogService) ListCourses(ctx context.Context, page, limit int) ([]model.CourseSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.List(ctx, page, limit)
}

func (s *CatalogService) GetCourseDetail(ctx context.Context, userID, courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindDetail(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.EnrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.ReviewRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{Course: course, IsEnrolled: enrolled, Reviews: reviews}, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, instructorID uint, input CourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Difficulty:  input.Difficulty,
		CreatorID:   instructorID,
	}
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info("Course created", zap.Uint("instructorID", instructorID), zap.Uint("courseID", course.ID))
	return course, nil
}

// ManageCourse 讲师查看自己课程的完整结构
func (s *CatalogService) ManageCourse(ctx context.Context, instructorID, courseID uint) (*model.Course, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeCourse, courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.FindDetail(ctx, courseID)
}

func (s *CatalogService) DeleteCourse(ctx context.Context, instructorID, courseID uint) error {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeCourse, courseID); err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	logger.Ctx(ctx).Info("Course deleted", zap.Uint("instructorID", instructorID), zap.Uint("courseID", courseID))
	return nil
}

func (s *CatalogService) AddModule(ctx context.Context, instructorID, courseID uint, input ModuleInput) (*model.Module, error) {
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeCourse, courseID); err != nil {
		return nil, err
	}

	module := &model.Module{
		CourseID:    courseID,
		Title:       input.Title,
		Description: input.Description,
		Order:       input.Order,
	}
	if err := s.CourseRepo.CreateModule(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CatalogService) AddLesson(ctx context.Context, instructorID, moduleID uint, input LessonInput) (*model.Lesson, error) {
	if !input.ContentType.Valid() {
		return nil, util.NewValidationError("contentType", "must be one of: Video Text PDF")
	}
	if _, err := s.Access.RequireOwner(ctx, instructorID, repository.ScopeModule, moduleID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{ModuleID: moduleID, Title: input.Title, Order: input.Order}
	content := &model.LessonContent{
		ContentType: input.ContentType,
		Value:       input.ContentValue,
		Order:       input.ContentOrder,
	}
	if err := s.CourseRepo.CreateLessonWithContent(ctx, lesson, content); err != nil {
		return nil, err
	}
	return lesson, nil
}

// AddReview 只有已选课的用户可以评价
func (s *CatalogService) AddReview(ctx context.Context, userID, courseID uint, input ReviewInput) (*model.CourseReview, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, util.NewValidationError("rating", "must be between 1 and 5")
	}
	if _, err := s.CourseRepo.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.EnrollmentRepo.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, util.ErrReviewNotAllowed
	}

	review := &model.CourseReview{
		UserID:   userID,
		CourseID: courseID,
		Rating:   input.Rating,
		Comment:  input.Comment,
	}
	if err := s.ReviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
