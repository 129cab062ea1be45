package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

// InstructorController 讲师侧：课程编排、评分、测验与作业查看
type InstructorController struct {
	CatalogService    *service.CatalogService
	AssessmentService *service.AssessmentService
}

func NewInstructorController(catalogService *service.CatalogService, assessmentService *service.AssessmentService) *InstructorController {
	return &InstructorController{
		CatalogService:    catalogService,
		AssessmentService: assessmentService,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"max=100"`
	Difficulty  string `json:"difficulty" binding:"max=50"`
}

type ModuleRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Order       int    `json:"order" binding:"min=0"`
}

type LessonRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Order        int    `json:"order" binding:"min=0"`
	ContentType  string `json:"contentType" binding:"required,oneof=Video Text PDF"`
	ContentValue string `json:"contentValue" binding:"required"`
	ContentOrder int    `json:"contentOrder" binding:"min=0"`
}

type QuizRequest struct {
	Title      string `json:"title" binding:"required,max=255"`
	TotalMarks int    `json:"totalMarks" binding:"min=0"`
}

type QuestionRequest struct {
	QuestionText  string `json:"questionText" binding:"required"`
	QuestionType  string `json:"questionType" binding:"max=50"`
	CorrectAnswer string `json:"correctAnswer" binding:"required,max=255"`
}

type AssignmentRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

type GradeRequest struct {
	Grade *float64 `json:"grade" binding:"required"`
}

// @Summary 创建课程
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param course body CourseRequest true "课程"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /instructor/courses [post]
func (c *InstructorController) CreateCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	course, err := c.CatalogService.CreateCourse(ctx.Request.Context(), user.UserID, service.CourseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary 管理课程
// @Tags 讲师
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Router /instructor/courses/{courseId} [get]
func (c *InstructorController) ManageCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParamID(ctx, "courseId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	course, err := c.CatalogService.ManageCourse(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// @Summary 删除课程
// @Description 级联删除章节、课时及全部学习记录
// @Tags 讲师
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /instructor/courses/{courseId} [delete]
func (c *InstructorController) DeleteCourse(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParamID(ctx, "courseId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.CatalogService.DeleteCourse(ctx.Request.Context(), user.UserID, courseID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Course deleted"})
}

// @Summary 添加章节
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param module body ModuleRequest true "章节"
// @Success 201 {object} util.Response{data=model.Module}
// @Router /instructor/courses/{courseId}/modules [post]
func (c *InstructorController) AddModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParamID(ctx, "courseId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	module, err := c.CatalogService.AddModule(ctx.Request.Context(), user.UserID, courseID, service.ModuleInput{
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, module)
}

// @Summary 添加课时
// @Description 课时与内容一并创建
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param moduleId path int true "章节ID"
// @Param lesson body LessonRequest true "课时"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Router /instructor/modules/{moduleId}/lessons [post]
func (c *InstructorController) AddLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := util.ParamID(ctx, "moduleId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	lesson, err := c.CatalogService.AddLesson(ctx.Request.Context(), user.UserID, moduleID, service.LessonInput{
		Title:        req.Title,
		Order:        req.Order,
		ContentType:  model.ContentType(req.ContentType),
		ContentValue: req.ContentValue,
		ContentOrder: req.ContentOrder,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, lesson)
}

// @Summary 添加测验
// @Description 每个课时只能有一个测验，已存在时返回 409
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课时ID"
// @Param quiz body QuizRequest true "测验"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 409 {object} util.Response
// @Router /instructor/lessons/{lessonId}/quizzes [post]
func (c *InstructorController) AddQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, err := util.ParamID(ctx, "lessonId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	quiz, err := c.AssessmentService.AddQuiz(ctx.Request.Context(), user.UserID, lessonID, service.QuizInput{
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// @Summary 添加题目
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "测验ID"
// @Param question body QuestionRequest true "题目"
// @Success 201 {object} util.Response{data=model.Question}
// @Router /instructor/quizzes/{quizId}/questions [post]
func (c *InstructorController) AddQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := util.ParamID(ctx, "quizId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	question, err := c.AssessmentService.AddQuestion(ctx.Request.Context(), user.UserID, quizID, service.QuestionInput{
		QuestionText:  req.QuestionText,
		QuestionType:  req.QuestionType,
		CorrectAnswer: req.CorrectAnswer,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, question)
}

// @Summary 添加作业
// @Description 每个课时只能有一个作业，已存在时返回 409
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课时ID"
// @Param assignment body AssignmentRequest true "作业"
// @Success 201 {object} util.Response{data=model.Assignment}
// @Failure 409 {object} util.Response
// @Router /instructor/lessons/{lessonId}/assignments [post]
func (c *InstructorController) AddAssignment(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, err := util.ParamID(ctx, "lessonId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req AssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	assignment, err := c.AssessmentService.AddAssignment(ctx.Request.Context(), user.UserID, lessonID, service.AssignmentInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, assignment)
}

// @Summary 作业评分
// @Description 只有课程创建者可以评分，分数需在配置的区间内
// @Tags 讲师
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param submissionId path int true "提交ID"
// @Param grade body GradeRequest true "分数"
// @Success 200 {object} util.Response{data=model.Submission}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /instructor/submissions/{submissionId}/grade [put]
func (c *InstructorController) GradeSubmission(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	submissionID, err := util.ParamID(ctx, "submissionId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	submission, err := c.AssessmentService.GradeSubmission(ctx.Request.Context(), user.UserID, submissionID, *req.Grade)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, submission)
}

// @Summary 测验结果
// @Tags 讲师
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=[]model.QuizAttempt}
// @Router /instructor/quizzes/{quizId}/results [get]
func (c *InstructorController) QuizResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizID, err := util.ParamID(ctx, "quizId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	attempts, err := c.AssessmentService.QuizResults(ctx.Request.Context(), user.UserID, quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 作业提交列表
// @Description 最新提交在前
// @Tags 讲师
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "作业ID"
// @Success 200 {object} util.Response{data=[]model.Submission}
// @Router /instructor/assignments/{assignmentId}/submissions [get]
func (c *InstructorController) AssignmentSubmissions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	assignmentID, err := util.ParamID(ctx, "assignmentId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	submissions, err := c.AssessmentService.AssignmentSubmissions(ctx.Request.Context(), user.UserID, assignmentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, submissions)
}
