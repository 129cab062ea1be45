package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 作业附件上限 20MB
const MaxSubmissionSize = 20 << 20

// LearningController 学员侧：访问课时、测验、作业与证书
type LearningController struct {
	EnrollmentService *service.EnrollmentService
	AssessmentService *service.AssessmentService
}

func NewLearningController(enrollmentService *service.EnrollmentService, assessmentService *service.AssessmentService) *LearningController {
	return &LearningController{
		EnrollmentService: enrollmentService,
		AssessmentService: assessmentService,
	}
}

type QuizAttemptRequest struct {
	Answers map[uint]string `json:"answers"`
}

type SubmissionRequest struct {
	FileURL string `json:"fileUrl" binding:"omitempty,url,max=500"`
}

// @Summary 查看课时
// @Description 标记课时完成并重算课程进度，未选课返回 403
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param moduleId path int true "章节ID"
// @Param lessonId path int true "课时ID"
// @Success 200 {object} util.Response{data=service.LessonVisit}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{courseId}/modules/{moduleId}/lessons/{lessonId} [get]
func (c *LearningController) ViewLesson(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var ids [3]uint
	for i, name := range []string{"courseId", "moduleId", "lessonId"} {
		id, err := util.ParamID(ctx, name)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		ids[i] = id
	}

	visit, err := c.EnrollmentService.VisitLessonAt(ctx.Request.Context(), user.UserID, ids[0], ids[1], ids[2])
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, visit)
}

// @Summary 记录课时访问
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "课时ID"
// @Success 200 {object} util.Response{data=service.LessonVisit}
// @Failure 403 {object} util.Response
// @Router /lessons/{lessonId}/visit [post]
func (c *LearningController) VisitLesson(ctx *gin.Context) {
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

	visit, err := c.EnrollmentService.RecordLessonVisit(ctx.Request.Context(), user.UserID, lessonID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, visit)
}

// @Summary 获取测验
// @Description 不返回正确答案
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "测验ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Router /quizzes/{quizId} [get]
func (c *LearningController) GetQuiz(ctx *gin.Context) {
	quizID, err := util.ParamID(ctx, "quizId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	quiz, err := c.AssessmentService.GetQuiz(ctx.Request.Context(), quizID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 提交测验
// @Description answers 以题目 ID 为键，缺答按错误计
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quizId path int true "测验ID"
// @Param attempt body QuizAttemptRequest true "答案"
// @Success 201 {object} util.Response{data=service.QuizGrade}
// @Router /quizzes/{quizId}/attempts [post]
func (c *LearningController) SubmitQuiz(ctx *gin.Context) {
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

	var req QuizAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	grade, err := c.AssessmentService.GradeQuizAttempt(ctx.Request.Context(), user.UserID, quizID, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, grade)
}

// @Summary 提交作业
// @Tags 作业
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "作业ID"
// @Param submission body SubmissionRequest true "作业链接"
// @Success 201 {object} util.Response{data=model.Submission}
// @Router /assignments/{assignmentId}/submissions [post]
func (c *LearningController) SubmitAssignment(ctx *gin.Context) {
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

	var req SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	submission, err := c.AssessmentService.RecordAssignmentSubmission(ctx.Request.Context(), user.UserID, assignmentID, req.FileURL)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// @Summary 上传作业附件
// @Tags 作业
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param assignmentId path int true "作业ID"
// @Param file formData file true "附件"
// @Success 201 {object} util.Response{data=model.Submission}
// @Router /assignments/{assignmentId}/submissions/upload [post]
func (c *LearningController) UploadSubmission(ctx *gin.Context) {
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

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.HandleError(ctx, util.NewValidationError("file", "this field is required"))
		return
	}
	if fileHeader.Size > MaxSubmissionSize {
		util.HandleError(ctx, util.NewValidationError("file", "file is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	submission, err := c.AssessmentService.UploadSubmission(ctx.Request.Context(), user.UserID, assignmentID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// @Summary 我的证书
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /certificates [get]
func (c *LearningController) Certificates(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	certs, err := c.EnrollmentService.Certificates(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, certs)
}

// @Summary 学员仪表盘
// @Tags 学习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.StudentDashboard}
// @Router /dashboard [get]
func (c *LearningController) Dashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.EnrollmentService.Dashboard(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
