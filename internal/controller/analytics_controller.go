package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 课程分析
// @Description 每次查看都会重新计算课程汇总，并返回待批改提交
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=service.CourseAnalyticsView}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /instructor/courses/{courseId}/analytics [get]
func (c *AnalyticsController) CourseAnalytics(ctx *gin.Context) {
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

	view, err := c.AnalyticsService.GetCourseAnalytics(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 测验成绩分布
// @Description 讲师名下全部课程的测验得分分桶，与仪表盘的 quizChart 一致
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.QuizHistogram}
// @Router /instructor/quiz-performance [get]
func (c *AnalyticsController) QuizPerformance(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	histogram, err := c.AnalyticsService.InstructorQuizHistogram(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, histogram)
}

// @Summary 讲师仪表盘
// @Tags 分析
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.InstructorDashboard}
// @Router /instructor/dashboard [get]
func (c *AnalyticsController) Dashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.AnalyticsService.InstructorDashboard(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
