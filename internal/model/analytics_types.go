package model

// CourseStats 从选课与测验记录现算出的课程汇总
type CourseStats struct {
	TotalEnrolled  int
	CompletedCount int
	AvgProgress    float64
	AvgQuizScore   float64
}

// QuizHistogram 测验成绩分布，三个区间按原始得分划分
type QuizHistogram struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// MonthlyPoint 月度选课折线图的一个点
type MonthlyPoint struct {
	Label string `json:"label"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Count int    `json:"count"`
}
