package model

import (
	"time"
)

// Analytics 课程级汇总快照，每门课程一行，按需懒创建。
// 除 TotalEnrolled 在选课时递增外，其余字段仅在查看仪表盘时重算
// swagger:model Analytics
type Analytics struct {
	BaseModel
	CourseID       uint      `gorm:"uniqueIndex;not null" json:"courseId"`
	TotalEnrolled  int       `gorm:"default:0" json:"totalEnrolled"`
	AvgProgress    float64   `gorm:"type:decimal(5,2);default:0" json:"avgProgress"`
	CompletionRate float64   `gorm:"type:decimal(5,2);default:0" json:"completionRate"`
	AvgQuizScore   float64   `gorm:"type:decimal(5,2);default:0" json:"avgQuizScore"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

func (Analytics) TableName() string {
	return "course_analytics"
}
