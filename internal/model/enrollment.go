package model

import "time"

// Enrollment 的 Progress 只由课时完成情况推导；IsCompleted 一旦为 true 不再回退
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID    uint       `gorm:"uniqueIndex:idx_enrollment_user_course;index;not null" json:"courseId"`
	Course      *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	EnrolledAt  time.Time  `gorm:"index" json:"enrolledAt"`
	Progress    int        `gorm:"default:0" json:"progress"`
	IsCompleted bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_lesson_progress_user_lesson;not null" json:"userId"`
	LessonID    uint       `gorm:"uniqueIndex:idx_lesson_progress_user_lesson;index;not null" json:"lessonId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

// Certificate 每个 (用户, 课程) 至多一张
// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID   uint      `gorm:"uniqueIndex:idx_certificate_user_course;not null" json:"userId"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID uint      `gorm:"uniqueIndex:idx_certificate_user_course;index;not null" json:"courseId"`
	Course   *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	IssuedAt time.Time `gorm:"index" json:"issuedAt"`
}

func (Certificate) TableName() string {
	return "certificates"
}
