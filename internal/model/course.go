package model

import "time"

// swagger:model Course
type Course struct {
	BaseModel
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Category    string   `gorm:"size:100" json:"category"`
	Difficulty  string   `gorm:"size:50" json:"difficulty"`
	CreatorID   uint     `gorm:"index;not null" json:"creatorId"`
	Creator     *User    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Modules     []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// Module 课程下的章节，Order 不要求唯一，同序时按 ID 排列
// swagger:model Module
type Module struct {
	BaseModel
	CourseID    uint     `gorm:"index;not null" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"column:sort_order;default:0" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "course_modules"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID   uint           `gorm:"index;not null" json:"moduleId"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Order      int            `gorm:"column:sort_order;default:0" json:"order"`
	Content    *LessonContent `gorm:"foreignKey:LessonID" json:"content,omitempty"`
	Quiz       *Quiz          `gorm:"foreignKey:LessonID" json:"quiz,omitempty"`
	Assignment *Assignment    `gorm:"foreignKey:LessonID" json:"assignment,omitempty"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type ContentType string

const (
	ContentVideo ContentType = "Video"
	ContentText  ContentType = "Text"
	ContentPDF   ContentType = "PDF"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentVideo, ContentText, ContentPDF:
		return true
	}
	return false
}

// swagger:model LessonContent
type LessonContent struct {
	BaseModel
	LessonID    uint        `gorm:"uniqueIndex;not null" json:"lessonId"`
	ContentType ContentType `gorm:"size:10;not null" json:"contentType"`
	Value       string      `gorm:"type:text" json:"value"`
	Order       int         `gorm:"column:sort_order;default:0" json:"order"`
}

func (LessonContent) TableName() string {
	return "lesson_contents"
}

// LessonLocation 课时在课程层级中的位置，用于归属校验
type LessonLocation struct {
	LessonID  uint
	ModuleID  uint
	CourseID  uint
	CreatorID uint
}

// CourseReview 学员对课程的评价
// swagger:model CourseReview
type CourseReview struct {
	BaseModel
	UserID   uint    `gorm:"index;not null" json:"userId"`
	User     *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CourseID uint    `gorm:"index;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Rating   int     `gorm:"not null" json:"rating"`
	Comment  string  `gorm:"type:text" json:"comment"`
}

func (CourseReview) TableName() string {
	return "course_reviews"
}

// CourseSummary 课程列表项
type CourseSummary struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	CreatorID  uint      `json:"creatorId"`
	CreatedAt  time.Time `json:"createdAt"`
}
