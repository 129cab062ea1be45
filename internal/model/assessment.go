package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID   uint       `gorm:"index;not null" json:"lessonId"`
	Title      string     `gorm:"size:255;not null" json:"title"`
	TotalMarks int        `gorm:"default:0" json:"totalMarks"`
	Questions  []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question 的答案按字符串精确比较（区分大小写）
// swagger:model Question
type Question struct {
	BaseModel
	QuizID        uint   `gorm:"index;not null" json:"quizId"`
	QuestionText  string `gorm:"type:text" json:"questionText"`
	QuestionType  string `gorm:"size:50" json:"questionType"`
	CorrectAnswer string `gorm:"size:255;not null" json:"correctAnswer"`
}

func (Question) TableName() string {
	return "questions"
}

// QuizAttempt 只追加，不做"最高分"合并
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID      uint      `gorm:"index;not null" json:"userId"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	QuizID      uint      `gorm:"index;not null" json:"quizId"`
	Score       int       `gorm:"default:0" json:"score"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// swagger:model Assignment
type Assignment struct {
	BaseModel
	LessonID    uint      `gorm:"index;not null" json:"lessonId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// Submission 的 Grade 为空表示待批改
// swagger:model Submission
type Submission struct {
	BaseModel
	AssignmentID uint        `gorm:"index;not null" json:"assignmentId"`
	Assignment   *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
	StudentID    uint        `gorm:"index;not null" json:"studentId"`
	Student      *User       `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FileURL      string      `gorm:"size:500" json:"fileUrl"`
	Grade        *float64    `gorm:"type:decimal(5,2)" json:"grade"`
	SubmittedAt  time.Time   `gorm:"index" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) Pending() bool {
	return s.Grade == nil
}
