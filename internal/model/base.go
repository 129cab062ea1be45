package model

import (
	"time"
)

// swagger:model
// 课程相关记录采用硬删除（删除课程时级联清理），因此不带 DeletedAt
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
