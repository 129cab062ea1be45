package model

type NotificationType string

const (
	NotificationEnrollment  NotificationType = "enrollment"
	NotificationCertificate NotificationType = "certificate"
)

// swagger:model Notification
type Notification struct {
	BaseModel
	UserID           uint             `gorm:"index;not null" json:"userId"`
	Message          string           `gorm:"type:text" json:"message"`
	NotificationType NotificationType `gorm:"size:50" json:"notificationType"`
	IsRead           bool             `gorm:"default:false" json:"isRead"`
}

func (Notification) TableName() string {
	return "notifications"
}
