package service

import (
	"context"
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const NotificationOutboxKey = "lms:notifications:outbox"

// NotificationPublisher 将已持久化的通知投递给外部消费者（如邮件服务）
type NotificationPublisher interface {
	Publish(ctx context.Context, n *model.Notification) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, *model.Notification) error { return nil }

// RedisNotificationPublisher 以 LPUSH 写入 Redis 列表，消费者用 BRPOP 读取
type RedisNotificationPublisher struct {
	Client *redis.Client
	Key    string
}

func NewRedisNotificationPublisher(client *redis.Client) *RedisNotificationPublisher {
	return &RedisNotificationPublisher{Client: client, Key: NotificationOutboxKey}
}

func (p *RedisNotificationPublisher) Publish(ctx context.Context, n *model.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return p.Client.LPush(ctx, p.Key, payload).Err()
}

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
	Publisher        NotificationPublisher
}

// NewNotificationService rdb 为空时不投递，仅落库
func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client) *NotificationService {
	var publisher NotificationPublisher = nopPublisher{}
	if rdb != nil {
		publisher = NewRedisNotificationPublisher(rdb)
	}
	return &NotificationService{NotificationRepo: repo, Publisher: publisher}
}

// CreateTx 在调用方事务中写入通知
func (s *NotificationService) CreateTx(ctx context.Context, tx *gorm.DB, userID uint, typ model.NotificationType, message string) (*model.Notification, error) {
	n := &model.Notification{
		UserID:           userID,
		Message:          message,
		NotificationType: typ,
	}
	if err := s.NotificationRepo.WithTx(tx).Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Dispatch 事务提交后投递；投递失败只记录日志，不影响请求结果
func (s *NotificationService) Dispatch(ctx context.Context, notifications ...*model.Notification) {
	for _, n := range notifications {
		if n == nil {
			continue
		}
		if err := s.Publisher.Publish(ctx, n); err != nil {
			logger.Ctx(ctx).Warn("Failed to publish notification",
				zap.Uint("notificationID", n.ID),
				zap.Uint("userID", n.UserID),
				zap.Error(err),
			)
		}
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool) ([]model.Notification, error) {
	return s.NotificationRepo.ListByUser(ctx, userID, unreadOnly)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	return s.NotificationRepo.MarkRead(ctx, userID, id)
}
