package service

import (
	"context"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

// AccessService 统一的课程归属校验，供所有讲师操作复用
type AccessService struct {
	OwnershipRepo *repository.OwnershipRepository
}

func NewAccessService(ownershipRepo *repository.OwnershipRepository) *AccessService {
	return &AccessService{OwnershipRepo: ownershipRepo}
}

// RequireOwner 实体不存在返回 util.ErrNotFound，非课程创建者返回 util.ErrNotCourseOwner
func (s *AccessService) RequireOwner(ctx context.Context, userID uint, scope repository.OwnerScope, id uint) (*repository.Ownership, error) {
	owner, err := s.OwnershipRepo.Lookup(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if owner.CreatorID != userID {
		return nil, util.ErrNotCourseOwner
	}
	return owner, nil
}
