package repository

import (
	"errors"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// mapNotFound 将 gorm 的记录不存在错误统一为 util.ErrNotFound
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return err
}
