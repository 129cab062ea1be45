package util

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")

	ErrNotEnrolled      = fmt.Errorf("%w: you must be enrolled in this course to view this lesson", ErrPermissionDenied)
	ErrNotCourseOwner   = fmt.Errorf("%w: you do not own this course", ErrPermissionDenied)
	ErrCannotGrade      = fmt.Errorf("%w: you cannot grade this submission", ErrPermissionDenied)
	ErrReviewNotAllowed = fmt.Errorf("%w: only enrolled students can review this course", ErrPermissionDenied)
	ErrQuizExists       = errors.New("a quiz already exists for this lesson. You can only have one quiz per lesson")
	ErrAssignmentExists = errors.New("an assignment already exists for this lesson. You can only have one assignment per lesson")
)

// ValidationError 表单字段级校验错误，返回给提交方
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors 同一次提交中的多个字段错误
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	msg := v[0].Error()
	if len(v) > 1 {
		msg += fmt.Sprintf(" (and %d more)", len(v)-1)
	}
	return msg
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrQuizExists) || errors.Is(err, ErrAssignmentExists)
}
