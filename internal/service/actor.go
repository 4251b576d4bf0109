package service

import (
	"errors"

	"school-hub/backend/internal/listquery"
)

// Actor 当前调用方，由认证中间件从身份声明中解析
type Actor struct {
	ID   string
	Role listquery.Role
}

func (a Actor) IsAdmin() bool { return a.Role == listquery.RoleAdmin }

// auditID 用于写入 created_by / updated_by
func (a Actor) auditID() *string {
	if a.ID == "" {
		return nil
	}
	id := a.ID
	return &id
}

// ── 跨模块通用业务错误 ──

var (
	ErrForbidden        = errors.New("无权执行该操作")
	ErrInvalidTimeRange = errors.New("结束时间必须晚于开始时间")
	ErrConflict         = errors.New("数据已被他人修改，请刷新后重试")
	ErrInUse            = errors.New("记录仍被引用，无法删除")
	ErrInvalidReference = errors.New("关联的记录不存在")
)

// businessErrors 已知的业务错误，遇到时直接返回给调用方而不记录错误日志
var businessErrors = []error{
	ErrForbidden, ErrInvalidTimeRange, ErrConflict, ErrInUse, ErrInvalidReference,
	ErrInvalidCredentials, ErrAccountNotFound, ErrInvalidToken, ErrWrongPassword,
	ErrUnknownList, ErrListUnavailable,
	ErrTeacherNotFound, ErrStudentNotFound, ErrParentNotFound,
	ErrUsernameTaken, ErrContactTaken, ErrPasswordRequired, ErrInvalidBirthday, ErrClassFull,
	ErrSubjectNotFound, ErrSubjectNameTaken, ErrClassNotFound, ErrClassNameTaken,
	ErrCapacityTooSmall, ErrLessonNotFound, ErrVersionRequired,
	ErrExamNotFound, ErrAssignmentNotFound,
	ErrEventNotFound, ErrAnnouncementNotFound,
	ErrInvalidScheduleTarget, ErrUnknownExport, ErrUnknownForm,
}

func isBusinessError(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
