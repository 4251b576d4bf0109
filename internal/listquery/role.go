package listquery

import "strings"

// Role 调用方访问级别，由身份提供方断言
type Role int

const (
	// RoleUnknown 身份提供方未给出或给出无法识别的角色，不享有任何特权
	RoleUnknown Role = iota
	RoleAdmin
	RoleTeacher
	RoleStudent
	RoleParent
)

var roleNames = map[Role]string{
	RoleAdmin:   "admin",
	RoleTeacher: "teacher",
	RoleStudent: "student",
	RoleParent:  "parent",
}

// ParseRole 将身份声明中的角色字符串解析为 Role，大小写与首尾空白不敏感
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin
	case "teacher":
		return RoleTeacher
	case "student":
		return RoleStudent
	case "parent":
		return RoleParent
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Known 是否为四种已知角色之一
func (r Role) Known() bool {
	_, ok := roleNames[r]
	return ok
}
