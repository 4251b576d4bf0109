package listquery

// Op 匹配方式
type Op string

const (
	// OpEquals 精确相等
	OpEquals Op = "eq"
	// OpContains 大小写不敏感的子串包含
	OpContains Op = "contains"
)

// Condition 单个匹配条件。Field 为实体相关的字段路径，如 "lesson.subject.name"
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Equals 构造相等条件
func Equals(field string, value any) Condition {
	return Condition{Field: field, Op: OpEquals, Value: value}
}

// Contains 构造大小写不敏感的子串条件
func Contains(field, value string) Condition {
	return Condition{Field: field, Op: OpContains, Value: value}
}

// Scope 角色限制的形态
type Scope string

const (
	// ScopeClassTaughtBy 所属班级至少有一节课由 ActorID 任教
	ScopeClassTaughtBy Scope = "class_taught_by"
	// ScopeClassHasStudent 所属班级包含学生 ActorID
	ScopeClassHasStudent Scope = "class_has_student"
	// ScopeClassHasChildOf 所属班级至少有一名学生的家长是 ActorID
	ScopeClassHasChildOf Scope = "class_has_child_of"
	// ScopeLessonTaughtBy 所属课程由 ActorID 任教
	ScopeLessonTaughtBy Scope = "lesson_taught_by"
	// ScopeDenyAll 不匹配任何归属记录
	ScopeDenyAll Scope = "deny_all"
)

// Restriction 角色限制子句
// IncludeUnscoped 为 true 时，未关联班级的记录（全校通用）始终可见
type Restriction struct {
	Scope           Scope
	ActorID         string
	IncludeUnscoped bool
}

// Filter 过滤描述符：与存储形态无关的匹配条件集合
//
//	Search      之间为 OR（任一字段命中即可）
//	Match       之间为 AND
//	Restriction 为 nil 表示不做角色限制
//
// 三部分之间为 AND。
type Filter struct {
	Entity      Entity
	Search      []Condition
	Match       []Condition
	Restriction *Restriction
}

// Empty 是否没有任何条件
func (f *Filter) Empty() bool {
	return len(f.Search) == 0 && len(f.Match) == 0 && f.Restriction == nil
}

// MatchValue 取出 Match 中指定字段的值
func (f *Filter) MatchValue(field string) (any, bool) {
	for _, c := range f.Match {
		if c.Field == field {
			return c.Value, true
		}
	}
	return nil, false
}
