package listquery

import (
	"net/url"
	"strings"
)

// Entity 列表视图对应的实体类型
type Entity string

const (
	EntityAnnouncements Entity = "announcements"
	EntityAssignments   Entity = "assignments"
	EntityClasses       Entity = "classes"
	EntityEvents        Entity = "events"
	EntityExams         Entity = "exams"
	EntityLessons       Entity = "lessons"
	EntityParents       Entity = "parents"
	EntityStudents      Entity = "students"
	EntitySubjects      Entity = "subjects"
	EntityTeachers      Entity = "teachers"
)

// ParseEntity 解析路由中的实体名
func ParseEntity(s string) (Entity, bool) {
	e := Entity(strings.ToLower(strings.TrimSpace(s)))
	_, ok := entityTable[e]
	return e, ok
}

// Entities 所有支持列表查询的实体，按名称排序
func Entities() []Entity {
	return []Entity{
		EntityAnnouncements, EntityAssignments, EntityClasses, EntityEvents, EntityExams,
		EntityLessons, EntityParents, EntityStudents, EntitySubjects, EntityTeachers,
	}
}

// Params 原始查询参数，每个键只保留第一个值
type Params map[string]string

// ParamsFromValues 从 URL 查询串构造 Params
func ParamsFromValues(v url.Values) Params {
	p := make(Params, len(v))
	for k, vals := range v {
		if len(vals) > 0 {
			p[k] = vals[0]
		}
	}
	return p
}

// ownership 记录归属关系，决定角色限制的形态
type ownership int

const (
	// ownerNone 无角色敏感归属，任何角色均可不受限读取
	ownerNone ownership = iota
	// ownerClass 通过班级归属
	ownerClass
	// ownerLesson 通过课程归属（课程再归属班级）
	ownerLesson
)

// scalarParam 实体识别的显式过滤参数
type scalarParam struct {
	key     string
	field   string
	numeric bool
}

// entityConfig 单个实体的查询配置
type entityConfig struct {
	search   []string
	params   []scalarParam
	owner    ownership
	unscoped bool // 未关联班级的记录对所有角色可见
}

var entityTable = map[Entity]entityConfig{
	EntityAnnouncements: {
		search:   []string{"title"},
		params:   []scalarParam{{key: "classId", field: "classId", numeric: true}},
		owner:    ownerClass,
		unscoped: true,
	},
	EntityAssignments: {
		search: []string{"lesson.subject.name"},
		params: []scalarParam{
			{key: "classId", field: "lesson.classId", numeric: true},
			{key: "teacherId", field: "lesson.teacherId"},
		},
		owner: ownerLesson,
	},
	EntityClasses: {
		search: []string{"name"},
		params: []scalarParam{{key: "supervisorId", field: "supervisorId"}},
		owner:  ownerClass,
	},
	EntityEvents: {
		search: []string{"title"},
		params: []scalarParam{{key: "classId", field: "classId", numeric: true}},
		owner:  ownerClass,
	},
	EntityExams: {
		search: []string{"lesson.subject.name"},
		params: []scalarParam{
			{key: "classId", field: "lesson.classId", numeric: true},
			{key: "teacherId", field: "lesson.teacherId"},
		},
		owner: ownerLesson,
	},
	EntityLessons: {
		search: []string{"subject.name", "teacher.name"},
		params: []scalarParam{
			{key: "classId", field: "classId", numeric: true},
			{key: "teacherId", field: "teacherId"},
		},
		owner: ownerClass,
	},
	EntityParents: {
		search: []string{"name"},
	},
	EntityStudents: {
		search: []string{"name"},
		params: []scalarParam{
			{key: "classId", field: "classId", numeric: true},
			{key: "teacherId", field: "class.lessons.teacherId"},
		},
		owner: ownerClass,
	},
	EntitySubjects: {
		search: []string{"name"},
	},
	EntityTeachers: {
		search: []string{"name"},
		params: []scalarParam{{key: "classId", field: "lessons.classId", numeric: true}},
	},
}
