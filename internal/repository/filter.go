package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
)

// ErrUnsupportedFilter 过滤描述符中出现了当前实体无法翻译的字段或限制
var ErrUnsupportedFilter = errors.New("不支持的过滤条件")

// fieldSQL 字段路径到 SQL 的映射
// subquery 为空时直接比较 column；否则生成 column IN (subquery WHERE target <op> ?)
// uuid 为 true 表示被比较的列是 UUID 类型
type fieldSQL struct {
	column   string
	subquery string
	target   string
	uuid     bool
}

func (f fieldSQL) predicate(op listquery.Op) (string, error) {
	cmp := f.column
	if f.subquery != "" {
		cmp = f.target
	}

	var expr string
	switch op {
	case listquery.OpEquals:
		expr = cmp + " = ?"
	case listquery.OpContains:
		expr = cmp + " ILIKE ?"
	default:
		return "", fmt.Errorf("%w: op %q", ErrUnsupportedFilter, op)
	}

	if f.subquery == "" {
		return expr, nil
	}
	return fmt.Sprintf("%s IN (%s WHERE %s)", f.column, f.subquery, expr), nil
}

// entitySQL 单个实体的表映射
//
//	classColumn  行所属班级的列；为空表示实体无班级归属
//	lessonColumn 行所属课程的列；非空时班级限制经由课程的班级判断
type entitySQL struct {
	table        string
	fields       map[string]fieldSQL
	classColumn  string
	lessonColumn string
	nullable     bool // classColumn 允许为 NULL（全校通用）
	order        string
}

const (
	lessonSubjectSub = "SELECT l.id FROM lessons l JOIN subjects s ON s.id = l.subject_id"
	lessonSub        = "SELECT id FROM lessons"
)

var entityTables = map[listquery.Entity]entitySQL{
	listquery.EntityAnnouncements: {
		table: "announcements",
		fields: map[string]fieldSQL{
			"title":   {column: "announcements.title"},
			"classId": {column: "announcements.class_id"},
		},
		classColumn: "announcements.class_id",
		nullable:    true,
		order:       "announcements.date DESC, announcements.id DESC",
	},
	listquery.EntityAssignments: {
		table: "assignments",
		fields: map[string]fieldSQL{
			"lesson.subject.name": {column: "assignments.lesson_id", subquery: lessonSubjectSub, target: "s.name"},
			"lesson.classId":      {column: "assignments.lesson_id", subquery: lessonSub, target: "class_id"},
			"lesson.teacherId":    {column: "assignments.lesson_id", subquery: lessonSub, target: "teacher_id", uuid: true},
		},
		lessonColumn: "assignments.lesson_id",
		order:        "assignments.due_date ASC, assignments.id ASC",
	},
	listquery.EntityClasses: {
		table: "classes",
		fields: map[string]fieldSQL{
			"name":         {column: "classes.name"},
			"supervisorId": {column: "classes.supervisor_id", uuid: true},
		},
		classColumn: "classes.id",
		order:       "classes.name ASC",
	},
	listquery.EntityEvents: {
		table: "events",
		fields: map[string]fieldSQL{
			"title":   {column: "events.title"},
			"classId": {column: "events.class_id"},
		},
		classColumn: "events.class_id",
		order:       "events.start_time DESC, events.id DESC",
	},
	listquery.EntityExams: {
		table: "exams",
		fields: map[string]fieldSQL{
			"lesson.subject.name": {column: "exams.lesson_id", subquery: lessonSubjectSub, target: "s.name"},
			"lesson.classId":      {column: "exams.lesson_id", subquery: lessonSub, target: "class_id"},
			"lesson.teacherId":    {column: "exams.lesson_id", subquery: lessonSub, target: "teacher_id", uuid: true},
		},
		lessonColumn: "exams.lesson_id",
		order:        "exams.start_time ASC, exams.id ASC",
	},
	listquery.EntityLessons: {
		table: "lessons",
		fields: map[string]fieldSQL{
			"subject.name": {column: "lessons.subject_id", subquery: "SELECT id FROM subjects", target: "name"},
			"teacher.name": {column: "lessons.teacher_id", subquery: "SELECT id FROM teachers", target: "name"},
			"classId":      {column: "lessons.class_id"},
			"teacherId":    {column: "lessons.teacher_id", uuid: true},
		},
		classColumn: "lessons.class_id",
		order:       "lessons.id ASC",
	},
	listquery.EntityParents: {
		table: "parents",
		fields: map[string]fieldSQL{
			"name": {column: "parents.name"},
		},
		order: "parents.name ASC, parents.id ASC",
	},
	listquery.EntityStudents: {
		table: "students",
		fields: map[string]fieldSQL{
			"name":                    {column: "students.name"},
			"classId":                 {column: "students.class_id"},
			"class.lessons.teacherId": {column: "students.class_id", subquery: "SELECT class_id FROM lessons", target: "teacher_id", uuid: true},
		},
		classColumn: "students.class_id",
		order:       "students.name ASC, students.id ASC",
	},
	listquery.EntitySubjects: {
		table: "subjects",
		fields: map[string]fieldSQL{
			"name": {column: "subjects.name"},
		},
		order: "subjects.name ASC",
	},
	listquery.EntityTeachers: {
		table: "teachers",
		fields: map[string]fieldSQL{
			"name":            {column: "teachers.name"},
			"lessons.classId": {column: "teachers.id", subquery: "SELECT teacher_id FROM lessons", target: "class_id"},
		},
		order: "teachers.name ASC, teachers.id ASC",
	},
}

// classScopeSubquery 返回选出"调用方可见班级 ID"的子查询
func classScopeSubquery(scope listquery.Scope) (string, bool) {
	switch scope {
	case listquery.ScopeClassTaughtBy:
		return "SELECT class_id FROM lessons WHERE teacher_id = ?", true
	case listquery.ScopeClassHasStudent:
		return "SELECT class_id FROM students WHERE id = ?", true
	case listquery.ScopeClassHasChildOf:
		return "SELECT class_id FROM students WHERE parent_id = ?", true
	}
	return "", false
}

func (e entitySQL) restriction(r *listquery.Restriction) (string, []interface{}, error) {
	var (
		expr string
		args []interface{}
	)

	switch {
	case r.Scope == listquery.ScopeDenyAll:
		expr = denyAll
	case !validUUID(r.ActorID):
		expr = denyAll
	case r.Scope == listquery.ScopeLessonTaughtBy:
		if e.lessonColumn == "" {
			return "", nil, fmt.Errorf("%w: %s 无课程归属", ErrUnsupportedFilter, e.table)
		}
		expr = e.lessonColumn + " IN (SELECT id FROM lessons WHERE teacher_id = ?)"
		args = append(args, r.ActorID)
	default:
		sub, ok := classScopeSubquery(r.Scope)
		if !ok {
			return "", nil, fmt.Errorf("%w: scope %q", ErrUnsupportedFilter, r.Scope)
		}
		switch {
		case e.lessonColumn != "":
			expr = fmt.Sprintf("%s IN (SELECT id FROM lessons WHERE class_id IN (%s))", e.lessonColumn, sub)
		case e.classColumn != "":
			expr = fmt.Sprintf("%s IN (%s)", e.classColumn, sub)
		default:
			return "", nil, fmt.Errorf("%w: %s 无班级归属", ErrUnsupportedFilter, e.table)
		}
		args = append(args, r.ActorID)
	}

	if r.IncludeUnscoped && e.nullable {
		expr = fmt.Sprintf("(%s IS NULL OR %s)", e.classColumn, expr)
	}
	return expr, args, nil
}

// whereClause 一条 WHERE 条件及其参数
type whereClause struct {
	expr string
	args []interface{}
}

// translate 将过滤描述符翻译为 WHERE 条件列表，条件之间为 AND；Search 内部合并为一条 OR 条件
func translate(f *listquery.Filter) ([]whereClause, error) {
	e, ok := entityTables[f.Entity]
	if !ok {
		return nil, fmt.Errorf("%w: entity %q", ErrUnsupportedFilter, f.Entity)
	}

	var clauses []whereClause
	if len(f.Search) > 0 {
		preds := make([]string, 0, len(f.Search))
		args := make([]interface{}, 0, len(f.Search))
		for _, c := range f.Search {
			p, arg, err := e.condition(c)
			if err != nil {
				return nil, err
			}
			preds = append(preds, p)
			args = append(args, arg...)
		}
		clauses = append(clauses, whereClause{expr: "(" + strings.Join(preds, " OR ") + ")", args: args})
	}

	for _, c := range f.Match {
		p, arg, err := e.condition(c)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, whereClause{expr: p, args: arg})
	}

	if f.Restriction != nil {
		expr, args, err := e.restriction(f.Restriction)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, whereClause{expr: expr, args: args})
	}
	return clauses, nil
}

func applyFilter(db *gorm.DB, f *listquery.Filter) (*gorm.DB, error) {
	if f.Empty() {
		return db, nil
	}
	clauses, err := translate(f)
	if err != nil {
		return nil, err
	}
	for _, c := range clauses {
		db = db.Where(c.expr, c.args...)
	}
	return db, nil
}

// denyAll 恒假条件
const denyAll = "1 = 0"

// condition 翻译单个条件；UUID 列上无法解析的值直接翻译为恒假条件，不交给数据库
func (e entitySQL) condition(c listquery.Condition) (string, []interface{}, error) {
	field, ok := e.fields[c.Field]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s.%s", ErrUnsupportedFilter, e.table, c.Field)
	}
	p, err := field.predicate(c.Op)
	if err != nil {
		return "", nil, err
	}
	if c.Op == listquery.OpContains {
		return p, []interface{}{"%" + escapeLike(fmt.Sprint(c.Value)) + "%"}, nil
	}
	if field.uuid {
		id, err := uuid.Parse(fmt.Sprint(c.Value))
		if err != nil {
			return denyAll, nil, nil
		}
		return p, []interface{}{id.String()}, nil
	}
	return p, []interface{}{c.Value}, nil
}

func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// listPage 在同一个只读事务内执行 COUNT 与分页查询，两者读取同一快照
func listPage[T any](ctx context.Context, db *gorm.DB, f *listquery.Filter, w listquery.PageWindow, preloads ...string) ([]T, int64, error) {
	e, ok := entityTables[f.Entity]
	if !ok {
		return nil, 0, fmt.Errorf("%w: entity %q", ErrUnsupportedFilter, f.Entity)
	}

	var (
		rows  []T
		total int64
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := applyFilter(tx.Model(new(T)), f)
		if err != nil {
			return err
		}
		if err := q.Count(&total).Error; err != nil {
			return err
		}

		q, err = applyFilter(tx.Model(new(T)), f)
		if err != nil {
			return err
		}
		for _, p := range preloads {
			q = q.Preload(p)
		}
		return q.Order(e.order).
			Offset(w.Offset()).Limit(w.Limit()).
			Find(&rows).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// listAll 不分页地取出全部匹配记录，最多 limit 条
func listAll[T any](ctx context.Context, db *gorm.DB, f *listquery.Filter, limit int, preloads ...string) ([]T, error) {
	e, ok := entityTables[f.Entity]
	if !ok {
		return nil, fmt.Errorf("%w: entity %q", ErrUnsupportedFilter, f.Entity)
	}
	q, err := applyFilter(db.WithContext(ctx).Model(new(T)), f)
	if err != nil {
		return nil, err
	}
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var rows []T
	if err := q.Order(e.order).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
