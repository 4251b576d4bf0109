package repository

import (
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"

	"school-hub/backend/internal/listquery"
)

const (
	actorTeacher = "7a1f6c2e-3b44-4d1a-9c3e-5f2b8d0e1a01"
	actorStudent = "7a1f6c2e-3b44-4d1a-9c3e-5f2b8d0e1a02"
	actorParent  = "7a1f6c2e-3b44-4d1a-9c3e-5f2b8d0e1a03"
)

func TestTranslate_AllBuilderOutputs(t *testing.T) {
	b := listquery.NewBuilder(listquery.PaginationConfig{PageSize: 10})
	params := listquery.Params{
		"search": "a", "classId": "1", "teacherId": "t", "supervisorId": "t",
	}
	roles := []listquery.Role{
		listquery.RoleUnknown, listquery.RoleAdmin, listquery.RoleTeacher,
		listquery.RoleStudent, listquery.RoleParent,
	}

	for _, e := range listquery.Entities() {
		if _, ok := entityTables[e]; !ok {
			t.Fatalf("%s 缺少表映射", e)
		}
		for _, role := range roles {
			f, _, err := b.Build(e, params, role, "actor")
			if err != nil {
				t.Fatalf("%s/%s: 构造失败: %v", e, role, err)
			}
			if _, err := translate(f); err != nil {
				t.Errorf("%s/%s: 翻译失败: %v", e, role, err)
			}
		}
	}
}

func TestTranslate_SearchIsOneOrClause(t *testing.T) {
	f := &listquery.Filter{
		Entity: listquery.EntityLessons,
		Search: []listquery.Condition{
			listquery.Contains("subject.name", "bio"),
			listquery.Contains("teacher.name", "bio"),
		},
	}
	clauses, err := translate(f)
	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	if len(clauses) != 1 {
		t.Fatalf("期望 1 条条件, got %d", len(clauses))
	}
	c := clauses[0]
	if !strings.HasPrefix(c.expr, "(") || !strings.Contains(c.expr, " OR ") {
		t.Errorf("搜索条件应整体以括号包裹的 OR 连接: %s", c.expr)
	}
	if len(c.args) != 2 || c.args[0] != "%bio%" {
		t.Errorf("参数错误: %v", c.args)
	}
}

func TestTranslate_LessonOwnedTeacherScope(t *testing.T) {
	f := &listquery.Filter{
		Entity:      listquery.EntityExams,
		Restriction: &listquery.Restriction{Scope: listquery.ScopeLessonTaughtBy, ActorID: actorTeacher},
	}
	clauses, err := translate(f)
	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	want := "exams.lesson_id IN (SELECT id FROM lessons WHERE teacher_id = ?)"
	if clauses[0].expr != want || clauses[0].args[0] != actorTeacher {
		t.Errorf("期望 %q, got %q %v", want, clauses[0].expr, clauses[0].args)
	}
}

func TestTranslate_LessonOwnedClassScope(t *testing.T) {
	f := &listquery.Filter{
		Entity:      listquery.EntityAssignments,
		Restriction: &listquery.Restriction{Scope: listquery.ScopeClassHasChildOf, ActorID: actorParent},
	}
	clauses, _ := translate(f)
	want := "assignments.lesson_id IN (SELECT id FROM lessons WHERE class_id IN (SELECT class_id FROM students WHERE parent_id = ?))"
	if clauses[0].expr != want {
		t.Errorf("期望 %q, got %q", want, clauses[0].expr)
	}
}

func TestTranslate_AnnouncementsIncludeGeneral(t *testing.T) {
	f := &listquery.Filter{
		Entity:      listquery.EntityAnnouncements,
		Restriction: &listquery.Restriction{Scope: listquery.ScopeClassHasStudent, ActorID: actorStudent, IncludeUnscoped: true},
	}
	clauses, _ := translate(f)
	want := "(announcements.class_id IS NULL OR announcements.class_id IN (SELECT class_id FROM students WHERE id = ?))"
	if clauses[0].expr != want {
		t.Errorf("期望 %q, got %q", want, clauses[0].expr)
	}
}

func TestTranslate_DenyAll(t *testing.T) {
	f := &listquery.Filter{
		Entity:      listquery.EntityEvents,
		Restriction: &listquery.Restriction{Scope: listquery.ScopeDenyAll},
	}
	clauses, _ := translate(f)
	if clauses[0].expr != "1 = 0" || len(clauses[0].args) != 0 {
		t.Errorf("期望恒假条件, got %q %v", clauses[0].expr, clauses[0].args)
	}

	f.Entity = listquery.EntityAnnouncements
	f.Restriction.IncludeUnscoped = true
	clauses, _ = translate(f)
	if clauses[0].expr != "(announcements.class_id IS NULL OR 1 = 0)" {
		t.Errorf("公告应保留通用记录, got %q", clauses[0].expr)
	}
}

func TestTranslate_UnknownField(t *testing.T) {
	f := &listquery.Filter{
		Entity: listquery.EntitySubjects,
		Match:  []listquery.Condition{listquery.Equals("password_hash", "x")},
	}
	if _, err := translate(f); !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("期望 ErrUnsupportedFilter, got %v", err)
	}
}

func TestTranslate_ScopeOnUnownedEntity(t *testing.T) {
	f := &listquery.Filter{
		Entity:      listquery.EntityParents,
		Restriction: &listquery.Restriction{Scope: listquery.ScopeClassTaughtBy, ActorID: actorTeacher},
	}
	if _, err := translate(f); !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("期望 ErrUnsupportedFilter, got %v", err)
	}
}

func TestTranslate_MalformedUUIDMatchesNothing(t *testing.T) {
	tests := []struct {
		entity listquery.Entity
		field  string
	}{
		{listquery.EntityLessons, "teacherId"},
		{listquery.EntityClasses, "supervisorId"},
		{listquery.EntityExams, "lesson.teacherId"},
		{listquery.EntityAssignments, "lesson.teacherId"},
		{listquery.EntityStudents, "class.lessons.teacherId"},
	}
	for _, tt := range tests {
		f := &listquery.Filter{Entity: tt.entity, Match: []listquery.Condition{listquery.Equals(tt.field, "abc")}}
		clauses, err := translate(f)
		if err != nil {
			t.Fatalf("%s.%s: 非法 UUID 不应报错: %v", tt.entity, tt.field, err)
		}
		if len(clauses) != 1 || clauses[0].expr != "1 = 0" || len(clauses[0].args) != 0 {
			t.Errorf("%s.%s: 期望恒假条件, got %+v", tt.entity, tt.field, clauses)
		}
	}
}

func TestTranslate_UUIDIsCanonicalized(t *testing.T) {
	f := &listquery.Filter{
		Entity: listquery.EntityLessons,
		Match:  []listquery.Condition{listquery.Equals("teacherId", "{7A1F6C2E-3B44-4D1A-9C3E-5F2B8D0E1A01}")},
	}
	clauses, err := translate(f)
	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	if clauses[0].expr != "lessons.teacher_id = ?" || clauses[0].args[0] != actorTeacher {
		t.Errorf("期望规范化后的 UUID, got %q %v", clauses[0].expr, clauses[0].args)
	}
}

func TestTranslate_MalformedActorDeniesAll(t *testing.T) {
	f := &listquery.Filter{
		Entity:      listquery.EntityLessons,
		Restriction: &listquery.Restriction{Scope: listquery.ScopeClassTaughtBy, ActorID: "not-a-uuid"},
	}
	clauses, err := translate(f)
	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	if clauses[0].expr != "1 = 0" {
		t.Errorf("期望恒假条件, got %q", clauses[0].expr)
	}
}

func TestApplyFilter_EmptyFilterLeavesQueryUntouched(t *testing.T) {
	db := &gorm.DB{}
	got, err := applyFilter(db, &listquery.Filter{Entity: listquery.EntitySubjects})
	if err != nil {
		t.Fatalf("不应报错: %v", err)
	}
	if got != db {
		t.Error("空描述符不应追加任何条件")
	}

	// 空描述符不做翻译，未知实体也不报错；非空时照常校验
	if _, err := applyFilter(db, &listquery.Filter{Entity: "unknown"}); err != nil {
		t.Errorf("空描述符不应报错: %v", err)
	}
	bad := &listquery.Filter{Entity: "unknown", Match: []listquery.Condition{listquery.Equals("name", "x")}}
	if _, err := applyFilter(db, bad); !errors.Is(err, ErrUnsupportedFilter) {
		t.Errorf("期望 ErrUnsupportedFilter, got %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Errorf("转义错误: %s", got)
	}
}
