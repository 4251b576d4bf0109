package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-hub/backend/internal/calendar"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrUnknownExport      = errors.New("不支持导出该列表")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
	clockLayout    = "15:04"
)

// ExportService 列表导出
//
// 与列表页使用同一个过滤描述符（含角色限制），不分页，
// 最多导出 pagination.export_limit 条。结果以 bytes.Buffer 返回，
// 由 Handler 设置响应头后写入。
type ExportService interface {
	Export(ctx context.Context, entity listquery.Entity, params listquery.Params, actor Actor) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	builder *listquery.Builder
	clock   calendar.Clock
	limit   int
	logger  *zap.Logger
}

func NewExportService(repo *repository.Repository, builder *listquery.Builder, clock calendar.Clock, limit int, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, builder: builder, clock: clock, limit: limit, logger: logger}
}

// sheet 一张导出表的内容
type sheet struct {
	title  string
	header []string
	rows   [][]interface{}
}

func (s *exportService) Export(ctx context.Context, entity listquery.Entity, params listquery.Params, actor Actor) (*bytes.Buffer, string, error) {
	f, _, err := s.builder.Build(entity, params, actor.Role, actor.ID)
	if err != nil {
		if errors.Is(err, listquery.ErrUnknownEntity) {
			return nil, "", ErrUnknownExport
		}
		return nil, "", mapBuildError(err)
	}

	sh, err := s.collect(ctx, f)
	if err != nil {
		if isBusinessError(err) {
			return nil, "", err
		}
		s.logger.Error("查询导出数据失败", zap.String("entity", string(entity)), zap.Error(err))
		return nil, "", ErrListUnavailable
	}

	buf, err := writeSheet(sh)
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.String("entity", string(entity)), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_%s.xlsx", sh.title, s.clock.Now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) collect(ctx context.Context, f *listquery.Filter) (*sheet, error) {
	switch f.Entity {
	case listquery.EntityTeachers:
		items, err := s.repo.Teacher.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "教师", header: []string{"用户名", "姓名", "科目", "班级", "电话", "地址"}}
		for _, t := range items {
			sh.rows = append(sh.rows, []interface{}{
				t.Username, fullName(t.Name, t.Surname), subjectNames(t.Subjects),
				classNames(t.Classes), deref(t.Phone), t.Address,
			})
		}
		return sh, nil

	case listquery.EntityStudents:
		items, err := s.repo.Student.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "学生", header: []string{"用户名", "姓名", "班级", "性别", "电话", "地址"}}
		for _, st := range items {
			class := ""
			if st.Class != nil {
				class = st.Class.Name
			}
			sh.rows = append(sh.rows, []interface{}{
				st.Username, fullName(st.Name, st.Surname), class, st.Sex, deref(st.Phone), st.Address,
			})
		}
		return sh, nil

	case listquery.EntityParents:
		items, err := s.repo.Parent.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "家长", header: []string{"用户名", "姓名", "孩子", "电话", "地址"}}
		for _, p := range items {
			children := make([]string, 0, len(p.Students))
			for _, c := range p.Students {
				children = append(children, fullName(c.Name, c.Surname))
			}
			sh.rows = append(sh.rows, []interface{}{
				p.Username, fullName(p.Name, p.Surname), strings.Join(children, "、"), p.Phone, p.Address,
			})
		}
		return sh, nil

	case listquery.EntitySubjects:
		items, err := s.repo.Subject.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "科目", header: []string{"科目", "任课教师"}}
		for _, sub := range items {
			teachers := make([]string, 0, len(sub.Teachers))
			for _, t := range sub.Teachers {
				teachers = append(teachers, fullName(t.Name, t.Surname))
			}
			sh.rows = append(sh.rows, []interface{}{sub.Name, strings.Join(teachers, "、")})
		}
		return sh, nil

	case listquery.EntityClasses:
		items, err := s.repo.Class.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "班级", header: []string{"班级", "容量", "年级", "班主任"}}
		for _, c := range items {
			grade, supervisor := "", ""
			if c.Grade != nil {
				grade = fmt.Sprint(c.Grade.Level)
			}
			if c.Supervisor != nil {
				supervisor = fullName(c.Supervisor.Name, c.Supervisor.Surname)
			}
			sh.rows = append(sh.rows, []interface{}{c.Name, c.Capacity, grade, supervisor})
		}
		return sh, nil

	case listquery.EntityLessons:
		items, err := s.repo.Lesson.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "课程", header: []string{"名称", "星期", "时间", "科目", "班级", "教师"}}
		for _, l := range items {
			sh.rows = append(sh.rows, []interface{}{
				l.Name, l.Day, l.StartTime.Format(clockLayout) + "-" + l.EndTime.Format(clockLayout),
				lessonSubject(&l), lessonClass(&l), lessonTeacher(&l),
			})
		}
		return sh, nil

	case listquery.EntityExams:
		items, err := s.repo.Exam.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "考试", header: []string{"标题", "科目", "班级", "教师", "开始", "结束"}}
		for _, e := range items {
			sh.rows = append(sh.rows, []interface{}{
				e.Title, lessonSubject(e.Lesson), lessonClass(e.Lesson), lessonTeacher(e.Lesson),
				e.StartTime.Format(dateTimeLayout), e.EndTime.Format(dateTimeLayout),
			})
		}
		return sh, nil

	case listquery.EntityAssignments:
		items, err := s.repo.Assignment.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "作业", header: []string{"标题", "科目", "班级", "教师", "布置日期", "截止日期"}}
		for _, a := range items {
			sh.rows = append(sh.rows, []interface{}{
				a.Title, lessonSubject(a.Lesson), lessonClass(a.Lesson), lessonTeacher(a.Lesson),
				a.StartDate.Format(dateLayout), a.DueDate.Format(dateLayout),
			})
		}
		return sh, nil

	case listquery.EntityEvents:
		items, err := s.repo.Event.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "活动", header: []string{"标题", "班级", "开始", "结束", "描述"}}
		for _, e := range items {
			sh.rows = append(sh.rows, []interface{}{
				e.Title, optionalClass(e.Class), e.StartTime.Format(dateTimeLayout),
				e.EndTime.Format(dateTimeLayout), e.Description,
			})
		}
		return sh, nil

	case listquery.EntityAnnouncements:
		items, err := s.repo.Announcement.ListAll(ctx, f, s.limit)
		if err != nil {
			return nil, err
		}
		sh := &sheet{title: "公告", header: []string{"标题", "班级", "日期", "内容"}}
		for _, a := range items {
			sh.rows = append(sh.rows, []interface{}{
				a.Title, optionalClass(a.Class), a.Date.Format(dateLayout), a.Description,
			})
		}
		return sh, nil
	}
	return nil, ErrUnknownExport
}

// writeSheet 第一行为加粗表头，其后每条记录一行
func writeSheet(sh *sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sh.title)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(sh.header))
	for i, h := range sh.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.title, "A1", &header); err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(sh.header))
	if err := f.SetCellStyle(sh.title, "A1", last+"1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sh.title, "A", last, 18); err != nil {
		return nil, err
	}

	for i, row := range sh.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(sh.title, cell, &r); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 辅助函数 ──

func fullName(name, surname string) string {
	return strings.TrimSpace(name + " " + surname)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func subjectNames(subjects []model.Subject) string {
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	return strings.Join(names, "、")
}

func classNames(classes []model.Class) string {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	return strings.Join(names, "、")
}

func optionalClass(c *model.Class) string {
	if c == nil {
		return "全校"
	}
	return c.Name
}

func lessonSubject(l *model.Lesson) string {
	if l == nil || l.Subject == nil {
		return ""
	}
	return l.Subject.Name
}

func lessonClass(l *model.Lesson) string {
	if l == nil || l.Class == nil {
		return ""
	}
	return l.Class.Name
}

func lessonTeacher(l *model.Lesson) string {
	if l == nil || l.Teacher == nil {
		return ""
	}
	return fullName(l.Teacher.Name, l.Teacher.Surname)
}
