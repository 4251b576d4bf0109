package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"school-hub/backend/internal/calendar"
	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
)

// 课表查询对象
const (
	ScheduleByTeacher = "teacherId"
	ScheduleByClass   = "classId"
)

// ErrInvalidScheduleTarget 课表查询对象类型或 ID 非法
var ErrInvalidScheduleTarget = errors.New("课表查询对象无效")

const icsProductID = "-//school-hub//lesson calendar//ZH"

// CalendarService 日历数据：本周课表、家长视角课表、按日活动
type CalendarService interface {
	// WeekLessons 返回教师或班级的课程投影到本周后的事件
	WeekLessons(ctx context.Context, actor Actor, kind, id string) ([]calendar.ProjectedEvent, error)
	// WeekICS 同 WeekLessons，输出 iCalendar 文本
	WeekICS(ctx context.Context, actor Actor, kind, id string) (string, error)
	// Children 家长的每个孩子及其班级本周课表
	Children(ctx context.Context, actor Actor) ([]dto.ChildSchedule, error)
	// EventsOn 指定日期（yyyy-MM-dd）的活动，按开始时间升序；日期缺失或非法时取今天
	EventsOn(ctx context.Context, actor Actor, date string) ([]model.Event, error)
}

type calendarService struct {
	repo      *repository.Repository
	builder   *listquery.Builder
	clock     calendar.Clock
	projector *calendar.Projector
	logger    *zap.Logger
}

func NewCalendarService(repo *repository.Repository, builder *listquery.Builder, clock calendar.Clock, logger *zap.Logger) CalendarService {
	return &calendarService{
		repo:      repo,
		builder:   builder,
		clock:     clock,
		projector: calendar.NewProjector(clock, logger),
		logger:    logger,
	}
}

func (s *calendarService) WeekLessons(ctx context.Context, actor Actor, kind, id string) ([]calendar.ProjectedEvent, error) {
	lessons, err := s.lessonsFor(ctx, actor, kind, id)
	if err != nil {
		return nil, err
	}
	return s.projector.Project(toSlots(lessons)), nil
}

func (s *calendarService) WeekICS(ctx context.Context, actor Actor, kind, id string) (string, error) {
	events, err := s.WeekLessons(ctx, actor, kind, id)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRCalName("本周课表")

	stamp := s.clock.Now()
	for i, e := range events {
		ev := cal.AddEvent(fmt.Sprintf("%s-%s-%d-%d@school-hub", kind, id, e.Start.Unix(), i))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(e.Start)
		ev.SetEndAt(e.End)
		ev.SetSummary(e.Title)
	}
	return cal.Serialize(), nil
}

func (s *calendarService) Children(ctx context.Context, actor Actor) ([]dto.ChildSchedule, error) {
	if actor.Role != listquery.RoleParent {
		return nil, ErrForbidden
	}
	children, err := s.repo.Student.ListByParent(ctx, actor.ID)
	if err != nil {
		s.logger.Error("查询孩子列表失败", zap.String("parent_id", actor.ID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ChildSchedule, 0, len(children))
	for _, child := range children {
		lessons, err := s.repo.Lesson.ListByClass(ctx, child.ClassID)
		if err != nil {
			s.logger.Error("查询班级课程失败", zap.Int("class_id", child.ClassID), zap.Error(err))
			return nil, err
		}
		item := dto.ChildSchedule{
			StudentID: child.ID,
			Name:      child.Name,
			Surname:   child.Surname,
			ClassID:   child.ClassID,
			Events:    s.projector.Project(toSlots(lessons)),
		}
		if child.Class != nil {
			item.ClassName = child.Class.Name
		}
		result = append(result, item)
	}
	return result, nil
}

func (s *calendarService) EventsOn(ctx context.Context, actor Actor, date string) ([]model.Event, error) {
	now := s.clock.Now()
	day := now
	if d, err := time.ParseInLocation("2006-01-02", date, now.Location()); err == nil {
		day = d
	}

	f, _, err := s.builder.Build(listquery.EntityEvents, listquery.Params{}, actor.Role, actor.ID)
	if err != nil {
		return nil, mapBuildError(err)
	}
	events, err := s.repo.Event.ListBetween(ctx, f, calendar.StartOfDay(day), calendar.EndOfDay(day))
	if err != nil {
		s.logger.Error("查询当日活动失败", zap.Time("day", day), zap.Error(err))
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// lessonsFor 校验调用方能否查看目标课表并取出课程
//
//	管理员：任意教师或班级
//	教师：本人课表，或自己任教的班级
//	学生：本人所在班级
//	家长：孩子所在班级
func (s *calendarService) lessonsFor(ctx context.Context, actor Actor, kind, id string) ([]model.Lesson, error) {
	switch kind {
	case ScheduleByTeacher:
		if id == "" {
			return nil, ErrInvalidScheduleTarget
		}
		if !actor.IsAdmin() && !(actor.Role == listquery.RoleTeacher && actor.ID == id) {
			return nil, ErrForbidden
		}
		return s.repo.Lesson.ListByTeacher(ctx, id)

	case ScheduleByClass:
		classID, err := strconv.Atoi(id)
		if err != nil || classID < 1 {
			return nil, ErrInvalidScheduleTarget
		}
		ok, err := s.canViewClass(ctx, actor, classID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrForbidden
		}
		return s.repo.Lesson.ListByClass(ctx, classID)
	}
	return nil, ErrInvalidScheduleTarget
}

func (s *calendarService) canViewClass(ctx context.Context, actor Actor, classID int) (bool, error) {
	switch actor.Role {
	case listquery.RoleAdmin:
		return true, nil
	case listquery.RoleTeacher:
		lessons, err := s.repo.Lesson.ListByTeacher(ctx, actor.ID)
		if err != nil {
			return false, err
		}
		for _, l := range lessons {
			if l.ClassID == classID {
				return true, nil
			}
		}
	case listquery.RoleStudent:
		student, err := s.repo.Student.GetByID(ctx, actor.ID)
		if err != nil {
			return false, notFound(err, ErrForbidden)
		}
		return student.ClassID == classID, nil
	case listquery.RoleParent:
		children, err := s.repo.Student.ListByParent(ctx, actor.ID)
		if err != nil {
			return false, err
		}
		for _, c := range children {
			if c.ClassID == classID {
				return true, nil
			}
		}
	}
	return false, nil
}

func toSlots(lessons []model.Lesson) []calendar.LessonSlot {
	slots := make([]calendar.LessonSlot, 0, len(lessons))
	for _, l := range lessons {
		slots = append(slots, calendar.LessonSlot{Title: l.Name, Start: l.StartTime, End: l.EndTime})
	}
	return slots
}
