package calendar

import (
	"time"

	"go.uber.org/zap"
)

// LessonSlot 每周重复的课程时段，仅 Start/End 的星期与时刻有意义
// 零值字段表示缺失
type LessonSlot struct {
	Title string
	Start time.Time
	End   time.Time
}

// ProjectedEvent 投影到本周后的日历事件
type ProjectedEvent struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Projector 将课程时段重新定位到当前周（周一至周日）
type Projector struct {
	clock  Clock
	logger *zap.Logger
}

func NewProjector(clock Clock, logger *zap.Logger) *Projector {
	return &Projector{clock: clock, logger: logger}
}

// Project 每次调用只读取一次当前时间；缺字段的时段记录日志后跳过，
// 结束时间固定落在投影后的开始日期上，跨日时段会被截断到同一天
func (p *Projector) Project(slots []LessonSlot) []ProjectedEvent {
	if len(slots) == 0 {
		p.logger.Warn("没有可投影的课程时段")
		return []ProjectedEvent{}
	}

	now := p.clock.Now()
	loc := now.Location()
	monday := StartOfWeek(now)

	events := make([]ProjectedEvent, 0, len(slots))
	for i, s := range slots {
		if reason := missingField(s); reason != "" {
			p.logger.Warn("跳过不完整的课程时段",
				zap.Int("index", i),
				zap.String("missing", reason),
				zap.String("title", s.Title),
			)
			continue
		}

		start := s.Start.In(loc)
		end := s.End.In(loc)
		y, m, d := monday.AddDate(0, 0, DaysFromMonday(start.Weekday())).Date()

		events = append(events, ProjectedEvent{
			Title: s.Title,
			Start: time.Date(y, m, d, start.Hour(), start.Minute(), start.Second(), 0, loc),
			End:   time.Date(y, m, d, end.Hour(), end.Minute(), end.Second(), 0, loc),
		})
	}
	return events
}

func missingField(s LessonSlot) string {
	switch {
	case s.Title == "":
		return "title"
	case s.Start.IsZero():
		return "start"
	case s.End.IsZero():
		return "end"
	}
	return ""
}
