package calendar

import "time"

// Clock 提供"当前时间"，其时区即日历的本地时区
type Clock interface {
	Now() time.Time
}

// SystemClock 读取系统时间并转换到指定时区，Location 为空时使用 time.Local
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock 固定时间，测试用
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// DaysFromMonday 距本周一的天数：周一 0 … 周六 5，周日 6
func DaysFromMonday(wd time.Weekday) int {
	switch wd {
	case time.Sunday:
		return 6
	case time.Saturday:
		return 5
	default:
		return int(wd) - 1
	}
}

// StartOfWeek now 所在周的周一 00:00:00，时区与 now 相同
func StartOfWeek(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-DaysFromMonday(now.Weekday()), 0, 0, 0, 0, now.Location())
}

// EndOfDay 当天 23:59:59.999
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfDay 当天 00:00
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
