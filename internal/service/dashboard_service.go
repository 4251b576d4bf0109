package service

import (
	"context"

	"go.uber.org/zap"

	"school-hub/backend/internal/calendar"
	"school-hub/backend/internal/dto"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/model"
	"school-hub/backend/internal/repository"
)

// latestAnnouncementCount 仪表盘展示的公告条数
const latestAnnouncementCount = 3

// attendanceDays 出勤图表展示的工作日，顺序即输出顺序
var attendanceDays = []struct {
	label  string
	offset int
}{
	{"Mon", 0}, {"Tue", 1}, {"Wed", 2}, {"Thu", 3}, {"Fri", 4},
}

// DashboardService 仪表盘聚合数据
type DashboardService interface {
	Counts(ctx context.Context) (*dto.CountsResponse, error)
	StudentsBySex(ctx context.Context) (*dto.SexCountResponse, error)
	// Attendance 本周一零点起每个工作日的出勤 / 缺勤次数
	Attendance(ctx context.Context) ([]dto.AttendanceDay, error)
	// LatestAnnouncements 调用方可见的最新公告
	LatestAnnouncements(ctx context.Context, actor Actor) ([]model.Announcement, error)
}

type dashboardService struct {
	repo    *repository.Repository
	builder *listquery.Builder
	clock   calendar.Clock
	logger  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, builder *listquery.Builder, clock calendar.Clock, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, builder: builder, clock: clock, logger: logger}
}

func (s *dashboardService) Counts(ctx context.Context) (*dto.CountsResponse, error) {
	var (
		resp dto.CountsResponse
		err  error
	)
	if resp.Admins, err = s.repo.Admin.Count(ctx); err != nil {
		return nil, s.fail("统计管理员数量失败", err)
	}
	if resp.Teachers, err = s.repo.Teacher.Count(ctx); err != nil {
		return nil, s.fail("统计教师数量失败", err)
	}
	if resp.Students, err = s.repo.Student.Count(ctx); err != nil {
		return nil, s.fail("统计学生数量失败", err)
	}
	if resp.Parents, err = s.repo.Parent.Count(ctx); err != nil {
		return nil, s.fail("统计家长数量失败", err)
	}
	return &resp, nil
}

func (s *dashboardService) StudentsBySex(ctx context.Context) (*dto.SexCountResponse, error) {
	counts, err := s.repo.Student.CountBySex(ctx)
	if err != nil {
		return nil, s.fail("统计学生性别失败", err)
	}
	return &dto.SexCountResponse{
		Boys:  counts[model.SexMale],
		Girls: counts[model.SexFemale],
	}, nil
}

func (s *dashboardService) Attendance(ctx context.Context) ([]dto.AttendanceDay, error) {
	now := s.clock.Now()
	monday := calendar.StartOfWeek(now)

	records, err := s.repo.Attendance.ListSince(ctx, monday)
	if err != nil {
		return nil, s.fail("查询出勤记录失败", err)
	}

	present := make(map[int]int, len(attendanceDays))
	absent := make(map[int]int, len(attendanceDays))
	for _, r := range records {
		offset := calendar.DaysFromMonday(r.Date.In(now.Location()).Weekday())
		if r.Present {
			present[offset]++
		} else {
			absent[offset]++
		}
	}

	days := make([]dto.AttendanceDay, 0, len(attendanceDays))
	for _, d := range attendanceDays {
		days = append(days, dto.AttendanceDay{Day: d.label, Present: present[d.offset], Absent: absent[d.offset]})
	}
	return days, nil
}

func (s *dashboardService) LatestAnnouncements(ctx context.Context, actor Actor) ([]model.Announcement, error) {
	f, _, err := s.builder.Build(listquery.EntityAnnouncements, listquery.Params{}, actor.Role, actor.ID)
	if err != nil {
		return nil, mapBuildError(err)
	}
	items, err := s.repo.Announcement.ListAll(ctx, f, latestAnnouncementCount)
	if err != nil {
		return nil, s.fail("查询最新公告失败", err)
	}
	if items == nil {
		items = []model.Announcement{}
	}
	return items, nil
}

func (s *dashboardService) fail(msg string, err error) error {
	s.logger.Error(msg, zap.Error(err))
	return err
}
