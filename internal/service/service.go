package service

import (
	"go.uber.org/zap"

	"school-hub/backend/config"
	"school-hub/backend/internal/calendar"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/internal/repository"
	"school-hub/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	List       ListService
	People     PeopleService
	Academic   AcademicService
	Assessment AssessmentService
	Bulletin   BulletinService
	Calendar   CalendarService
	Dashboard  DashboardService
	Export     ExportService
	Form       FormService
}

// NewService 创建 Service 聚合；blacklist 可为 nil
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	builder *listquery.Builder,
	clock calendar.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, jwtMgr, blacklist, logger),
		List:       NewListService(repo, builder, logger),
		People:     NewPeopleService(repo, logger),
		Academic:   NewAcademicService(repo, logger),
		Assessment: NewAssessmentService(repo, logger),
		Bulletin:   NewBulletinService(repo, logger),
		Calendar:   NewCalendarService(repo, builder, clock, logger),
		Dashboard:  NewDashboardService(repo, builder, clock, logger),
		Export:     NewExportService(repo, builder, clock, cfg.Pagination.ExportLimit, logger),
		Form:       NewFormService(repo, logger),
	}
}
