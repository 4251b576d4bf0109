package handler

import "school-hub/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	List       *ListHandler
	People     *PeopleHandler
	Academic   *AcademicHandler
	Assessment *AssessmentHandler
	Bulletin   *BulletinHandler
	Calendar   *CalendarHandler
	Dashboard  *DashboardHandler
	Export     *ExportHandler
	Form       *FormHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		List:       NewListHandler(svc.List),
		People:     NewPeopleHandler(svc.People),
		Academic:   NewAcademicHandler(svc.Academic),
		Assessment: NewAssessmentHandler(svc.Assessment),
		Bulletin:   NewBulletinHandler(svc.Bulletin),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Export:     NewExportHandler(svc.Export),
		Form:       NewFormHandler(svc.Form),
	}
}
