package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"school-hub/backend/config"
	"school-hub/backend/internal/api/handler"
	"school-hub/backend/internal/api/middleware"
	"school-hub/backend/internal/listquery"
	"school-hub/backend/pkg/jwt"
	"school-hub/backend/pkg/redis"
)

const (
	admin   = listquery.RoleAdmin
	teacher = listquery.RoleTeacher
	parent  = listquery.RoleParent
)

// Setup 初始化并返回 Gin 路由引擎
// reg 为 nil 时指标注册到 prometheus 默认注册表
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, reg *prometheus.Registry, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if reg != nil {
		registerer, gatherer = reg, reg
	}
	metrics := middleware.NewMetrics(registerer)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Logger(logger))
	r.Use(metrics.Handler())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 & 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(rdb, "login", cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, logger),
				h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 列表页与导出（可见范围由角色决定）
			authorized.GET("/list/:entity", h.List.List)
			authorized.GET("/export/:entity", h.Export.Export)

			// 表单关联数据
			authorized.GET("/forms/:table/related", middleware.RoleAuth(admin, teacher), h.Form.Related)

			// 人员模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("/:id", h.People.GetTeacher)
				teachers.POST("", middleware.RoleAuth(admin), h.People.CreateTeacher)
				teachers.PUT("/:id", middleware.RoleAuth(admin), h.People.UpdateTeacher)
				teachers.DELETE("/:id", middleware.RoleAuth(admin), h.People.DeleteTeacher)
			}
			students := authorized.Group("/students")
			{
				students.GET("/:id", middleware.RoleAuth(admin, teacher), h.People.GetStudent)
				students.POST("", middleware.RoleAuth(admin), h.People.CreateStudent)
				students.PUT("/:id", middleware.RoleAuth(admin), h.People.UpdateStudent)
				students.DELETE("/:id", middleware.RoleAuth(admin), h.People.DeleteStudent)
			}
			parents := authorized.Group("/parents")
			{
				parents.GET("/:id", middleware.RoleAuth(admin, teacher), h.People.GetParent)
				parents.POST("", middleware.RoleAuth(admin), h.People.CreateParent)
				parents.PUT("/:id", middleware.RoleAuth(admin), h.People.UpdateParent)
				parents.DELETE("/:id", middleware.RoleAuth(admin), h.People.DeleteParent)
			}

			// 教学模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("/:id", h.Academic.GetSubject)
				subjects.POST("", middleware.RoleAuth(admin), h.Academic.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth(admin), h.Academic.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth(admin), h.Academic.DeleteSubject)
			}
			classes := authorized.Group("/classes")
			{
				classes.GET("/:id", h.Academic.GetClass)
				classes.POST("", middleware.RoleAuth(admin), h.Academic.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth(admin), h.Academic.UpdateClass)
				classes.DELETE("/:id", middleware.RoleAuth(admin), h.Academic.DeleteClass)
			}
			lessons := authorized.Group("/lessons")
			{
				lessons.GET("/:id", h.Academic.GetLesson)
				lessons.POST("", middleware.RoleAuth(admin), h.Academic.CreateLesson)
				lessons.PUT("/:id", middleware.RoleAuth(admin), h.Academic.UpdateLesson)
				lessons.DELETE("/:id", middleware.RoleAuth(admin), h.Academic.DeleteLesson)
			}

			// 考试与作业（教师限本人任教课程，Service 层鉴权）
			exams := authorized.Group("/exams", middleware.RoleAuth(admin, teacher))
			{
				exams.POST("", h.Assessment.CreateExam)
				exams.PUT("/:id", h.Assessment.UpdateExam)
				exams.DELETE("/:id", h.Assessment.DeleteExam)
			}
			assignments := authorized.Group("/assignments", middleware.RoleAuth(admin, teacher))
			{
				assignments.POST("", h.Assessment.CreateAssignment)
				assignments.PUT("/:id", h.Assessment.UpdateAssignment)
				assignments.DELETE("/:id", h.Assessment.DeleteAssignment)
			}

			// 活动与公告
			events := authorized.Group("/events", middleware.RoleAuth(admin))
			{
				events.POST("", h.Bulletin.CreateEvent)
				events.PUT("/:id", h.Bulletin.UpdateEvent)
				events.DELETE("/:id", h.Bulletin.DeleteEvent)
			}
			announcements := authorized.Group("/announcements", middleware.RoleAuth(admin))
			{
				announcements.POST("", h.Bulletin.CreateAnnouncement)
				announcements.PUT("/:id", h.Bulletin.UpdateAnnouncement)
				announcements.DELETE("/:id", h.Bulletin.DeleteAnnouncement)
			}

			// 日历
			cal := authorized.Group("/calendar")
			{
				cal.GET("/lessons", h.Calendar.WeekLessons)
				cal.GET("/lessons.ics", h.Calendar.WeekICS)
				cal.GET("/children", middleware.RoleAuth(parent), h.Calendar.Children)
				cal.GET("/events", h.Calendar.EventsOn)
			}

			// 首页统计
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/counts", middleware.RoleAuth(admin), h.Dashboard.Counts)
				dashboard.GET("/students-by-sex", middleware.RoleAuth(admin), h.Dashboard.StudentsBySex)
				dashboard.GET("/attendance", middleware.RoleAuth(admin), h.Dashboard.Attendance)
				dashboard.GET("/announcements", h.Dashboard.LatestAnnouncements)
			}
		}
	}

	return r
}
