// Package router wires the HTTP routes, middleware and role guards.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scholaria/backend/config"
	"scholaria/backend/internal/api/handler"
	"scholaria/backend/internal/api/middleware"
	"scholaria/backend/internal/model"
	"scholaria/backend/pkg/jwt"
	"scholaria/backend/pkg/redis"
)

// Setup builds the Gin engine with all routes registered.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, rdb))

	admin := middleware.RoleAuth(model.RoleAdministrative)
	staff := middleware.RoleAuth(model.RoleAdministrative, model.RoleDirector)
	director := middleware.RoleAuth(model.RoleDirector)
	professor := middleware.RoleAuth(model.RoleProfessor)
	student := middleware.RoleAuth(model.RoleStudent)
	schedulers := middleware.RoleAuth(
		model.RoleProfessor, model.RoleAdministrative, model.RoleDirector)
	anyReader := middleware.RoleAuth(
		model.RoleStudent, model.RoleProfessor, model.RoleAdministrative, model.RoleDirector)

	{
		// weekly timetable
		v1.POST("/add_session", admin, h.Session.Add)
		v1.DELETE("/delete_session/:session_id", staff, h.Session.Delete)
		v1.GET("/fetch_sessions/:class_id", schedulers, h.Session.ListByClass)
		v1.GET("/fetch_sessions_for_professor", professor, h.Session.ListMine)
		v1.GET("/fetch_sessions_by_department/:department_id", staff, h.Session.ListByDepartment)
		v1.GET("/fetch_single_session/:session_id", anyReader, h.Session.Get)
		v1.GET("/schedule/week/:class_id", anyReader, h.Session.WeekGrid)

		// makeup sessions
		v1.POST("/add_ratrappage", professor, h.Ratrapage.Add)
		v1.PUT("/update_ratrapage/:id", professor, h.Ratrapage.Update)
		v1.DELETE("/delete_ratrapage/:id", professor, h.Ratrapage.Delete)
		v1.GET("/fetch_ratrapages/:class_id", anyReader, h.Ratrapage.ListByClass)
		v1.GET("/fetch_ratrapages_for_professor", professor, h.Ratrapage.ListMine)

		// attendance
		v1.POST("/assign_absence", professor, h.Absence.Assign)
		v1.POST("/roll_call", professor, h.Absence.RollCall)
		v1.GET("/absences/session/:session_id", schedulers, h.Absence.SessionSummary)
		v1.GET("/absences/status/:session_id", student, h.Absence.MyStatus)
		v1.GET("/student_absence_history/:session_id", student, h.Absence.MyHistory)

		// absence revocation
		v1.POST("/demand_absence", student, h.Demande.Open)
		v1.GET("/my_requests", student, h.Demande.ListMine)
		v1.GET("/fetch_requests", director, h.Demande.List)
		v1.POST("/accept_absence/:id", director, h.Demande.Approve)
		v1.POST("/reject_absence/:id", director, h.Demande.Reject)

		// statistics
		v1.GET("/stats/class/:id", staff, h.Stats.Class)
		v1.GET("/stats/department/:id", staff, h.Stats.Department)

		// exports
		v1.GET("/export/schedule/:id", staff, h.Export.ScheduleXLSX)
		v1.GET("/export/calendar/:id", anyReader, h.Export.ScheduleICS)

		// lookup lists
		v1.GET("/fetch_professors", admin, h.Catalog.Professors)
		v1.GET("/fetch_rooms/:id", admin, h.Catalog.Rooms)
		v1.GET("/fetch_classes/:id", admin, h.Catalog.Classes)
		v1.GET("/fetch_subject/:id", admin, h.Catalog.Subjects)
	}

	return r
}
