// Package web assembles the InternTrack HTTP API.
package web

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"interntrack.com/interntrack/core"
	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/infrastructure/filesystem"
	"interntrack.com/interntrack/web/handlers/admin"
	"interntrack.com/interntrack/web/handlers/attendance"
	"interntrack.com/interntrack/web/handlers/auth"
	"interntrack.com/interntrack/web/handlers/reports"
	"interntrack.com/interntrack/web/handlers/screenshots"
	"interntrack.com/interntrack/web/middlewares"
)

type Deps struct {
	Store      store.Store
	Attendance *core.AttendanceService
	Reports    *core.ReportService
	Storage    filesystem.Storage

	JWTSecret   []byte
	TokenTTL    time.Duration
	CORSOrigins []string
}

// NewRouter wires middlewares and all handler groups into a gin engine.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if len(deps.CORSOrigins) == 1 && deps.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	authenticated := middlewares.Authentication(deps.JWTSecret, deps.Store.Users())

	api := r.Group("/api")

	authPublic := api.Group("/auth")
	authProtected := api.Group("/auth")
	authProtected.Use(authenticated)
	auth.Register(authPublic, authProtected, deps.Store.Users(), deps.JWTSecret, deps.TokenTTL)

	attendanceGroup := api.Group("/attendance")
	attendanceGroup.Use(authenticated)
	attendance.Register(attendanceGroup, deps.Attendance)

	reportGroup := api.Group("/reports")
	reportGroup.Use(authenticated)
	reports.Register(reportGroup, deps.Reports)

	adminGroup := api.Group("/admin")
	adminGroup.Use(authenticated, middlewares.RequireRole(model.RoleAdmin))
	admin.Register(adminGroup, deps.Store.Users(), deps.Store.Attendance(), deps.Attendance, deps.Reports)

	screenshotGroup := api.Group("/screenshots")
	screenshotGroup.Use(authenticated)
	screenshots.Register(screenshotGroup, deps.Store.Screenshots(), deps.Storage)

	return r
}
