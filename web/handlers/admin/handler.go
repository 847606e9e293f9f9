// Package admin exposes the administrative views: intern management,
// attendance overviews, aggregate stats and spreadsheet export.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interntrack.com/interntrack/core"
	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/web/common"
)

type Endpoint struct {
	users      store.UserStore
	records    store.AttendanceStore
	attendance *core.AttendanceService
	reports    *core.ReportService
}

func Register(r *gin.RouterGroup, users store.UserStore, records store.AttendanceStore, attendance *core.AttendanceService, reports *core.ReportService) {
	endpoint := &Endpoint{users: users, records: records, attendance: attendance, reports: reports}
	r.GET("/interns", endpoint.ListInterns)
	r.PUT("/interns/:id/active", endpoint.SetActive)
	r.GET("/attendance", endpoint.ListAttendance)
	r.GET("/stats", endpoint.Stats)
	r.GET("/export/attendance", endpoint.ExportAttendance)
}

func (ep *Endpoint) ListInterns(c *gin.Context) {
	interns, err := ep.users.FindAll(c.Request.Context(), store.UserFilter{Role: model.RoleIntern})
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"interns": interns}))
}

type SetActiveDTO struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (ep *Endpoint) SetActive(c *gin.Context) {
	var dto SetActiveDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	ctx := c.Request.Context()
	user, err := ep.users.FindByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("user not found"))
		return
	}
	user.IsActive = *dto.IsActive
	if err := ep.users.Update(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"user": user}))
}

func (ep *Endpoint) ListAttendance(c *gin.Context) {
	filter := store.AttendanceFilter{
		UserID:   c.Query("userId"),
		Date:     c.Query("date"),
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
		Status:   model.AttendanceStatus(c.Query("status")),
	}
	records, err := ep.records.FindAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"attendance": records}))
}

func (ep *Endpoint) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Query("userId")

	attendanceStats, err := ep.attendance.Stats(ctx, userID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	reportStats, err := ep.reports.Stats(ctx, userID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"attendance": attendanceStats,
		"reports":    reportStats,
	}))
}
