// Package attendance exposes the clock-in/break/clock-out API. Validation
// of transitions lives in core.AttendanceService; handlers only bind input
// and map errors to status codes.
package attendance

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interntrack.com/interntrack/core"
	"interntrack.com/interntrack/web/common"
	"interntrack.com/interntrack/web/middlewares"
)

type Endpoint struct {
	svc *core.AttendanceService
}

func Register(r *gin.RouterGroup, svc *core.AttendanceService) {
	endpoint := &Endpoint{svc: svc}
	r.POST("/clock-in", endpoint.ClockIn)
	r.POST("/clock-out", endpoint.ClockOut)
	r.GET("/today", endpoint.Today)
	r.POST("/start-break", endpoint.StartBreak)
	r.POST("/end-break", endpoint.EndBreak)
	r.GET("/break-status", endpoint.BreakStatus)
	r.GET("/me", endpoint.History)
}

type ClockInDTO struct {
	Date        string `json:"date" binding:"required"`
	ClockInTime string `json:"clockInTime" binding:"required"`
}

func (ep *Endpoint) ClockIn(c *gin.Context) {
	var dto ClockInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user := middlewares.CurrentUser(c)
	rec, err := ep.svc.ClockIn(c.Request.Context(), user.ID, dto.Date, dto.ClockInTime)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{"attendance": rec}))
}

type ClockOutDTO struct {
	ClockOutTime string `json:"clockOutTime" binding:"required"`
}

func (ep *Endpoint) ClockOut(c *gin.Context) {
	var dto ClockOutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user := middlewares.CurrentUser(c)
	rec, err := ep.svc.ClockOut(c.Request.Context(), user.ID, dto.ClockOutTime)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"attendance": rec}))
}

func (ep *Endpoint) Today(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	rec, err := ep.svc.Today(c.Request.Context(), user.ID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"attendance": rec}))
}

func (ep *Endpoint) StartBreak(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	rec, err := ep.svc.StartBreak(c.Request.Context(), user.ID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"attendance": rec}))
}

func (ep *Endpoint) EndBreak(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	rec, duration, err := ep.svc.EndBreak(c.Request.Context(), user.ID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"attendance":    rec,
		"breakDuration": duration,
	}))
}

func (ep *Endpoint) BreakStatus(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	status, err := ep.svc.GetBreakStatus(c.Request.Context(), user.ID)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(status))
}

func (ep *Endpoint) History(c *gin.Context) {
	limit := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}

	user := middlewares.CurrentUser(c)
	records, err := ep.svc.History(c.Request.Context(), user.ID, limit)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"attendance": records}))
}
