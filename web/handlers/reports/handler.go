// Package reports exposes daily work report submission and review.
package reports

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interntrack.com/interntrack/core"
	"interntrack.com/interntrack/core/model"
	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/web/common"
	"interntrack.com/interntrack/web/middlewares"
)

type Endpoint struct {
	svc *core.ReportService
}

func Register(r *gin.RouterGroup, svc *core.ReportService) {
	endpoint := &Endpoint{svc: svc}
	r.POST("", endpoint.Submit)
	r.GET("/me", endpoint.Mine)
	r.GET("/:id", endpoint.Get)
	r.PUT("/:id", endpoint.Update)
	r.PUT("/:id/review", middlewares.RequireRole(model.RoleAdmin), endpoint.Review)
	r.GET("", middlewares.RequireRole(model.RoleAdmin), endpoint.List)
}

type SubmitDTO struct {
	Date            string   `json:"date" binding:"required"`
	TaskTitle       string   `json:"taskTitle" binding:"required,max=200"`
	TaskDescription string   `json:"taskDescription" binding:"required"`
	ToolsUsed       []string `json:"toolsUsed"`
	TimeSpent       string   `json:"timeSpent"`
}

func (ep *Endpoint) Submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user := middlewares.CurrentUser(c)
	report, err := ep.svc.Submit(c.Request.Context(), user.ID, core.SubmitReportInput{
		Date:            dto.Date,
		TaskTitle:       dto.TaskTitle,
		TaskDescription: dto.TaskDescription,
		ToolsUsed:       dto.ToolsUsed,
		TimeSpent:       dto.TimeSpent,
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, common.NewSuccessResponse(gin.H{"report": report}))
}

func (ep *Endpoint) Mine(c *gin.Context) {
	limit := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}

	user := middlewares.CurrentUser(c)
	list, err := ep.svc.Mine(c.Request.Context(), user.ID, limit)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"reports": list}))
}

func (ep *Endpoint) Get(c *gin.Context) {
	report, err := ep.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	if !middlewares.IsSelfOrAdmin(c, report.UserID) {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("insufficient permissions"))
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"report": report}))
}

type UpdateDTO struct {
	TaskTitle       *string  `json:"taskTitle,omitempty" binding:"omitempty,max=200"`
	TaskDescription *string  `json:"taskDescription,omitempty"`
	ToolsUsed       []string `json:"toolsUsed,omitempty"`
	TimeSpent       *string  `json:"timeSpent,omitempty"`
}

func (ep *Endpoint) Update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	user := middlewares.CurrentUser(c)
	report, err := ep.svc.Update(c.Request.Context(), user.ID, c.Param("id"), core.UpdateReportInput{
		TaskTitle:       dto.TaskTitle,
		TaskDescription: dto.TaskDescription,
		ToolsUsed:       dto.ToolsUsed,
		TimeSpent:       dto.TimeSpent,
	})
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"report": report}))
}

type ReviewDTO struct {
	Status   string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Comments string `json:"comments"`
}

func (ep *Endpoint) Review(c *gin.Context) {
	var dto ReviewDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	reviewer := middlewares.CurrentUser(c)
	report, err := ep.svc.Review(c.Request.Context(), reviewer.ID, c.Param("id"), model.ReportStatus(dto.Status), dto.Comments)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"report": report}))
}

func (ep *Endpoint) List(c *gin.Context) {
	filter := store.ReportFilter{
		UserID:   c.Query("userId"),
		Date:     c.Query("date"),
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
		Status:   model.ReportStatus(c.Query("status")),
	}
	list, err := ep.svc.List(c.Request.Context(), filter)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"reports": list}))
}
