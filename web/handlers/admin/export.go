package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"interntrack.com/interntrack/core/store"
	"interntrack.com/interntrack/web/common"
)

var exportHeader = []string{"Date", "User ID", "Status", "Clock In", "Clock Out", "Break Minutes", "Total Hours"}

// ExportAttendance streams an XLSX workbook with one row per attendance
// record in the requested date range.
func (ep *Endpoint) ExportAttendance(c *gin.Context) {
	filter := store.AttendanceFilter{
		UserID:   c.Query("userId"),
		FromDate: c.Query("from"),
		ToDate:   c.Query("to"),
	}
	records, err := ep.records.FindAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)
	for i, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, rec := range records {
		clockOut := ""
		if rec.ClockOutTime != nil {
			clockOut = *rec.ClockOutTime
		}
		totalHours := ""
		if rec.TotalHours != nil {
			totalHours = fmt.Sprintf("%.2f", *rec.TotalHours)
		}
		values := []interface{}{rec.Date, rec.UserID, string(rec.Status), rec.ClockInTime, clockOut, rec.TotalBreakMinutes, totalHours}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
	}
}
