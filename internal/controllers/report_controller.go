package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sla-mart/internal/dto"
	"sla-mart/internal/services"
	"sla-mart/pkg/utils"
)

type ReportController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewReportController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{dashboardService: dashboardService, logger: logger}
}

// GetReport выгружает витрину с учетом фильтров выборки.
// format=xlsx отдает Excel-файл, иначе JSON.
func (c *ReportController) GetReport(ctx echo.Context) error {
	filter := parseReportFilter(ctx)
	format := strings.ToLower(ctx.QueryParam("format"))
	c.logger.Debug("Запрос на выгрузку отчета", zap.Any("filters", filter), zap.String("format", format))

	rows, summary, err := c.dashboardService.GetReportRows(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows, summary)
	}

	return utils.SuccessResponse(ctx, rows, "Отчет успешно сформирован", http.StatusOK, uint64(len(rows)))
}

var reportHeaders = []string{
	"ID клиента", "Статус", "Канал обращения", "Дата обращения", "Время обращения",
	"Начало SLA", "Дата ответа", "Время обработки (часы)", "ID менеджера",
}

func rowToSlice(row dto.DashboardRowDTO) []interface{} {
	dateFmt, timeFmt := "02.01.2006", "15:04"
	var requestDate, requestTime, registeredAt, responseAt, elapsed, managerID string
	if row.RequestAt.Valid {
		requestDate = row.RequestAt.Time.Format(dateFmt)
		requestTime = row.RequestAt.Time.Format(timeFmt)
	}
	if row.RegisteredAt.Valid {
		registeredAt = row.RegisteredAt.Time.Format(dateFmt + " " + timeFmt)
	}
	if row.ResponseAt.Valid {
		responseAt = row.ResponseAt.Time.Format(dateFmt + " " + timeFmt)
	}
	if row.ElapsedHours.Valid {
		elapsed = fmt.Sprintf("%.2f", row.ElapsedHours.Float64)
	}
	if row.ManagerID.Valid {
		managerID = fmt.Sprintf("%d", row.ManagerID.Int64)
	}

	return []interface{}{
		row.ClientID, row.Status, row.SourceChannel, requestDate, requestTime,
		registeredAt, responseAt, elapsed, managerID,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.DashboardRowDTO, summary *dto.DashboardSummaryDTO) error {
	f := excelize.NewFile()
	sheet := "Отчет SLA"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "I1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := rowToSlice(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "C", "C", 18)
	f.SetColWidth(sheet, "D", "G", 20)
	f.SetColWidth(sheet, "H", "H", 24)

	// Итоговая строка под таблицей.
	summaryCell, _ := excelize.CoordinatesToCellName(1, len(rows)+3)
	avg := "-"
	if summary.AvgElapsedHours.Valid {
		avg = fmt.Sprintf("%.2f", summary.AvgElapsedHours.Float64)
	}
	summaryRow := []interface{}{
		fmt.Sprintf("Всего клиентов: %d, отвечено: %d, в ожидании: %d, среднее время обработки: %s ч.",
			summary.TotalClients, summary.DoneCount, summary.WaitingCount, avg),
	}
	f.SetSheetRow(sheet, summaryCell, &summaryRow)

	fileName := fmt.Sprintf("sla_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
