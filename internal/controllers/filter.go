package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"sla-mart/internal/entities"
)

// parseReportFilter разбирает общие query-параметры выборки витрины:
// status, manager_ids, date_from/date_to (RFC3339), page, per_page.
func parseReportFilter(ctx echo.Context) entities.ReportFilter {
	var filter entities.ReportFilter

	if s := ctx.QueryParam("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				filter.Statuses = append(filter.Statuses, p)
			}
		}
	}

	if s := ctx.QueryParam("manager_ids"); s != "" {
		for _, part := range strings.Split(s, ",") {
			if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64); err == nil {
				filter.ManagerIDs = append(filter.ManagerIDs, id)
			}
		}
	}

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			filter.DateTo = &t
		}
	}

	if p, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && p > 0 {
		filter.Page = p
	}
	if pp, err := strconv.Atoi(ctx.QueryParam("per_page")); err == nil && pp > 0 {
		filter.PerPage = pp
	}

	return filter
}
