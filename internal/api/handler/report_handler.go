package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tinymarket/market/internal/api/metrics"
	"github.com/tinymarket/market/internal/api/view"
	"github.com/tinymarket/market/internal/core/ports"
)

const msgReportSubmitted = "Report submitted."

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Form handles GET /report (session required).
func (h *ReportHandler) Form(c echo.Context) error {
	return render(c, http.StatusOK, "report.html", view.Page{Title: "Report"})
}

// Submit handles POST /report (session required). The target id is stored
// without checking that it exists.
func (h *ReportHandler) Submit(c echo.Context) error {
	var form reportForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	_, err := h.service.SubmitReport(c.Request().Context(), ports.SubmitReportInput{
		ReporterID: sessionUserID(c),
		TargetID:   form.TargetID,
		Reason:     form.Reason,
	})
	if err != nil {
		return err
	}

	metrics.ReportsSubmittedTotal.Inc()
	return redirectWithFlash(c, "/products", msgReportSubmitted)
}
