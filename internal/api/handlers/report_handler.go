package handlers

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/internal/api/presenters"
	"Resto-POS-Backend/pkg/report"

	"github.com/gofiber/fiber/v2"
)

type (
	ReportHandler interface {
		GetDashboard(c *fiber.Ctx) error
		GetDailySales(c *fiber.Ctx) error
		GetEmployeePerformance(c *fiber.Ctx) error
		GetMenuItemPerformance(c *fiber.Ctx) error
		GetInventoryVariance(c *fiber.Ctx) error
	}

	reportHandler struct {
		reportService report.ReportService
	}
)

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandler{reportService: reportService}
}

func (h *reportHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.reportService.GetDashboard(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *reportHandler) GetDailySales(c *fiber.Ctx) error {
	res, err := h.reportService.GetDailySales(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetSales, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSales)
}

func (h *reportHandler) GetEmployeePerformance(c *fiber.Ctx) error {
	res, err := h.reportService.GetEmployeePerformance(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetEmployee, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetEmployee)
}

func (h *reportHandler) GetMenuItemPerformance(c *fiber.Ctx) error {
	res, err := h.reportService.GetMenuItemPerformance(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetItemPerf, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetItemPerf)
}

func (h *reportHandler) GetInventoryVariance(c *fiber.Ctx) error {
	res, err := h.reportService.GetInventoryVariance(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetVariance, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetVariance)
}
