package handlers

import (
	"Resto-POS-Backend/domain"
	"Resto-POS-Backend/internal/api/presenters"
	"Resto-POS-Backend/pkg/pos"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PosHandler interface {
		GetTables(c *fiber.Ctx) error
		GetTableByID(c *fiber.Ctx) error
		CreateTable(c *fiber.Ctx) error
		UpdateTable(c *fiber.Ctx) error
		DeleteTable(c *fiber.Ctx) error
		GetOrders(c *fiber.Ctx) error
		GetOrderByID(c *fiber.Ctx) error
		CreateOrder(c *fiber.Ctx) error
		UpdateOrder(c *fiber.Ctx) error
		CreatePayment(c *fiber.Ctx) error
		GetPayments(c *fiber.Ctx) error
		GetPaymentsByOrder(c *fiber.Ctx) error
		GatewayWebhookHandler(c *fiber.Ctx) error
	}

	posHandler struct {
		posService pos.PosService
		validator  *validator.Validate
	}
)

func NewPosHandler(posService pos.PosService, validator *validator.Validate) PosHandler {
	return &posHandler{
		posService: posService,
		validator:  validator,
	}
}

func (h *posHandler) GetTables(c *fiber.Ctx) error {
	status := c.Query("status")

	res, err := h.posService.GetTables(c.Context(), status)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetTables, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTables)
}

func (h *posHandler) GetTableByID(c *fiber.Ctx) error {
	id := c.Params("id")

	res, err := h.posService.GetTableByID(c.Context(), id)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetTables, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTables)
}

func (h *posHandler) CreateTable(c *fiber.Ctx) error {
	req := new(domain.CreateTableRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTable, err)
	}

	res, err := h.posService.CreateTable(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreateTable, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTable)
}

func (h *posHandler) UpdateTable(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.UpdateTableRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateTable, err)
	}

	res, err := h.posService.UpdateTable(c.Context(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedUpdateTable, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateTable)
}

func (h *posHandler) DeleteTable(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.posService.DeleteTable(c.Context(), id); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedDeleteTable, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteTable)
}

func (h *posHandler) GetOrders(c *fiber.Ctx) error {
	status := c.Query("status")
	tableID := c.Query("table_id")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	orders, count, err := h.posService.GetOrders(c.Context(), status, tableID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *posHandler) GetOrderByID(c *fiber.Ctx) error {
	id := c.Params("id")

	res, err := h.posService.GetOrderByID(c.Context(), id)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *posHandler) CreateOrder(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.posService.CreateOrder(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *posHandler) UpdateOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.UpdateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}

	res, err := h.posService.UpdateOrder(c.Context(), id, *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedUpdateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *posHandler) CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreatePaymentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
	}

	res, err := h.posService.CreatePayment(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayment)
}

func (h *posHandler) GetPayments(c *fiber.Ctx) error {
	status := c.Query("status")
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	payments, count, err := h.posService.GetPayments(c.Context(), status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetPayments, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"payments": payments,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetPayments)
}

func (h *posHandler) GetPaymentsByOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	res, err := h.posService.GetPaymentsByOrder(c.Context(), orderID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetPayments, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPayments)
}

// GatewayWebhookHandler receives payment gateway callbacks. The gateway
// retries until it sees 200, so resolved and unknown-but-valid payloads both
// acknowledge.
func (h *posHandler) GatewayWebhookHandler(c *fiber.Ctx) error {
	req := new(domain.GatewayNotificationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.posService.HandleGatewayNotification(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreatePayment, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCreatePayment)
}
