package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

type WorkOrderHandler struct {
	service ports.WorkOrderService
}

func NewWorkOrderHandler(service ports.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{service: service}
}

type createWorkOrderRequest struct {
	ClientName  string `json:"client_name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Zone        string `json:"zone" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
	Specialty   string `json:"specialty" validate:"required"`
	Description string `json:"description"`
}

type advanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed"`
}

// Create handles POST /v1/work-orders. New orders always start pending.
//
// @Summary      Create a work order
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkOrderRequest  true  "Work order data"
// @Success      201   {object}  domain.WorkOrder
// @Router       /v1/work-orders [post]
func (h *WorkOrderHandler) Create(c echo.Context) error {
	var req createWorkOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.CreateWorkOrder(c.Request().Context(), ports.CreateWorkOrderInput{
		ClientName:  req.ClientName,
		Address:     req.Address,
		Zone:        req.Zone,
		Priority:    req.Priority,
		Specialty:   req.Specialty,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// Get handles GET /v1/work-orders/:id.
//
// @Summary      Fetch a work order by ID
// @Tags         work-orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Work order ID"
// @Success      200  {object}  domain.WorkOrder
// @Failure      404  {object}  map[string]string
// @Router       /v1/work-orders/{id} [get]
func (h *WorkOrderHandler) Get(c echo.Context) error {
	order, err := h.service.GetWorkOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// List handles GET /v1/work-orders with optional status and zone filters.
//
// @Summary      List work orders
// @Tags         work-orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        zone    query     string  false  "Filter by zone"
// @Success      200  {array}  domain.WorkOrder
// @Router       /v1/work-orders [get]
func (h *WorkOrderHandler) List(c echo.Context) error {
	orders, err := h.service.ListWorkOrders(c.Request().Context(), ports.ListWorkOrdersFilter{
		Status: c.QueryParam("status"),
		Zone:   c.QueryParam("zone"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// AdvanceStatus handles PATCH /v1/work-orders/:id/status. Status moves
// forward only; completing an order releases the technician's load.
//
// @Summary      Advance a work order's status
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Work order ID"
// @Param        body  body      advanceStatusRequest  true  "Target status"
// @Success      200   {object}  domain.WorkOrder
// @Failure      422   {object}  map[string]string
// @Router       /v1/work-orders/{id}/status [patch]
func (h *WorkOrderHandler) AdvanceStatus(c echo.Context) error {
	var req advanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.AdvanceStatus(c.Request().Context(), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
