package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldops/dispatch-system/internal/api/metrics"
	"github.com/fieldops/dispatch-system/internal/core/domain"
	"github.com/fieldops/dispatch-system/internal/core/ports"
)

// AssignmentHandler handles work-order assignment requests. Both routes sit
// behind the supervisor RBAC gate.
type AssignmentHandler struct {
	service ports.AssignmentService
}

func NewAssignmentHandler(service ports.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

type assignManualRequest struct {
	OrderID      string `json:"order_id" validate:"required"`
	TechnicianID string `json:"technician_id" validate:"required"`
}

type assignAutomaticRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// AssignManual handles POST /v1/assignments/manual. The acting supervisor is
// taken from the auth claims and recorded as assignedBy.
//
// @Summary      Manually assign a work order to a technician
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignManualRequest  true  "Assignment request"
// @Success      200   {object}  domain.WorkOrder
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/assignments/manual [post]
func (h *AssignmentHandler) AssignManual(c echo.Context) error {
	var req assignManualRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	order, err := h.service.AssignManually(c.Request().Context(), req.OrderID, req.TechnicianID, actor)
	if err != nil {
		metrics.AssignmentErrorsTotal.WithLabelValues("manual", assignmentErrorReason(err)).Inc()
		return err
	}

	metrics.AssignmentsTotal.WithLabelValues("manual").Inc()
	return c.JSON(http.StatusOK, order)
}

// AssignAutomatic handles POST /v1/assignments/automatic.
//
// @Summary      Automatically assign a work order via the matching policy
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignAutomaticRequest  true  "Assignment request"
// @Success      200   {object}  domain.WorkOrder
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/assignments/automatic [post]
func (h *AssignmentHandler) AssignAutomatic(c echo.Context) error {
	var req assignAutomaticRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.AssignAutomatically(c.Request().Context(), req.OrderID)
	if err != nil {
		metrics.AssignmentErrorsTotal.WithLabelValues("automatic", assignmentErrorReason(err)).Inc()
		return err
	}

	metrics.AssignmentsTotal.WithLabelValues("automatic").Inc()
	return c.JSON(http.StatusOK, order)
}

func assignmentErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, domain.ErrTechnicianNotFound):
		return "technician_not_found"
	case errors.Is(err, domain.ErrNoAvailableTechnician):
		return "no_candidate"
	case errors.Is(err, domain.ErrOrderNotPending):
		return "invalid_state"
	default:
		return "internal"
	}
}
