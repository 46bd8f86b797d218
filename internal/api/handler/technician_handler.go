package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldops/dispatch-system/internal/core/ports"
)

type TechnicianHandler struct {
	service ports.TechnicianService
}

func NewTechnicianHandler(service ports.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{service: service}
}

type createTechnicianRequest struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"required"`
	Specialty      string   `json:"specialty" validate:"required"`
	Zone           string   `json:"zone" validate:"required"`
	Certifications []string `json:"certifications"`
}

// Create handles POST /v1/technicians.
//
// @Summary      Register a technician
// @Tags         technicians
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTechnicianRequest  true  "Technician data"
// @Success      201   {object}  domain.Technician
// @Router       /v1/technicians [post]
func (h *TechnicianHandler) Create(c echo.Context) error {
	var req createTechnicianRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tech, err := h.service.CreateTechnician(c.Request().Context(), ports.CreateTechnicianInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialty:      req.Specialty,
		Zone:           req.Zone,
		Certifications: req.Certifications,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, tech)
}

// Get handles GET /v1/technicians/:id.
//
// @Summary      Fetch a technician by ID
// @Tags         technicians
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Technician ID"
// @Success      200  {object}  domain.Technician
// @Failure      404  {object}  map[string]string
// @Router       /v1/technicians/{id} [get]
func (h *TechnicianHandler) Get(c echo.Context) error {
	tech, err := h.service.GetTechnician(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tech)
}

// List handles GET /v1/technicians with optional zone, specialty and
// availability query filters.
//
// @Summary      List technicians
// @Tags         technicians
// @Produce      json
// @Security     BearerAuth
// @Param        zone          query     string  false  "Filter by zone"
// @Param        specialty     query     string  false  "Filter by specialty"
// @Param        availability  query     string  false  "Filter by availability"
// @Success      200  {array}  domain.Technician
// @Router       /v1/technicians [get]
func (h *TechnicianHandler) List(c echo.Context) error {
	techs, err := h.service.ListTechnicians(c.Request().Context(), ports.ListTechniciansFilter{
		Zone:         c.QueryParam("zone"),
		Specialty:    c.QueryParam("specialty"),
		Availability: c.QueryParam("availability"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, techs)
}
