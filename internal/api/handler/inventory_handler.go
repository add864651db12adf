package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/flash"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// InventoryHandler serves the public browsing pages and the staff-only
// inventory management pages.
type InventoryHandler struct {
	inventory ports.InventoryService
	pages     *pageBuilder
	valid     *FormValidator
}

func NewInventoryHandler(inventory ports.InventoryService, valid *FormValidator, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		pages:     &pageBuilder{nav: inventory, log: log},
		valid:     valid,
	}
}

// Home renders the landing page.
func (h *InventoryHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", h.pages.data(c, "Home"))
}

// ByClassification renders the vehicle grid for one classification.
func (h *InventoryHandler) ByClassification(c echo.Context) error {
	classification, vehicles, err := h.inventory.VehiclesByClassification(c.Request().Context(), c.Param("classificationId"))
	if err != nil {
		return err
	}

	data := h.pages.data(c, classification.Name+" vehicles")
	data["Vehicles"] = vehicles
	return c.Render(http.StatusOK, "classification", data)
}

// Detail renders a single vehicle page.
func (h *InventoryHandler) Detail(c echo.Context) error {
	vehicle, err := h.inventory.VehicleDetail(c.Request().Context(), c.Param("invId"))
	if err != nil {
		return err
	}

	data := h.pages.data(c, fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model))
	data["Vehicle"] = vehicle
	return c.Render(http.StatusOK, "detail", data)
}

// Management renders the staff landing page for inventory tasks.
func (h *InventoryHandler) Management(c echo.Context) error {
	return c.Render(http.StatusOK, "management", h.pages.data(c, "Inventory Management"))
}

// ShowAddClassification renders the add-classification form.
func (h *InventoryHandler) ShowAddClassification(c echo.Context) error {
	return c.Render(http.StatusOK, "add_classification", h.pages.data(c, "Add Classification"))
}

// AddClassification creates a classification and invalidates the nav cache.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	var form classificationForm
	if err := c.Bind(&form); err != nil {
		return h.renderAddClassification(c, []string{"invalid form submission"})
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderAddClassification(c, msgs)
	}

	created, err := h.inventory.AddClassification(c.Request().Context(), form.Name)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationExists) {
			return h.renderAddClassification(c, []string{"that classification already exists"})
		}
		return err
	}

	flash.Set(c, fmt.Sprintf("The %s classification was added.", created.Name))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) renderAddClassification(c echo.Context, errs []string) error {
	data := h.pages.data(c, "Add Classification")
	data["Errors"] = errs
	return c.Render(http.StatusBadRequest, "add_classification", data)
}

// ShowAddVehicle renders an empty vehicle form.
func (h *InventoryHandler) ShowAddVehicle(c echo.Context) error {
	return h.renderVehicleForm(c, http.StatusOK, "Add Vehicle", "/inv/vehicle/new", &domain.Vehicle{}, nil)
}

// AddVehicle creates an inventory record.
func (h *InventoryHandler) AddVehicle(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return h.renderVehicleForm(c, http.StatusBadRequest, "Add Vehicle", "/inv/vehicle/new", &domain.Vehicle{}, []string{"invalid form submission"})
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderVehicleForm(c, http.StatusBadRequest, "Add Vehicle", "/inv/vehicle/new", vehicleEcho(form), msgs)
	}

	created, err := h.inventory.AddVehicle(c.Request().Context(), vehicleInput(form))
	if err != nil {
		return err
	}

	flash.Set(c, fmt.Sprintf("The %s %s was added to inventory.", created.Make, created.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// ShowEditVehicle renders the vehicle form prefilled from the store.
func (h *InventoryHandler) ShowEditVehicle(c echo.Context) error {
	vehicle, err := h.inventory.VehicleDetail(c.Request().Context(), c.Param("invId"))
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Edit %s %s", vehicle.Make, vehicle.Model)
	return h.renderVehicleForm(c, http.StatusOK, title, "/inv/update", vehicle, nil)
}

// UpdateVehicle persists changes to an existing inventory record.
func (h *InventoryHandler) UpdateVehicle(c echo.Context) error {
	var form vehicleForm
	if err := c.Bind(&form); err != nil {
		return h.renderVehicleForm(c, http.StatusBadRequest, "Edit Vehicle", "/inv/update", &domain.Vehicle{}, []string{"invalid form submission"})
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderVehicleForm(c, http.StatusBadRequest, "Edit Vehicle", "/inv/update", vehicleEcho(form), msgs)
	}

	updated, err := h.inventory.UpdateVehicle(c.Request().Context(), vehicleInput(form))
	if err != nil {
		return err
	}

	flash.Set(c, fmt.Sprintf("The %s %s was updated.", updated.Make, updated.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

func (h *InventoryHandler) renderVehicleForm(c echo.Context, status int, title, action string, vehicle *domain.Vehicle, errs []string) error {
	data := h.pages.data(c, title)
	data["Action"] = action
	data["Submit"] = title
	data["Vehicle"] = vehicle
	if len(errs) > 0 {
		data["Errors"] = errs
	}
	return c.Render(status, "vehicle_form", data)
}

func vehicleInput(form vehicleForm) ports.VehicleInput {
	return ports.VehicleInput{
		ID:               form.ID,
		ClassificationID: form.ClassificationID,
		Make:             form.Make,
		Model:            form.Model,
		Year:             form.Year,
		Description:      form.Description,
		Image:            form.Image,
		Thumbnail:        form.Thumbnail,
		Price:            form.Price,
		Miles:            form.Miles,
		Color:            form.Color,
	}
}

// vehicleEcho rebuilds a Vehicle from the submitted form so a failed
// validation re-renders with sticky values.
func vehicleEcho(form vehicleForm) *domain.Vehicle {
	return &domain.Vehicle{
		ID:               form.ID,
		ClassificationID: form.ClassificationID,
		Make:             form.Make,
		Model:            form.Model,
		Year:             form.Year,
		Description:      form.Description,
		Image:            form.Image,
		Thumbnail:        form.Thumbnail,
		Price:            form.Price,
		Miles:            form.Miles,
		Color:            form.Color,
	}
}
