package handlers

import (
	"errors"
	"time"

	"smartpantry/internal/domain"
	applog "smartpantry/internal/log"
	"smartpantry/internal/services"
	"smartpantry/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type PantryHandler struct {
	Pantry *services.PantryService
}

// GET / — the dashboard: full inventory plus the derived shopping list.
func (h *PantryHandler) Dashboard(c *fiber.Ctx) error {
	items, err := h.Pantry.Items.ListAll()
	if err != nil {
		applog.Error(c, "pantry.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the pantry"})
	}
	inventory, shoppingList := services.Derive(items, time.Now())
	return render(c, "index", fiber.Map{
		"Inventory":    inventory,
		"ShoppingList": shoppingList,
	})
}

// GET /scan — barcode scan helper page.
func (h *PantryHandler) ScanPage(c *fiber.Ctx) error {
	return render(c, "scan", fiber.Map{})
}

// POST /items
func (h *PantryHandler) Add(c *fiber.Ctx) error {
	namePrimary, ok1 := validate.Name(c.FormValue("name_primary"))
	nameSecondary, ok2 := validate.Name(c.FormValue("name_secondary"))
	qty, okQ := validate.Qty(c.FormValue("quantity"), 1)
	minQty, okM := validate.Qty(c.FormValue("min_quantity"), 2)
	expiry, okD := validate.Date(c.FormValue("expiry_date"))
	if !ok1 || !ok2 || !okQ || !okM || !okD {
		return h.dashboardWithFlash(c, fiber.StatusBadRequest, "Please provide both names and non-negative quantities")
	}

	it, err := h.Pantry.Add(namePrimary, nameSecondary, qty, minQty, expiry)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return h.dashboardWithFlash(c, fiber.StatusBadRequest, "Please provide both names and non-negative quantities")
		}
		applog.Error(c, "pantry.add.fail", err, map[string]any{"name": namePrimary})
		return h.dashboardWithFlash(c, fiber.StatusInternalServerError, "Could not save the item. Please try again.")
	}

	applog.Audit(c, "pantry.add", map[string]any{"item_id": it.ID, "name": it.NamePrimary})
	return c.Redirect("/")
}

// POST /items/:id/inc and /items/:id/dec
func (h *PantryHandler) UpdateQuantity(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return h.dashboardWithFlash(c, fiber.StatusBadRequest, "Unknown item")
	}

	var err error
	switch c.Params("action") {
	case "inc":
		_, err = h.Pantry.Increment(id)
	case "dec":
		_, err = h.Pantry.Decrement(id)
	default:
		return h.dashboardWithFlash(c, fiber.StatusBadRequest, "Unknown action")
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.dashboardWithFlash(c, fiber.StatusNotFound, "That item no longer exists")
		}
		applog.Error(c, "pantry.qty.fail", err, map[string]any{"item_id": id})
		return h.dashboardWithFlash(c, fiber.StatusInternalServerError, "Could not update the quantity. Please try again.")
	}

	applog.Audit(c, "pantry.qty", map[string]any{"item_id": id, "action": c.Params("action")})
	return c.Redirect("/")
}

// POST /items/:id/delete
func (h *PantryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ItemID(c.Params("id"))
	if !ok {
		return h.dashboardWithFlash(c, fiber.StatusBadRequest, "Unknown item")
	}

	name, err := h.Pantry.Delete(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.dashboardWithFlash(c, fiber.StatusNotFound, "That item no longer exists")
		}
		applog.Error(c, "pantry.delete.fail", err, map[string]any{"item_id": id})
		return h.dashboardWithFlash(c, fiber.StatusInternalServerError, "Could not delete the item. Please try again.")
	}

	applog.Audit(c, "pantry.delete", map[string]any{"item_id": id, "name": name})
	return c.Redirect("/")
}

// POST /items/clear
func (h *PantryHandler) ClearAll(c *fiber.Ctx) error {
	n, err := h.Pantry.ClearAll()
	if err != nil {
		applog.Error(c, "pantry.clear.fail", err, nil)
		return h.dashboardWithFlash(c, fiber.StatusInternalServerError, "Could not clear the pantry. Please try again.")
	}
	applog.Audit(c, "pantry.clear", map[string]any{"removed": n})
	return c.Redirect("/")
}

// dashboardWithFlash re-renders the dashboard with a message instead of
// redirecting, so the failed request carries its own status code.
func (h *PantryHandler) dashboardWithFlash(c *fiber.Ctx, status int, msg string) error {
	items, err := h.Pantry.Items.ListAll()
	if err != nil {
		return c.Status(status).Render("notfound", fiber.Map{"Message": msg})
	}
	inventory, shoppingList := services.Derive(items, time.Now())
	return c.Status(status).Render("index", fiber.Map{
		"Inventory":    inventory,
		"ShoppingList": shoppingList,
		"Flash":        msg,
		"CSRFToken":    c.Cookies("csrf_"),
		"User":         c.Locals("user"),
	})
}
