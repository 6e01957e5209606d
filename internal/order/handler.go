package order

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders", h.listOrders)
	app.Get("/api/v1/orders/:id<[0-9]+>", h.getOrder)
	app.Put("/api/v1/orders/:id<[0-9]+>", h.updateOrder)
	app.Delete("/api/v1/orders/:id<[0-9]+>", h.deleteOrder)
}

// listOrders returns the caller's own orders by default; admin-style filters
// (seller, phone, explicit ids) widen the query.
func (h *Handler) listOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	f := Filter{}
	filtered := false
	if v := c.Query("sellerID"); v != "" {
		f.SellerID = &v
		filtered = true
	}
	if v := c.Query("phone"); v != "" {
		f.BuyerPhone = &v
		filtered = true
	}
	if v := c.Query("ids"); v != "" {
		for _, part := range strings.Split(v, ",") {
			if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				f.IDs = append(f.IDs, id)
			}
		}
		filtered = true
	}
	if !filtered {
		f.UserID = &userID
	}

	orders, err := h.service.List(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(ord)
}

// updateOrder applies whichever of {status, shippingNumber} are present.
// An irregular status transition is accepted but reported back in the
// response so admin tooling can flag it.
func (h *Handler) updateOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	payload := new(UpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Status == nil && payload.ShippingNumber == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "nothing to update"})
	}

	irregular := false
	if payload.Status != nil {
		prev, err := h.service.GetByID(id)
		if err == nil && !ValidTransition(prev.Status, *payload.Status) {
			irregular = true
		}
	}

	ord, err := h.service.Update(id, *payload)
	if err != nil {
		switch {
		case err == ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case err == ErrEmptyTracking:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "tracking number cannot be empty"})
		case errors.Is(err, ErrBadStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	resp := fiber.Map{"order": ord}
	if irregular {
		resp["warning"] = "irregular status transition"
	}
	return c.JSON(resp)
}

func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid id"})
	}

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "order deleted"})
}
