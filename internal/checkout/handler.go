package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/wichananm65/marketplace-backend/internal/cart"
	"github.com/wichananm65/marketplace-backend/internal/payment"
	"github.com/wichananm65/marketplace-backend/internal/user"
)

// Rates are the platform fees the aggregation applies per group.
type Rates struct {
	Standard decimal.Decimal
	Express  decimal.Decimal
	CODFee   decimal.Decimal
	PayoutID string
}

// Handler exposes checkout preview and submission.
type Handler struct {
	carts *cart.Service
	orch  *Orchestrator
	rates Rates
}

func NewHandler(carts *cart.Service, orch *Orchestrator, rates Rates) *Handler {
	return &Handler{carts: carts, orch: orch, rates: rates}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout/preview", h.preview)
	app.Post("/api/v1/checkout", h.submit)
}

func (h *Handler) options(method payment.Method, tier DeliveryTier) PartitionOptions {
	rate := h.rates.Standard
	if tier == DeliveryExpress {
		rate = h.rates.Express
	}
	return PartitionOptions{ShipRate: rate, CODFee: h.rates.CODFee, Method: method}
}

// preview partitions the current cart and derives the payment reference
// without creating anything. Re-running it on an unchanged cart returns a
// byte-identical reference.
func (h *Handler) preview(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	method := payment.Method(c.Query("method", string(payment.MethodTransfer)))
	tier := DeliveryTier(c.Query("delivery", string(DeliveryStandard)))
	if !method.Valid() || !tier.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid payment method or delivery tier"})
	}

	items, err := h.carts.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	groups := Partition(items, h.options(method, tier))
	if len(groups) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
	}

	total := CombinedTotal(groups)
	resp := fiber.Map{
		"groups":         groups,
		"expectedAmount": total.StringFixed(2),
	}
	if method == payment.MethodTransfer {
		resp["paymentReference"] = payment.BuildReference(h.rates.PayoutID, total)
	}
	return c.JSON(resp)
}

type submitRequest struct {
	PaymentMethod    payment.Method   `json:"paymentMethod"`
	DeliveryTier     DeliveryTier     `json:"deliveryTier"`
	Buyer            BuyerInfo        `json:"buyer"`
	DeclaredAmount   *decimal.Decimal `json:"declaredAmount,omitempty"`
	ProofFingerprint string           `json:"proofFingerprint,omitempty"`
}

// submit reads the cart once, partitions it and drives the sequential
// order-creation pass. The cart is cleared only when at least one order was
// created; otherwise it is preserved for a retry.
func (h *Handler) submit(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(submitRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.PaymentMethod == "" {
		payload.PaymentMethod = payment.MethodTransfer
	}
	if payload.DeliveryTier == "" {
		payload.DeliveryTier = DeliveryStandard
	}
	if !payload.PaymentMethod.Valid() || !payload.DeliveryTier.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid payment method or delivery tier"})
	}

	// read once at submission start; nothing else may touch the cart until
	// the pass completes
	items, err := h.carts.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	groups := Partition(items, h.options(payload.PaymentMethod, payload.DeliveryTier))
	if len(groups) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
	}

	intent := payment.NewIntent(payload.PaymentMethod, h.rates.PayoutID, CombinedTotal(groups))
	if payload.ProofFingerprint != "" {
		intent.Fingerprint = payload.ProofFingerprint
	}
	if payload.PaymentMethod == payment.MethodTransfer {
		declared := intent.ExpectedAmount
		if payload.DeclaredAmount != nil {
			declared = *payload.DeclaredAmount
		}
		intent.Reconcile(declared)
	}

	payload.Buyer.UserID = userID
	res, err := h.orch.Submit(groups, intent, payload.Buyer)
	if err != nil {
		switch {
		case errors.Is(err, ErrSubmissionInFlight):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrIncompleteBuyer),
			errors.Is(err, ErrEmptyCheckout),
			errors.Is(err, ErrProofRequired),
			errors.Is(err, ErrProofMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case errors.Is(err, ErrAllGroupsFailed):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	msg := "orders created"
	if res.Failed > 0 {
		msg = "some orders could not be created"
	}
	return c.JSON(fiber.Map{
		"message":     msg,
		"created":     len(res.Created),
		"failed":      res.Failed,
		"orders":      res.Created,
		"cartCleared": res.CartCleared,
	})
}
