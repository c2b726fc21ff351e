package api

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Jhonaiker2309/supermarket-administration/internal/catalog"
	"github.com/Jhonaiker2309/supermarket-administration/internal/rates"
	"github.com/Jhonaiker2309/supermarket-administration/internal/remote"
	"github.com/Jhonaiker2309/supermarket-administration/internal/syncer"
	"github.com/Jhonaiker2309/supermarket-administration/pkg/model"
)

// Syncer defines the facade operations the handlers consume.
type Syncer interface {
	Products() []model.Product
	Rates() []model.ExchangeRate
	CurrentRate(selected model.ID) *model.ExchangeRate
	PricedProducts(selected model.ID) []syncer.PricedProduct
	AddProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, ref model.ProductRef) error
	AddRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error)
	UpdateRate(ctx context.Context, r model.ExchangeRate) (*model.ExchangeRate, error)
	DeleteRate(ctx context.Context, id model.ID) error
	ReloadProducts(ctx context.Context) error
	ReloadRates(ctx context.Context) error
}

// Handler serves the product and dolar endpoints.
type Handler struct {
	logger *zap.Logger
	sync   Syncer
}

func NewHandler(logger *zap.Logger, sync Syncer) *Handler {
	return &Handler{logger: logger, sync: sync}
}

// GET /api/v1/products
func (h *Handler) ListProducts(c *fiber.Ctx) error {
	products := h.sync.Products()
	return c.JSON(fiber.Map{
		"count":    len(products),
		"products": products,
	})
}

// GET /api/v1/products/priced
func (h *Handler) ListPricedProducts(c *fiber.Ctx) error {
	selected := model.ID(c.Query("selected"))
	priced := h.sync.PricedProducts(selected)
	return c.JSON(fiber.Map{
		"count":    len(priced),
		"rate":     rateView(h.sync.CurrentRate(selected)),
		"products": toPricedViews(priced),
	})
}

// POST /api/v1/products
func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	var p model.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateProduct(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.sync.AddProduct(c.Context(), p)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// PUT /api/v1/products/:name/:brand/:store
func (h *Handler) UpdateProduct(c *fiber.Ctx) error {
	ref, err := productRefFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var p model.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	// The path addresses the element; the body carries the replacement. In
	// legacy composite-key mode the two must agree or the update would be
	// applied to a different element than the one addressed.
	if ref.ID == "" && !ref.Matches(p) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "body key does not match addressed product",
		})
	}
	p.ID = ref.ID
	if err := validateProduct(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.sync.UpdateProduct(c.Context(), p)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(updated)
}

// DELETE /api/v1/products/:name/:brand/:store
func (h *Handler) DeleteProduct(c *fiber.Ctx) error {
	ref, err := productRefFromParams(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := h.sync.DeleteProduct(c.Context(), ref); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/dolar
func (h *Handler) ListRates(c *fiber.Ctx) error {
	rs := h.sync.Rates()
	return c.JSON(fiber.Map{
		"count": len(rs),
		"rates": rs,
	})
}

// GET /api/v1/dolar/current
func (h *Handler) CurrentRate(c *fiber.Ctx) error {
	selected := model.ID(c.Query("selected"))
	cur := h.sync.CurrentRate(selected)
	return c.JSON(rateView(cur))
}

// POST /api/v1/dolar
func (h *Handler) CreateRate(c *fiber.Ctx) error {
	var r model.ExchangeRate
	if err := c.BodyParser(&r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateRate(r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	created, err := h.sync.AddRate(c.Context(), r)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// PUT /api/v1/dolar/:id
func (h *Handler) UpdateRate(c *fiber.Ctx) error {
	var r model.ExchangeRate
	if err := c.BodyParser(&r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	r.ID = model.ID(c.Params("id"))
	if err := validateRate(r); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.sync.UpdateRate(c.Context(), r)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(updated)
}

// DELETE /api/v1/dolar/:id
func (h *Handler) DeleteRate(c *fiber.Ctx) error {
	id := model.ID(c.Params("id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
	}
	if err := h.sync.DeleteRate(c.Context(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/reload
func (h *Handler) Reload(c *fiber.Ctx) error {
	perr := h.sync.ReloadProducts(c.Context())
	rerr := h.sync.ReloadRates(c.Context())
	status := fiber.Map{
		"products": reloadStatus(perr),
		"rates":    reloadStatus(rerr),
	}
	if perr != nil || rerr != nil {
		return c.Status(fiber.StatusBadGateway).JSON(status)
	}
	return c.JSON(status)
}

// respondError maps sync/remote errors to response statuses. A drift means
// the remote accepted the change but the mirror had no matching element; the
// client should reload before retrying.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrDrift), errors.Is(err, rates.ErrDrift):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case remote.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case remote.IsRejection(err):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	case remote.IsNetwork(err):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func productRefFromParams(c *fiber.Ctx) (model.ProductRef, error) {
	if id := c.Params("id"); id != "" {
		return model.ProductRef{ID: model.ID(id)}, nil
	}
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return model.ProductRef{}, err
	}
	brand, err := url.PathUnescape(c.Params("brand"))
	if err != nil {
		return model.ProductRef{}, err
	}
	store, err := url.PathUnescape(c.Params("store"))
	if err != nil {
		return model.ProductRef{}, err
	}
	return model.ProductRef{Name: name, Brand: brand, Store: store}, nil
}

func reloadStatus(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
