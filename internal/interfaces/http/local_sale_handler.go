package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/localsales"
	"github.com/jhoicas/helados-api/internal/application/purchases"
)

// LocalSaleHandler ventas de mostrador.
type LocalSaleHandler struct {
	uc *localsales.UseCase
}

func NewLocalSaleHandler(uc *localsales.UseCase) *LocalSaleHandler {
	return &LocalSaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta en local
// @Description  Resta cada línea de su pila y, salvo los regalos, registra el ingreso en caja.
// @Tags         local-sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocalSaleRequest  true  "tipo, notas y líneas"
// @Success      201  {object}  dto.LocalSaleWithItems
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  InsufficientStockResponse
// @Router       /api/local-sales [post]
func (h *LocalSaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocalSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Create(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// GetByID godoc
// @Summary      Venta en local con sus líneas
// @Tags         local-sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.LocalSaleWithItems
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/local-sales/{id} [get]
func (h *LocalSaleHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// List godoc
// @Summary      Ventas en local recientes
// @Tags         local-sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de resultados"
// @Success      200  {array}  entity.LocalSale
// @Router       /api/local-sales [get]
func (h *LocalSaleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), pageLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Today godoc
// @Summary      Ventas en local de hoy
// @Tags         local-sales
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.LocalSale
// @Router       /api/local-sales/today [get]
func (h *LocalSaleHandler) Today(c *fiber.Ctx) error {
	list, err := h.uc.Today(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// PurchaseHandler compras a proveedores.
type PurchaseHandler struct {
	uc *purchases.UseCase
}

func NewPurchaseHandler(uc *purchases.UseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra a proveedor
// @Description  Cada línea se suma a la pila vendible del congelador indicado.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "proveedor, estado de pago y líneas"
// @Success      201  {object}  dto.PurchaseWithItems
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.uc.Create(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetByID godoc
// @Summary      Compra con sus líneas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseWithItems
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// List godoc
// @Summary      Compras recientes
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de resultados"
// @Success      200  {array}  entity.Purchase
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), pageLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
