package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar todas las pilas de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.InventoryItem
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByFreezer godoc
// @Summary      Pilas de un congelador
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del congelador"
// @Success      200  {array}  entity.InventoryItem
// @Router       /api/inventory/freezer/{id} [get]
func (h *InventoryHandler) ListByFreezer(c *fiber.Ctx) error {
	list, err := h.uc.ListByFreezer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener una pila
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la pila"
// @Success      200  {object}  entity.InventoryItem
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	it, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}

// ListSellable godoc
// @Summary      Pilas vendibles (no deformes)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.InventoryItem
// @Router       /api/inventory/sellable [get]
func (h *InventoryHandler) ListSellable(c *fiber.Ctx) error {
	list, err := h.uc.ListSellable(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListLowStock godoc
// @Summary      Pilas vendibles en o bajo su umbral de alerta
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	list, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "items": list})
}

// ListWorkerDeformed godoc
// @Summary      Pilas deformes asignadas a un trabajador
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajador"
// @Success      200  {array}  entity.InventoryItem
// @Router       /api/inventory/worker/{id}/deformed [get]
func (h *InventoryHandler) ListWorkerDeformed(c *fiber.Ctx) error {
	list, err := h.uc.ListWorkerDeformed(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AddStock godoc
// @Summary      Ingreso de compra (suma a la pila vendible)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "freezer, producto, sabor, proveedor y cantidad"
// @Success      201  {object}  entity.InventoryItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.uc.AddStock(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}

// MergeAdd godoc
// @Summary      Sumar unidades a la pila con la misma clave (o crearla)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MergeAddRequest  true  "clave de la pila y cantidad"
// @Success      200  {object}  entity.InventoryItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/merge [post]
func (h *InventoryHandler) MergeAdd(c *fiber.Ctx) error {
	var in dto.MergeAddRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.uc.MergeAdd(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}

// Subtract godoc
// @Summary      Restar unidades de una pila
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la pila"
// @Param        body  body  dto.SubtractRequest  true  "cantidad"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  InsufficientStockResponse
// @Router       /api/inventory/{id}/subtract [post]
func (h *InventoryHandler) Subtract(c *fiber.Ctx) error {
	var in dto.SubtractRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Subtract(c.Context(), c.Params("id"), in.Quantity, ActorFrom(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateAlert godoc
// @Summary      Cambiar el umbral de alerta de una pila vendible
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la pila"
// @Param        body  body  dto.UpdateAlertRequest  true  "nuevo umbral"
// @Success      200  {object}  entity.InventoryItem
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/alert [put]
func (h *InventoryHandler) UpdateAlert(c *fiber.Ctx) error {
	var in dto.UpdateAlertRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.uc.UpdateMinStockAlert(c.Context(), c.Params("id"), in.MinStockAlert, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(it)
}
