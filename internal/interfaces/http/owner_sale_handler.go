package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/ownersales"
	"github.com/jhoicas/helados-api/internal/application/receipts"
)

// OwnerSaleHandler salidas de venta del dueño.
type OwnerSaleHandler struct {
	uc       *ownersales.UseCase
	receipts *receipts.UseCase
}

func NewOwnerSaleHandler(uc *ownersales.UseCase, receipts *receipts.UseCase) *OwnerSaleHandler {
	return &OwnerSaleHandler{uc: uc, receipts: receipts}
}

// Create godoc
// @Summary      Registrar la salida de una venta del dueño
// @Tags         owner-sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOwnerSaleRequest  true  "ruta y líneas cargadas"
// @Success      201  {object}  entity.OwnerSale
// @Failure      409  {object}  InsufficientStockResponse
// @Router       /api/owner-sales [post]
func (h *OwnerSaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOwnerSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Create(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// Complete godoc
// @Summary      Cerrar una venta del dueño
// @Description  Registra la venta y el retiro automático por el mismo monto: el saldo de caja no cambia.
// @Tags         owner-sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la venta"
// @Param        body  body  dto.CompleteRequest  true  "líneas devueltas"
// @Success      200  {object}  entity.OwnerSale
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/owner-sales/{id}/complete [post]
func (h *OwnerSaleHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s, err := h.uc.Complete(c.Context(), c.Params("id"), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// GetByID godoc
// @Summary      Venta del dueño con sus líneas
// @Tags         owner-sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.OwnerSaleWithItems
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/owner-sales/{id} [get]
func (h *OwnerSaleHandler) GetByID(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(s)
}

// List godoc
// @Summary      Últimas ventas del dueño
// @Tags         owner-sales
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de resultados"
// @Success      200  {array}  entity.OwnerSale
// @Router       /api/owner-sales [get]
func (h *OwnerSaleHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), pageLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Receipt godoc
// @Summary      Comprobante PDF de una venta del dueño cerrada
// @Tags         owner-sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/owner-sales/{id}/receipt [get]
func (h *OwnerSaleHandler) Receipt(c *fiber.Ctx) error {
	b, filename, err := h.receipts.OwnerSaleReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, b, filename)
}
