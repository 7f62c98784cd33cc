package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/transfers"
)

// TransferHandler traslados entre congeladores.
type TransferHandler struct {
	uc *transfers.UseCase
}

func NewTransferHandler(uc *transfers.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Trasladar unidades entre congeladores
// @Description  Todas las líneas se aplican o ninguna.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "origen, destino y líneas"
// @Success      201  {object}  dto.TransferWithItems
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  InsufficientStockResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Create(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// GetByID godoc
// @Summary      Traslado con sus líneas
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del traslado"
// @Success      200  {object}  dto.TransferWithItems
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// List godoc
// @Summary      Traslados recientes
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de resultados"
// @Success      200  {array}  entity.FreezerTransfer
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), pageLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByFreezer godoc
// @Summary      Traslados con origen o destino en un congelador
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del congelador"
// @Success      200  {array}  entity.FreezerTransfer
// @Router       /api/transfers/freezer/{id} [get]
func (h *TransferHandler) ListByFreezer(c *fiber.Ctx) error {
	list, err := h.uc.ListByFreezer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
