package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/receipts"
	"github.com/jhoicas/helados-api/internal/application/trips"
)

// TripHandler viajes de trabajadores: salida, liquidación, consulta y comprobante.
type TripHandler struct {
	uc       *trips.UseCase
	receipts *receipts.UseCase
}

// NewTripHandler construye el handler.
func NewTripHandler(uc *trips.UseCase, receipts *receipts.UseCase) *TripHandler {
	return &TripHandler{uc: uc, receipts: receipts}
}

// Create godoc
// @Summary      Registrar la salida de un viaje
// @Description  Descuenta del inventario cada línea cargada. Si alguna pila no alcanza no se guarda nada.
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTripRequest  true  "trabajador, ruta y líneas cargadas"
// @Success      201  {object}  entity.WorkerTrip
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  InsufficientStockResponse
// @Router       /api/trips [post]
func (h *TripHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTripRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	trip, err := h.uc.Create(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(trip)
}

// Complete godoc
// @Summary      Liquidar un viaje en curso
// @Description  Reingresa devoluciones, calcula vendido y adeudado, suma la deuda del trabajador y registra el ingreso en caja.
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del viaje"
// @Param        body  body  dto.CompleteRequest  true  "líneas devueltas"
// @Success      200  {object}  entity.WorkerTrip
// @Failure      404  {object}  dto.ErrorResponse  "inexistente o ya liquidado"
// @Router       /api/trips/{id}/complete [post]
func (h *TripHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	trip, err := h.uc.Complete(c.Context(), c.Params("id"), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(trip)
}

// GetByID godoc
// @Summary      Viaje con sus líneas
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del viaje"
// @Success      200  {object}  dto.TripWithItems
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trips/{id} [get]
func (h *TripHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// ListActive godoc
// @Summary      Viajes en curso
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.WorkerTrip
// @Router       /api/trips/active [get]
func (h *TripHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListToday godoc
// @Summary      Viajes liquidados hoy
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.WorkerTrip
// @Router       /api/trips/today [get]
func (h *TripHandler) ListToday(c *fiber.Ctx) error {
	list, err := h.uc.TodaysReturned(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListByWorker godoc
// @Summary      Últimos viajes de un trabajador
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del trabajador"
// @Param        limit  query  int     false  "máximo de resultados"
// @Success      200  {array}  entity.WorkerTrip
// @Router       /api/trips/worker/{id} [get]
func (h *TripHandler) ListByWorker(c *fiber.Ctx) error {
	list, err := h.uc.ListByWorker(c.Context(), c.Params("id"), pageLimit(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Receipt godoc
// @Summary      Comprobante PDF de un viaje liquidado
// @Tags         trips
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del viaje"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse  "viaje aún en curso"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trips/{id}/receipt [get]
func (h *TripHandler) Receipt(c *fiber.Ctx) error {
	b, filename, err := h.receipts.TripReceipt(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, b, filename)
}

func sendPDF(c *fiber.Ctx, b []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// pageLimit lee ?limit=; sin valor usa el de dto.PageRequest.
func pageLimit(c *fiber.Ctx) int {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.DefaultPage()
	return p.Limit
}
