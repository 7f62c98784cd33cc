package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/payments"
	"github.com/jhoicas/helados-api/internal/application/workers"
)

// WorkerHandler agregados de trabajadores, pagos y auditoría.
type WorkerHandler struct {
	workers  *workers.UseCase
	payments *payments.UseCase
	audit    *audit.UseCase
}

func NewWorkerHandler(w *workers.UseCase, p *payments.UseCase, a *audit.UseCase) *WorkerHandler {
	return &WorkerHandler{workers: w, payments: p, audit: a}
}

// GetByID godoc
// @Summary      Agregados del trabajador (deuda, ventas, última venta)
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajador"
// @Success      200  {object}  entity.Worker
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workers/{id} [get]
func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	w, err := h.workers.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(w)
}

// Reconcile godoc
// @Summary      Recalcular agregados desde viajes y pagos
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del trabajador"
// @Param        apply  query  bool    false  "guardar los valores recalculados"
// @Success      200  {object}  dto.WorkerReconciliation
// @Router       /api/workers/{id}/reconcile [post]
func (h *WorkerHandler) Reconcile(c *fiber.Ctx) error {
	rec, err := h.workers.Reconcile(c.Context(), c.Params("id"), c.QueryBool("apply", false), ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rec)
}

// ListPayments godoc
// @Summary      Pagos de un trabajador
// @Tags         workers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajador"
// @Success      200  {array}  entity.WorkerPayment
// @Router       /api/payments/worker/{id} [get]
func (h *WorkerHandler) ListPayments(c *fiber.Ctx) error {
	list, err := h.payments.ListByWorker(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// CreatePayment godoc
// @Summary      Registrar el pago de un viaje liquidado
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del viaje"
// @Success      201  {object}  entity.WorkerPayment
// @Failure      400  {object}  dto.ErrorResponse  "viaje aún en curso"
// @Failure      409  {object}  dto.ErrorResponse  "pago duplicado"
// @Router       /api/payments/trip/{id} [post]
func (h *WorkerHandler) CreatePayment(c *fiber.Ctx) error {
	p, err := h.payments.Create(c.Context(), c.Params("id"), ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// GetPayment godoc
// @Summary      Pago de un viaje
// @Tags         payments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del viaje"
// @Success      200  {object}  entity.WorkerPayment
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/payments/trip/{id} [get]
func (h *WorkerHandler) GetPayment(c *fiber.Ctx) error {
	p, err := h.payments.GetByTrip(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// AuditTrail godoc
// @Summary      Historial de auditoría de un registro
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        table  path  string  true  "tabla"
// @Param        id     path  string  true  "ID del registro"
// @Success      200  {array}  entity.AuditEntry
// @Router       /api/audit/{table}/{id} [get]
func (h *WorkerHandler) AuditTrail(c *fiber.Ctx) error {
	list, err := h.audit.ByRecord(c.Context(), c.Params("table"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
