package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/domain"
)

// CashHandler libro de caja: movimientos manuales, saldo y reportes.
type CashHandler struct {
	uc *cash.UseCase
}

func NewCashHandler(uc *cash.UseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// AddEntry godoc
// @Summary      Registrar un movimiento de caja
// @Description  amount con signo: positivo ingresa, negativo egresa.
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashEntryRequest  true  "tipo, monto y referencias"
// @Success      201  {object}  entity.CashEntry
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/entries [post]
func (h *CashHandler) AddEntry(c *fiber.Ctx) error {
	var in dto.CashEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e, err := h.uc.AddEntry(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// AddExpense godoc
// @Summary      Registrar un gasto
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExpenseRequest  true  "monto positivo y categoría"
// @Success      201  {object}  entity.CashEntry
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/expenses [post]
func (h *CashHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.ExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e, err := h.uc.AddExpense(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// AddWithdrawal godoc
// @Summary      Registrar un retiro del dueño
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WithdrawalRequest  true  "monto positivo"
// @Success      201  {object}  entity.CashEntry
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/withdrawals [post]
func (h *CashHandler) AddWithdrawal(c *fiber.Ctx) error {
	var in dto.WithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	e, err := h.uc.AddWithdrawal(c.Context(), in, ActorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// Balance godoc
// @Summary      Saldo actual y verificación del libro
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BalanceInfo
// @Router       /api/cash/balance [get]
func (h *CashHandler) Balance(c *fiber.Ctx) error {
	info, err := h.uc.Balance(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// Today godoc
// @Summary      Movimientos de hoy
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CashReport
// @Router       /api/cash/today [get]
func (h *CashHandler) Today(c *fiber.Ctx) error {
	rep, err := h.uc.Today(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Range godoc
// @Summary      Movimientos en un rango [from, to)
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD o RFC3339"
// @Param        to    query  string  true  "YYYY-MM-DD o RFC3339"
// @Success      200  {object}  dto.CashReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/range [get]
func (h *CashHandler) Range(c *fiber.Ctx) error {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return respondError(c, err)
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	rep, err := h.uc.ByRange(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// Monthly godoc
// @Summary      Movimientos de un mes
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  true  "año"
// @Param        month  query  int  true  "mes 1-12"
// @Success      200  {object}  dto.CashReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cash/monthly [get]
func (h *CashHandler) Monthly(c *fiber.Ctx) error {
	rep, err := h.uc.Monthly(c.Context(), c.QueryInt("year"), time.Month(c.QueryInt("month")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rep)
}

// ByDocument godoc
// @Summary      Movimientos asociados a un documento
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        doc_type  path  string  true  "worker_trips | owner_sales | ..."
// @Param        doc_id    path  string  true  "ID del documento"
// @Success      200  {array}  entity.CashEntry
// @Router       /api/cash/documents/{doc_type}/{doc_id} [get]
func (h *CashHandler) ByDocument(c *fiber.Ctx) error {
	list, err := h.uc.ByDocument(c.Context(), c.Params("doc_type"), c.Params("doc_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// parseDate acepta una fecha (hora local, inicio del día) o un instante RFC3339.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, domain.Invalid("fecha requerida")
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Invalid("fecha inválida: %s", s)
	}
	return t, nil
}
