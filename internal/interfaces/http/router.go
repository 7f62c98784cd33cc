package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/helados-api/internal/application/audit"
	"github.com/jhoicas/helados-api/internal/application/cash"
	"github.com/jhoicas/helados-api/internal/application/inventory"
	"github.com/jhoicas/helados-api/internal/application/localsales"
	"github.com/jhoicas/helados-api/internal/application/ownersales"
	"github.com/jhoicas/helados-api/internal/application/payments"
	"github.com/jhoicas/helados-api/internal/application/purchases"
	"github.com/jhoicas/helados-api/internal/application/receipts"
	"github.com/jhoicas/helados-api/internal/application/transfers"
	"github.com/jhoicas/helados-api/internal/application/trips"
	"github.com/jhoicas/helados-api/internal/application/workers"
	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC  *inventory.UseCase
	TripsUC      *trips.UseCase
	OwnerSalesUC *ownersales.UseCase
	TransfersUC  *transfers.UseCase
	LocalSalesUC *localsales.UseCase
	PurchasesUC  *purchases.UseCase
	CashUC       *cash.UseCase
	PaymentsUC   *payments.UseCase
	WorkersUC    *workers.UseCase
	AuditUC      *audit.UseCase
	ReceiptsUC   *receipts.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Las rutas fijas van antes que las de /:id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(entity.RoleOwner, entity.RoleAdmin)
	ownerOnly := RequireRole(entity.RoleOwner)

	// Inventory
	inv := api.Group("/inventory", staff)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/sellable", inventoryHandler.ListSellable)
	inv.Get("/low-stock", inventoryHandler.ListLowStock)
	inv.Get("/freezer/:id", inventoryHandler.ListByFreezer)
	inv.Get("/worker/:id/deformed", inventoryHandler.ListWorkerDeformed)
	inv.Post("/stock", inventoryHandler.AddStock)
	inv.Post("/merge", inventoryHandler.MergeAdd)
	inv.Get("/:id", inventoryHandler.GetByID)
	inv.Post("/:id/subtract", inventoryHandler.Subtract)
	inv.Put("/:id/alert", inventoryHandler.UpdateAlert)

	// Trips
	tr := api.Group("/trips", staff)
	tripHandler := NewTripHandler(deps.TripsUC, deps.ReceiptsUC)
	tr.Post("/", tripHandler.Create)
	tr.Get("/active", tripHandler.ListActive)
	tr.Get("/today", tripHandler.ListToday)
	tr.Get("/worker/:id", tripHandler.ListByWorker)
	tr.Get("/:id", tripHandler.GetByID)
	tr.Post("/:id/complete", tripHandler.Complete)
	tr.Get("/:id/receipt", tripHandler.Receipt)

	// Owner sales
	sales := api.Group("/owner-sales", staff)
	ownerSaleHandler := NewOwnerSaleHandler(deps.OwnerSalesUC, deps.ReceiptsUC)
	sales.Post("/", ownerOnly, ownerSaleHandler.Create)
	sales.Get("/", ownerSaleHandler.List)
	sales.Get("/:id", ownerSaleHandler.GetByID)
	sales.Post("/:id/complete", ownerOnly, ownerSaleHandler.Complete)
	sales.Get("/:id/receipt", ownerSaleHandler.Receipt)

	// Transfers
	tf := api.Group("/transfers", staff)
	transferHandler := NewTransferHandler(deps.TransfersUC)
	tf.Post("/", transferHandler.Create)
	tf.Get("/", transferHandler.List)
	tf.Get("/freezer/:id", transferHandler.ListByFreezer)
	tf.Get("/:id", transferHandler.GetByID)

	// Local sales
	ls := api.Group("/local-sales", staff)
	localSaleHandler := NewLocalSaleHandler(deps.LocalSalesUC)
	ls.Post("/", localSaleHandler.Create)
	ls.Get("/", localSaleHandler.List)
	ls.Get("/today", localSaleHandler.Today)
	ls.Get("/:id", localSaleHandler.GetByID)

	// Purchases
	pu := api.Group("/purchases", staff)
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	pu.Post("/", purchaseHandler.Create)
	pu.Get("/", purchaseHandler.List)
	pu.Get("/:id", purchaseHandler.GetByID)

	// Cash
	cs := api.Group("/cash", staff)
	cashHandler := NewCashHandler(deps.CashUC)
	cs.Get("/balance", cashHandler.Balance)
	cs.Get("/today", cashHandler.Today)
	cs.Get("/range", cashHandler.Range)
	cs.Get("/monthly", cashHandler.Monthly)
	cs.Get("/documents/:doc_type/:doc_id", cashHandler.ByDocument)
	cs.Post("/entries", ownerOnly, cashHandler.AddEntry)
	cs.Post("/expenses", cashHandler.AddExpense)
	cs.Post("/withdrawals", ownerOnly, cashHandler.AddWithdrawal)

	// Payments, workers y auditoría
	workerHandler := NewWorkerHandler(deps.WorkersUC, deps.PaymentsUC, deps.AuditUC)
	pay := api.Group("/payments", staff)
	pay.Post("/trip/:id", workerHandler.CreatePayment)
	pay.Get("/trip/:id", workerHandler.GetPayment)
	pay.Get("/worker/:id", workerHandler.ListPayments)

	wk := api.Group("/workers", staff)
	wk.Get("/:id", workerHandler.GetByID)
	wk.Post("/:id/reconcile", ownerOnly, workerHandler.Reconcile)

	api.Get("/audit/:table/:id", ownerOnly, workerHandler.AuditTrail)
}
