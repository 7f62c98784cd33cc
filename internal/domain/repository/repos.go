package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Inventory  InventoryRepository
	Cash       CashRegisterRepository
	Trips      WorkerTripRepository
	OwnerSales OwnerSaleRepository
	Transfers  FreezerTransferRepository
	LocalSales LocalSaleRepository
	Purchases  PurchaseRepository
	Workers    WorkerRepository
	Routes     RouteRepository
	Payments   WorkerPaymentRepository
	Audit      AuditLogRepository
}
