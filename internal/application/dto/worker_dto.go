package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// WorkerReconciliation agregados guardados frente a los recalculados desde viajes y pagos.
type WorkerReconciliation struct {
	Stored      *entity.Worker  `json:"stored"`
	CurrentDebt decimal.Decimal `json:"current_debt"`
	TotalSales  int             `json:"total_sales"`
	LastSale    *time.Time      `json:"last_sale,omitempty"`
	HasDrift    bool            `json:"has_drift"`
	Applied     bool            `json:"applied"`
}
