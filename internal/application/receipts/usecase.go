// Package receipts genera el comprobante PDF de liquidación de viajes y ventas del dueño.
package receipts

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/settlement"
)

// PDFGenerator puerto de renderizado del comprobante.
type PDFGenerator interface {
	GenerateSettlementReceipt(ctx context.Context, r *dto.SettlementReceipt) ([]byte, error)
}

// TripReader lectura compuesta de un viaje.
type TripReader interface {
	Get(ctx context.Context, id string) (*dto.TripWithItems, error)
}

// OwnerSaleReader lectura compuesta de una venta del dueño.
type OwnerSaleReader interface {
	Get(ctx context.Context, id string) (*dto.OwnerSaleWithItems, error)
}

// UseCase arma el comprobante desde el modelo de lectura y lo renderiza.
type UseCase struct {
	trips        TripReader
	ownerSales   OwnerSaleReader
	gen          PDFGenerator
	businessName string
}

// NewUseCase construye el caso de uso.
func NewUseCase(trips TripReader, ownerSales OwnerSaleReader, gen PDFGenerator, businessName string) *UseCase {
	return &UseCase{trips: trips, ownerSales: ownerSales, gen: gen, businessName: businessName}
}

// TripReceipt PDF de un viaje devuelto. Devuelve bytes y nombre de archivo sugerido.
func (uc *UseCase) TripReceipt(ctx context.Context, id string) ([]byte, string, error) {
	t, err := uc.trips.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if t.Trip.Status != entity.TripReturned || t.Trip.ReturnTime == nil {
		return nil, "", domain.Invalid("el viaje aún no ha sido liquidado")
	}
	r := &dto.SettlementReceipt{
		BusinessName:  uc.businessName,
		Title:         "LIQUIDACIÓN DE VIAJE",
		DocumentID:    t.Trip.ID,
		HolderLabel:   "Trabajador",
		HolderID:      t.Trip.WorkerID,
		DepartureTime: t.Trip.DepartureTime,
		ReturnTime:    *t.Trip.ReturnTime,
		Lines:         BuildLines(t.LoadedItems, t.ReturnedItems),
		SoldQuantity:  t.Trip.SoldQuantity,
		AmountDue:     t.Trip.AmountDue,
	}
	return uc.render(ctx, r, "viaje")
}

// OwnerSaleReceipt PDF de una venta del dueño cerrada.
func (uc *UseCase) OwnerSaleReceipt(ctx context.Context, id string) ([]byte, string, error) {
	s, err := uc.ownerSales.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if s.Sale.IsOpen() {
		return nil, "", domain.Invalid("la venta aún no ha sido cerrada")
	}
	r := &dto.SettlementReceipt{
		BusinessName:  uc.businessName,
		Title:         "LIQUIDACIÓN VENTA DEL DUEÑO",
		DocumentID:    s.Sale.ID,
		HolderLabel:   "Dueño",
		HolderID:      s.Sale.OwnerID,
		DepartureTime: s.Sale.DepartureTime,
		ReturnTime:    *s.Sale.ReturnTime,
		Lines:         BuildLines(s.LoadedItems, s.ReturnedItems),
		SoldQuantity:  s.Sale.SoldQuantity,
		AmountDue:     s.Sale.AmountDue,
	}
	return uc.render(ctx, r, "venta-dueno")
}

func (uc *UseCase) render(ctx context.Context, r *dto.SettlementReceipt, prefix string) ([]byte, string, error) {
	b, err := uc.gen.GenerateSettlementReceipt(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}
	return b, fmt.Sprintf("%s-%s.pdf", prefix, r.DocumentID), nil
}

// BuildLines agrega cargado y devuelto por producto y sabor. El subtotal de cada línea usa
// el precio unitario ponderado de lo cargado para esa clave; el total del comprobante es
// siempre el AmountDue liquidado.
func BuildLines(loaded []*entity.LoadedItem, returned []*entity.ReturnedItem) []dto.ReceiptLine {
	type acc struct {
		loaded, returned int
		value            decimal.Decimal
	}
	byKey := map[settlement.Key]*acc{}
	get := func(k settlement.Key) *acc {
		a, ok := byKey[k]
		if !ok {
			a = &acc{value: decimal.Zero}
			byKey[k] = a
		}
		return a
	}
	for _, l := range loaded {
		a := get(settlement.Key{ProductID: l.ProductID, FlavorID: l.FlavorID})
		a.loaded += l.Quantity
		a.value = a.value.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	for _, r := range returned {
		a := get(settlement.Key{ProductID: r.ProductID, FlavorID: r.FlavorID})
		a.returned += r.Quantity
	}

	keys := make([]settlement.Key, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].FlavorID < keys[j].FlavorID
	})

	lines := make([]dto.ReceiptLine, 0, len(keys))
	for _, k := range keys {
		a := byKey[k]
		sold := max(a.loaded-a.returned, 0)
		price := decimal.Zero
		if a.loaded > 0 {
			price = a.value.Div(decimal.NewFromInt(int64(a.loaded))).Round(2)
		}
		lines = append(lines, dto.ReceiptLine{
			ProductID: k.ProductID,
			FlavorID:  k.FlavorID,
			Loaded:    a.loaded,
			Returned:  a.returned,
			Sold:      sold,
			UnitPrice: price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(sold))),
		})
	}
	return lines
}
