// Package settlement calcula lo vendido y lo adeudado al cerrar un viaje o una venta del dueño.
package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Key agrupa líneas por producto y sabor. El proveedor y la condición no participan.
type Key struct {
	ProductID string
	FlavorID  string
}

// LoadedLine línea cargada con su precio unitario.
type LoadedLine struct {
	InventoryID string
	ProductID   string
	FlavorID    string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ReturnedLine línea devuelta (buena o deforme, da igual para el cálculo).
type ReturnedLine struct {
	ProductID string
	FlavorID  string
	Quantity  int
}

// Excess devoluciones que superan lo cargado para una clave. Se reportan, no se cobran.
type Excess struct {
	Key      Key
	Loaded   int
	Returned int
}

// Result resultado de la liquidación.
type Result struct {
	SoldQuantity int
	AmountDue    decimal.Decimal
	Excess       []Excess
}

// Calculate aplica, por clave k: vendido_k = max(cargado_k - devuelto_k, 0).
// Las unidades devueltas se acreditan a las líneas cargadas de mayor precio primero
// (empate por InventoryID), así el resultado no depende del orden de entrada.
func Calculate(loaded []LoadedLine, returned []ReturnedLine) Result {
	returnedByKey := make(map[Key]int, len(returned))
	for _, r := range returned {
		returnedByKey[Key{r.ProductID, r.FlavorID}] += r.Quantity
	}

	linesByKey := make(map[Key][]LoadedLine, len(loaded))
	keys := make([]Key, 0, len(loaded))
	for _, l := range loaded {
		k := Key{l.ProductID, l.FlavorID}
		if _, ok := linesByKey[k]; !ok {
			keys = append(keys, k)
		}
		linesByKey[k] = append(linesByKey[k], l)
	}

	res := Result{AmountDue: decimal.Zero}
	for _, k := range keys {
		lines := linesByKey[k]
		sort.SliceStable(lines, func(i, j int) bool {
			if !lines[i].UnitPrice.Equal(lines[j].UnitPrice) {
				return lines[i].UnitPrice.GreaterThan(lines[j].UnitPrice)
			}
			return lines[i].InventoryID < lines[j].InventoryID
		})

		credit := returnedByKey[k]
		loadedTotal := 0
		for _, l := range lines {
			loadedTotal += l.Quantity
			applied := min(credit, l.Quantity)
			credit -= applied
			sold := l.Quantity - applied
			res.SoldQuantity += sold
			res.AmountDue = res.AmountDue.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(sold))))
		}
		if credit > 0 {
			res.Excess = append(res.Excess, Excess{Key: k, Loaded: loadedTotal, Returned: returnedByKey[k]})
		}
		delete(returnedByKey, k)
	}

	// Devoluciones de claves que nunca se cargaron.
	orphan := make([]Key, 0, len(returnedByKey))
	for k, q := range returnedByKey {
		if q > 0 {
			orphan = append(orphan, k)
		}
	}
	sort.Slice(orphan, func(i, j int) bool {
		if orphan[i].ProductID != orphan[j].ProductID {
			return orphan[i].ProductID < orphan[j].ProductID
		}
		return orphan[i].FlavorID < orphan[j].FlavorID
	})
	for _, k := range orphan {
		res.Excess = append(res.Excess, Excess{Key: k, Returned: returnedByKey[k]})
	}
	return res
}
