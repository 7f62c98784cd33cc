// Package memory implementa los repositorios y el TxRunner en memoria.
// Un único escritor a la vez: Run toma el mutex durante toda la transacción, guarda una
// instantánea del estado y la restaura si fn falla. Los repositorios nunca exponen sus
// punteros internos: toda actualización reemplaza el valor, por lo que la instantánea
// puede ser una copia superficial de los mapas.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/helados-api/internal/application/ports"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	inventory     map[string]*entity.InventoryItem
	cash          []*entity.CashEntry
	head          entity.CashHead
	trips         map[string]*entity.WorkerTrip
	tripLoaded    map[string][]*entity.LoadedItem
	tripReturned  map[string][]*entity.ReturnedItem
	sales         map[string]*entity.OwnerSale
	saleLoaded    map[string][]*entity.LoadedItem
	saleReturned  map[string][]*entity.ReturnedItem
	transfers     map[string]*entity.FreezerTransfer
	transferItems map[string][]*entity.TransferItem
	localSales    map[string]*entity.LocalSale
	localItems    map[string][]*entity.LocalSaleItem
	purchases     map[string]*entity.Purchase
	purchaseItems map[string][]*entity.PurchaseItem
	workers       map[string]*entity.Worker
	routes        map[string]*entity.Route
	payments      map[string]*entity.WorkerPayment
	audit         []*entity.AuditEntry
}

func newState() *state {
	return &state{
		inventory:     map[string]*entity.InventoryItem{},
		head:          entity.CashHead{Balance: decimal.Zero},
		trips:         map[string]*entity.WorkerTrip{},
		tripLoaded:    map[string][]*entity.LoadedItem{},
		tripReturned:  map[string][]*entity.ReturnedItem{},
		sales:         map[string]*entity.OwnerSale{},
		saleLoaded:    map[string][]*entity.LoadedItem{},
		saleReturned:  map[string][]*entity.ReturnedItem{},
		transfers:     map[string]*entity.FreezerTransfer{},
		transferItems: map[string][]*entity.TransferItem{},
		localSales:    map[string]*entity.LocalSale{},
		localItems:    map[string][]*entity.LocalSaleItem{},
		purchases:     map[string]*entity.Purchase{},
		purchaseItems: map[string][]*entity.PurchaseItem{},
		workers:       map[string]*entity.Worker{},
		routes:        map[string]*entity.Route{},
		payments:      map[string]*entity.WorkerPayment{},
	}
}

func (s *state) clone() *state {
	return &state{
		inventory:     maps.Clone(s.inventory),
		cash:          slices.Clone(s.cash),
		head:          s.head,
		trips:         maps.Clone(s.trips),
		tripLoaded:    cloneLists(s.tripLoaded),
		tripReturned:  cloneLists(s.tripReturned),
		sales:         maps.Clone(s.sales),
		saleLoaded:    cloneLists(s.saleLoaded),
		saleReturned:  cloneLists(s.saleReturned),
		transfers:     maps.Clone(s.transfers),
		transferItems: cloneLists(s.transferItems),
		localSales:    maps.Clone(s.localSales),
		localItems:    cloneLists(s.localItems),
		purchases:     maps.Clone(s.purchases),
		purchaseItems: cloneLists(s.purchaseItems),
		workers:       maps.Clone(s.workers),
		routes:        maps.Clone(s.routes),
		payments:      maps.Clone(s.payments),
		audit:         slices.Clone(s.audit),
	}
}

func cloneLists[T any](m map[string][]T) map[string][]T {
	out := make(map[string][]T, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// Store almacén en memoria. El valor cero no es usable; usar New.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn falla o el contexto se
// cancela, el estado vuelve a la instantánea tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snap := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snap
		return err
	}
	if err := ctx.Err(); err != nil {
		s.st = snap
		return err
	}
	return nil
}

// Repos repositorios fuera de transacción; cada llamada toma el mutex.
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.Repos {
	d := db{s: s, inTx: inTx}
	return repository.Repos{
		Inventory:  inventoryRepo{d},
		Cash:       cashRepo{d},
		Trips:      tripRepo{d},
		OwnerSales: ownerSaleRepo{d},
		Transfers:  transferRepo{d},
		LocalSales: localSaleRepo{d},
		Purchases:  purchaseRepo{d},
		Workers:    workerRepo{d},
		Routes:     routeRepo{d},
		Payments:   paymentRepo{d},
		Audit:      auditRepo{d},
	}
}

// SeedInventory inserta pilas tal cual (datos de prueba o carga inicial).
func (s *Store) SeedInventory(items ...entity.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.st.inventory[it.ID] = &it
	}
}

// SeedWorker inserta o reemplaza un trabajador.
func (s *Store) SeedWorker(w entity.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.CurrentDebt.IsZero() {
		w.CurrentDebt = decimal.Zero
	}
	s.st.workers[w.ID] = &w
}

// SeedRoute inserta o reemplaza una ruta.
func (s *Store) SeedRoute(r entity.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.routes[r.ID] = &r
}

type db struct {
	s    *Store
	inTx bool
}

func (d db) do(fn func(st *state) error) error {
	if !d.inTx {
		d.s.mu.Lock()
		defer d.s.mu.Unlock()
	}
	return fn(d.s.st)
}

func ptrCopy[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyAll[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		out = append(out, ptrCopy(v))
	}
	return out
}
