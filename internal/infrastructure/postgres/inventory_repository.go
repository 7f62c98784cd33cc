package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/helados-api/internal/domain"
	"github.com/jhoicas/helados-api/internal/domain/entity"
	"github.com/jhoicas/helados-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, freezer_id, product_id, flavor_id, provider_id, quantity,
	min_stock_alert, is_deformed, assigned_worker_id, last_updated, updated_by`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.ID, &it.FreezerID, &it.ProductID, &it.FlavorID, &it.ProviderID, &it.Quantity,
		&it.MinStockAlert, &it.IsDeformed, &it.AssignedWorkerID, &it.LastUpdated, &it.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryRepo) queryList(ctx context.Context, where string, args ...any) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory ` + where + ` ORDER BY freezer_id, product_id, id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanInventory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetByID obtiene una pila por ID. Devuelve nil, nil si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	it, err := scanInventory(r.q.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return it, nil
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.queryList(ctx, "")
}

func (r *InventoryRepo) ListByFreezer(ctx context.Context, freezerID string) ([]*entity.InventoryItem, error) {
	return r.queryList(ctx, "WHERE freezer_id = $1", freezerID)
}

func (r *InventoryRepo) ListSellable(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.queryList(ctx, "WHERE is_deformed = FALSE")
}

func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]*entity.InventoryItem, error) {
	return r.queryList(ctx, "WHERE is_deformed = FALSE AND quantity <= min_stock_alert")
}

func (r *InventoryRepo) ListWorkerDeformed(ctx context.Context, workerID string) ([]*entity.InventoryItem, error) {
	return r.queryList(ctx, "WHERE is_deformed = TRUE AND assigned_worker_id = $1", workerID)
}

// SubtractIfAvailable resta con una única sentencia condicional: no hay ventana entre leer y escribir.
func (r *InventoryRepo) SubtractIfAvailable(ctx context.Context, id string, qty int, actorID string, at time.Time) (bool, error) {
	query := `
		UPDATE inventory
		SET quantity = quantity - $1, last_updated = $2, updated_by = $3
		WHERE id = $4 AND quantity >= $1`
	tag, err := r.q.Exec(ctx, query, qty, at, actorID, id)
	if err != nil {
		return false, fmt.Errorf("subtract inventory: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteIfDepletedDeformed elimina la pila deforme agotada.
func (r *InventoryRepo) DeleteIfDepletedDeformed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE id = $1 AND quantity = 0 AND is_deformed = TRUE`, id)
	if err != nil {
		return fmt.Errorf("delete depleted inventory: %w", err)
	}
	return nil
}

// MergeAdd upsert sobre la clave de fusión (índice único NULLS NOT DISTINCT).
// La pila es nueva cuando el id devuelto es el generado para el INSERT.
func (r *InventoryRepo) MergeAdd(ctx context.Context, key entity.PileKey, qty, minStockAlert int, actorID string, at time.Time) (*entity.InventoryItem, bool, error) {
	query := `
		INSERT INTO inventory (id, freezer_id, product_id, flavor_id, provider_id, quantity,
			min_stock_alert, is_deformed, assigned_worker_id, last_updated, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT ON CONSTRAINT inventory_pile_key
		DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity,
			last_updated = EXCLUDED.last_updated,
			updated_by = EXCLUDED.updated_by
		RETURNING ` + inventoryColumns
	newID := uuid.New().String()
	it, err := scanInventory(r.q.QueryRow(ctx, query,
		newID, key.FreezerID, key.ProductID, key.FlavorID, key.ProviderID, qty,
		minStockAlert, key.IsDeformed, key.WorkerPtr(), at, actorID,
	))
	if err != nil {
		if isCheckViolation(err) {
			return nil, false, domain.Invalid("pila inválida: %v", err)
		}
		return nil, false, fmt.Errorf("merge add inventory: %w", err)
	}
	return it, it.ID == newID, nil
}

// FindSourcePile pila vendible sin asignar con más unidades; la bloquea hasta el fin de la tx.
func (r *InventoryRepo) FindSourcePile(ctx context.Context, freezerID, productID, flavorID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory
		WHERE freezer_id = $1 AND product_id = $2 AND flavor_id = $3
		  AND is_deformed = FALSE AND assigned_worker_id IS NULL
		ORDER BY quantity DESC, id
		LIMIT 1
		FOR UPDATE`
	it, err := scanInventory(r.q.QueryRow(ctx, query, freezerID, productID, flavorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find source pile: %w", err)
	}
	return it, nil
}

// FindAnyProvider proveedor de cualquier pila del producto y sabor; "" si no hay ninguna.
func (r *InventoryRepo) FindAnyProvider(ctx context.Context, productID, flavorID string) (string, error) {
	var provider string
	err := r.q.QueryRow(ctx,
		`SELECT provider_id FROM inventory WHERE product_id = $1 AND flavor_id = $2 ORDER BY id LIMIT 1`,
		productID, flavorID,
	).Scan(&provider)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find provider: %w", err)
	}
	return provider, nil
}

func (r *InventoryRepo) UpdateMinStockAlert(ctx context.Context, id string, minStockAlert int, actorID string, at time.Time) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory SET min_stock_alert = $1, last_updated = $2, updated_by = $3
		WHERE id = $4
		RETURNING ` + inventoryColumns
	it, err := scanInventory(r.q.QueryRow(ctx, query, minStockAlert, at, actorID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update min stock alert: %w", err)
	}
	return it, nil
}
