package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/helados-api/internal/domain/entity"
)

// lineTables tablas de líneas cargadas/devueltas de un documento (viaje o venta del dueño).
type lineTables struct {
	loaded    string
	returned  string
	parentCol string
}

var (
	tripLines = lineTables{loaded: "trip_loaded_items", returned: "trip_returned_items", parentCol: "trip_id"}
	saleLines = lineTables{loaded: "owner_sale_loaded_items", returned: "owner_sale_returned_items", parentCol: "sale_id"}
)

func (t lineTables) addLoaded(ctx context.Context, q Querier, it *entity.LoadedItem) error {
	query := `INSERT INTO ` + t.loaded + ` (id, ` + t.parentCol + `, inventory_id, product_id, flavor_id,
		freezer_id, quantity, unit_price, is_deformed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.Exec(ctx, query,
		it.ID, it.ParentID, it.InventoryID, it.ProductID, it.FlavorID,
		it.FreezerID, it.Quantity, it.UnitPrice, it.IsDeformed,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.loaded, err)
	}
	return nil
}

func (t lineTables) addReturned(ctx context.Context, q Querier, it *entity.ReturnedItem) error {
	query := `INSERT INTO ` + t.returned + ` (id, ` + t.parentCol + `, product_id, flavor_id, quantity,
		is_deformed, destination_freezer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := q.Exec(ctx, query,
		it.ID, it.ParentID, it.ProductID, it.FlavorID, it.Quantity, it.IsDeformed, it.DestinationFreezerID,
	)
	if err != nil {
		return fmt.Errorf("insert %s: %w", t.returned, err)
	}
	return nil
}

func (t lineTables) listLoaded(ctx context.Context, q Querier, parentID string) ([]*entity.LoadedItem, error) {
	query := `SELECT id, ` + t.parentCol + `, inventory_id, product_id, flavor_id, freezer_id,
		quantity, unit_price, is_deformed
		FROM ` + t.loaded + ` WHERE ` + t.parentCol + ` = $1 ORDER BY id`
	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.loaded, err)
	}
	defer rows.Close()
	var list []*entity.LoadedItem
	for rows.Next() {
		var it entity.LoadedItem
		if err := rows.Scan(&it.ID, &it.ParentID, &it.InventoryID, &it.ProductID, &it.FlavorID,
			&it.FreezerID, &it.Quantity, &it.UnitPrice, &it.IsDeformed); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.loaded, err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (t lineTables) listReturned(ctx context.Context, q Querier, parentID string) ([]*entity.ReturnedItem, error) {
	query := `SELECT id, ` + t.parentCol + `, product_id, flavor_id, quantity, is_deformed, destination_freezer_id
		FROM ` + t.returned + ` WHERE ` + t.parentCol + ` = $1 ORDER BY id`
	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.returned, err)
	}
	defer rows.Close()
	var list []*entity.ReturnedItem
	for rows.Next() {
		var it entity.ReturnedItem
		if err := rows.Scan(&it.ID, &it.ParentID, &it.ProductID, &it.FlavorID, &it.Quantity,
			&it.IsDeformed, &it.DestinationFreezerID); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.returned, err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
