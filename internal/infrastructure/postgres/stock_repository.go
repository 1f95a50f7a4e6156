package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia de un producto en una bodega/estante; nil si no hay fila.
func (r *StockRepo) Get(productID, warehouseID, shelfID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, COALESCE(shelf_id, ''), quantity, reserved_qty, avg_cost, updated_at
		FROM stock
		WHERE product_id = $1 AND warehouse_id = $2 AND COALESCE(shelf_id, '') = $3`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, shelfID).Scan(
		&s.ProductID, &s.WarehouseID, &s.ShelfID, &s.Quantity, &s.ReservedQty, &s.AvgCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la existencia y bloquea la fila (SELECT FOR UPDATE);
// nil si no hay fila.
func (r *StockRepo) GetForUpdate(productID, warehouseID, shelfID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, COALESCE(shelf_id, ''), quantity, reserved_qty, avg_cost, updated_at
		FROM stock
		WHERE product_id = $1 AND warehouse_id = $2 AND COALESCE(shelf_id, '') = $3
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID, shelfID).Scan(
		&s.ProductID, &s.WarehouseID, &s.ShelfID, &s.Quantity, &s.ReservedQty, &s.AvgCost, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la existencia (por producto, bodega y estante).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, shelf_id, quantity, reserved_qty, avg_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (product_id, warehouse_id, shelf_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              reserved_qty = EXCLUDED.reserved_qty,
		              avg_cost = EXCLUDED.avg_cost,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.WarehouseID, stock.ShelfID,
		stock.Quantity, stock.ReservedQty, stock.AvgCost,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByScope lista el ledger vivo del alcance (bodega, estante opcional y
// filtro de categorías), enriquecido con SKU y nombre del producto.
func (r *StockRepo) ListByScope(scope repository.StockScope) ([]*repository.ScopedStock, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, COALESCE(s.shelf_id, ''),
		       s.quantity, s.reserved_qty, s.avg_cost
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.warehouse_id = $1`
	args := []interface{}{scope.WarehouseID}
	idx := 2
	if scope.ShelfID != "" {
		query += fmt.Sprintf(" AND s.shelf_id = $%d", idx)
		args = append(args, scope.ShelfID)
		idx++
	}
	if !scope.Categories.All() {
		query += fmt.Sprintf(" AND p.category_id = ANY($%d)", idx)
		args = append(args, scope.Categories.IDs())
	}
	query += " ORDER BY p.sku"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock by scope: %w", err)
	}
	defer rows.Close()

	var result []*repository.ScopedStock
	for rows.Next() {
		var s repository.ScopedStock
		if err := rows.Scan(&s.ProductID, &s.ProductSKU, &s.ProductName, &s.ShelfID,
			&s.Quantity, &s.ReservedQty, &s.AvgCost); err != nil {
			return nil, fmt.Errorf("scan scoped stock: %w", err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scoped stock: %w", err)
	}
	return result, nil
}
