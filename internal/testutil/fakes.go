// Package testutil provee dobles en memoria de los puertos de persistencia.
// Los fakes guardan entidades por valor y devuelven copias, de modo que un
// test nunca puede mutar el "almacén" por accidente a través de un puntero
// compartido. FakeTxRunner emula el rollback restaurando el estado previo
// cuando el callback devuelve error.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Auditoria-api/internal/application/adjustment"
	"github.com/jhoicas/Auditoria-api/internal/application/audit"
	"github.com/jhoicas/Auditoria-api/internal/domain"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
	"github.com/jhoicas/Auditoria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// FakeStore es el almacén en memoria compartido por todos los fakes.
type FakeStore struct {
	Audits      map[string]entity.Audit
	Details     map[string]entity.AuditDetail
	Stocks      map[string]entity.Stock // clave producto|bodega|estante
	Snapshots   map[string]entity.Snapshot
	SnapDetails map[string][]entity.SnapshotDetail // clave snapshot_id
	Adjustments map[string]entity.Adjustment
	Movements   map[string]entity.StockMovement
	Sequences   map[string]int // clave kind|período
	Scans       map[string]entity.SerialScan
	Evidence    map[string]entity.Evidence
	Warehouses  map[string]entity.Warehouse
	Shelves     map[string]entity.Shelf
	Categories  map[string]entity.Category
	Products    map[string]entity.Product
	Metrics     map[string]entity.AuditMetrics // clave período|bodega
	Users       map[string]entity.User
}

// NewFakeStore crea un almacén vacío.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		Audits:      map[string]entity.Audit{},
		Details:     map[string]entity.AuditDetail{},
		Stocks:      map[string]entity.Stock{},
		Snapshots:   map[string]entity.Snapshot{},
		SnapDetails: map[string][]entity.SnapshotDetail{},
		Adjustments: map[string]entity.Adjustment{},
		Movements:   map[string]entity.StockMovement{},
		Sequences:   map[string]int{},
		Scans:       map[string]entity.SerialScan{},
		Evidence:    map[string]entity.Evidence{},
		Warehouses:  map[string]entity.Warehouse{},
		Shelves:     map[string]entity.Shelf{},
		Categories:  map[string]entity.Category{},
		Products:    map[string]entity.Product{},
		Metrics:     map[string]entity.AuditMetrics{},
		Users:       map[string]entity.User{},
	}
}

func stockKey(productID, warehouseID, shelfID string) string {
	return productID + "|" + warehouseID + "|" + shelfID
}

// AddWarehouse registra una bodega de prueba.
func (s *FakeStore) AddWarehouse(id, name string) {
	s.Warehouses[id] = entity.Warehouse{ID: id, Name: name}
}

// AddShelf registra un estante de prueba.
func (s *FakeStore) AddShelf(id, warehouseID, code string) {
	s.Shelves[id] = entity.Shelf{ID: id, WarehouseID: warehouseID, Code: code}
}

// AddCategory registra una categoría de prueba.
func (s *FakeStore) AddCategory(id, name string) {
	s.Categories[id] = entity.Category{ID: id, Name: name, Status: "active"}
}

// AddProduct registra un producto de prueba.
func (s *FakeStore) AddProduct(id, sku, name, categoryID string) {
	s.Products[id] = entity.Product{ID: id, SKU: sku, Name: name, CategoryID: categoryID}
}

// AddStock registra una fila del ledger vivo. El producto debe existir para
// que ListByScope pueda enriquecer SKU/nombre y filtrar por categoría.
func (s *FakeStore) AddStock(productID, warehouseID, shelfID string, qty, reserved, avgCost decimal.Decimal) {
	s.Stocks[stockKey(productID, warehouseID, shelfID)] = entity.Stock{
		ProductID:   productID,
		WarehouseID: warehouseID,
		ShelfID:     shelfID,
		Quantity:    qty,
		ReservedQty: reserved,
		AvgCost:     avgCost,
		UpdatedAt:   time.Now(),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	cp := make(map[K]V, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// clone copia el estado mutable del almacén (para emular el rollback).
func (s *FakeStore) clone() *FakeStore {
	cp := *s
	cp.Audits = cloneMap(s.Audits)
	cp.Details = cloneMap(s.Details)
	cp.Stocks = cloneMap(s.Stocks)
	cp.Snapshots = cloneMap(s.Snapshots)
	cp.SnapDetails = cloneMap(s.SnapDetails)
	cp.Adjustments = cloneMap(s.Adjustments)
	cp.Movements = cloneMap(s.Movements)
	cp.Sequences = cloneMap(s.Sequences)
	cp.Scans = cloneMap(s.Scans)
	cp.Evidence = cloneMap(s.Evidence)
	cp.Metrics = cloneMap(s.Metrics)
	cp.Users = cloneMap(s.Users)
	return &cp
}

func (s *FakeStore) restore(saved *FakeStore) {
	s.Audits = saved.Audits
	s.Details = saved.Details
	s.Stocks = saved.Stocks
	s.Snapshots = saved.Snapshots
	s.SnapDetails = saved.SnapDetails
	s.Adjustments = saved.Adjustments
	s.Movements = saved.Movements
	s.Sequences = saved.Sequences
	s.Scans = saved.Scans
	s.Evidence = saved.Evidence
	s.Metrics = saved.Metrics
	s.Users = saved.Users
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditorías
// ──────────────────────────────────────────────────────────────────────────────

// FakeAuditRepo implementa repository.AuditRepository sobre el almacén.
type FakeAuditRepo struct{ S *FakeStore }

var _ repository.AuditRepository = (*FakeAuditRepo)(nil)

func (r *FakeAuditRepo) Create(a *entity.Audit) error {
	r.S.Audits[a.ID] = *a
	return nil
}

func (r *FakeAuditRepo) GetByID(id string) (*entity.Audit, error) {
	a, ok := r.S.Audits[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *FakeAuditRepo) Update(a *entity.Audit) error {
	if _, ok := r.S.Audits[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Audits[a.ID] = *a
	return nil
}

func (r *FakeAuditRepo) List(filter repository.AuditListFilter) ([]*entity.Audit, error) {
	out := make([]*entity.Audit, 0)
	for _, a := range r.S.Audits {
		if filter.WarehouseID != "" && a.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.State != "" && a.State != filter.State {
			continue
		}
		cp := a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *FakeAuditRepo) ListCompletedBetween(from, to time.Time, warehouseID string) ([]*entity.Audit, error) {
	out := make([]*entity.Audit, 0)
	for _, a := range r.S.Audits {
		if a.State != entity.AuditStateCompletada || a.FinishedAt == nil {
			continue
		}
		if a.FinishedAt.Before(from) || !a.FinishedAt.Before(to) {
			continue
		}
		if warehouseID != "" && a.WarehouseID != warehouseID {
			continue
		}
		cp := a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// FakeAuditDetailRepo implementa repository.AuditDetailRepository.
type FakeAuditDetailRepo struct{ S *FakeStore }

var _ repository.AuditDetailRepository = (*FakeAuditDetailRepo)(nil)

func (r *FakeAuditDetailRepo) BulkCreate(details []*entity.AuditDetail) error {
	for _, d := range details {
		r.S.Details[d.ID] = *d
	}
	return nil
}

func (r *FakeAuditDetailRepo) GetForAudit(detailID, auditID string) (*entity.AuditDetail, error) {
	d, ok := r.S.Details[detailID]
	if !ok || d.AuditID != auditID {
		return nil, nil
	}
	return &d, nil
}

func (r *FakeAuditDetailRepo) GetByProduct(auditID, productID string) (*entity.AuditDetail, error) {
	for _, d := range r.S.Details {
		if d.AuditID == auditID && d.ProductID == productID {
			cp := d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FakeAuditDetailRepo) ListByAudit(auditID string) ([]*entity.AuditDetail, error) {
	out := make([]*entity.AuditDetail, 0)
	for _, d := range r.S.Details {
		if d.AuditID == auditID {
			cp := d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductSKU < out[j].ProductSKU })
	return out, nil
}

func (r *FakeAuditDetailRepo) ListDiscrepant(auditID string) ([]*entity.AuditDetail, error) {
	all, _ := r.ListByAudit(auditID)
	out := make([]*entity.AuditDetail, 0)
	for _, d := range all {
		if d.HasDiscrepancy() {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *FakeAuditDetailRepo) CountByAudit(auditID string) (int, error) {
	n := 0
	for _, d := range r.S.Details {
		if d.AuditID == auditID {
			n++
		}
	}
	return n, nil
}

func (r *FakeAuditDetailRepo) Update(d *entity.AuditDetail) error {
	if _, ok := r.S.Details[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Details[d.ID] = *d
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger vivo
// ──────────────────────────────────────────────────────────────────────────────

// FakeStockRepo implementa repository.StockRepository.
type FakeStockRepo struct{ S *FakeStore }

var _ repository.StockRepository = (*FakeStockRepo)(nil)

func (r *FakeStockRepo) Get(productID, warehouseID, shelfID string) (*entity.Stock, error) {
	st, ok := r.S.Stocks[stockKey(productID, warehouseID, shelfID)]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (r *FakeStockRepo) GetForUpdate(productID, warehouseID, shelfID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID, shelfID)
}

func (r *FakeStockRepo) Upsert(st *entity.Stock) error {
	r.S.Stocks[stockKey(st.ProductID, st.WarehouseID, st.ShelfID)] = *st
	return nil
}

func (r *FakeStockRepo) ListByScope(scope repository.StockScope) ([]*repository.ScopedStock, error) {
	out := make([]*repository.ScopedStock, 0)
	for _, st := range r.S.Stocks {
		if st.WarehouseID != scope.WarehouseID {
			continue
		}
		if scope.ShelfID != "" && st.ShelfID != scope.ShelfID {
			continue
		}
		p := r.S.Products[st.ProductID]
		if !scope.Categories.Matches(p.CategoryID) {
			continue
		}
		out = append(out, &repository.ScopedStock{
			ProductID:   st.ProductID,
			ProductSKU:  p.SKU,
			ProductName: p.Name,
			ShelfID:     st.ShelfID,
			Quantity:    st.Quantity,
			ReservedQty: st.ReservedQty,
			AvgCost:     st.AvgCost,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductSKU < out[j].ProductSKU })
	return out, nil
}

// FakeMovementRepo implementa repository.StockMovementRepository.
type FakeMovementRepo struct{ S *FakeStore }

var _ repository.StockMovementRepository = (*FakeMovementRepo)(nil)

func (r *FakeMovementRepo) Create(m *entity.StockMovement) error {
	r.S.Movements[m.ID] = *m
	return nil
}

func (r *FakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	m, ok := r.S.Movements[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *FakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.S.Movements {
		if m.WarehouseID != warehouseID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && !m.Date.Before(*to) {
			continue
		}
		cp := m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return page(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshots, ajustes y secuencias
// ──────────────────────────────────────────────────────────────────────────────

// FakeSnapshotRepo implementa repository.SnapshotRepository. A lo sumo un
// snapshot por auditoría, como la restricción única de la tabla real.
type FakeSnapshotRepo struct{ S *FakeStore }

var _ repository.SnapshotRepository = (*FakeSnapshotRepo)(nil)

func (r *FakeSnapshotRepo) Create(snap *entity.Snapshot, details []*entity.SnapshotDetail) error {
	if _, exists := r.S.Snapshots[snap.AuditID]; exists {
		return fmt.Errorf("ya existe snapshot para la auditoría %s: %w", snap.AuditID, domain.ErrDuplicate)
	}
	r.S.Snapshots[snap.AuditID] = *snap
	rows := make([]entity.SnapshotDetail, 0, len(details))
	for _, d := range details {
		rows = append(rows, *d)
	}
	r.S.SnapDetails[snap.ID] = rows
	return nil
}

func (r *FakeSnapshotRepo) GetByAuditID(auditID string) (*entity.Snapshot, error) {
	snap, ok := r.S.Snapshots[auditID]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

func (r *FakeSnapshotRepo) ListDetails(snapshotID string) ([]*entity.SnapshotDetail, error) {
	rows := r.S.SnapDetails[snapshotID]
	out := make([]*entity.SnapshotDetail, 0, len(rows))
	for _, d := range rows {
		cp := d
		out = append(out, &cp)
	}
	return out, nil
}

// FakeAdjustmentRepo implementa repository.AdjustmentRepository.
type FakeAdjustmentRepo struct{ S *FakeStore }

var _ repository.AdjustmentRepository = (*FakeAdjustmentRepo)(nil)

func (r *FakeAdjustmentRepo) Create(adj *entity.Adjustment) error {
	r.S.Adjustments[adj.ID] = *adj
	return nil
}

func (r *FakeAdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	adj, ok := r.S.Adjustments[id]
	if !ok {
		return nil, nil
	}
	return &adj, nil
}

func (r *FakeAdjustmentRepo) Update(adj *entity.Adjustment) error {
	if _, ok := r.S.Adjustments[adj.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Adjustments[adj.ID] = *adj
	return nil
}

func (r *FakeAdjustmentRepo) List(filter repository.AdjustmentListFilter) ([]*entity.Adjustment, error) {
	out := make([]*entity.Adjustment, 0)
	for _, adj := range r.S.Adjustments {
		if filter.AuditID != "" && adj.AuditID != filter.AuditID {
			continue
		}
		if filter.WarehouseID != "" && adj.WarehouseID != filter.WarehouseID {
			continue
		}
		if filter.State != "" && adj.State != filter.State {
			continue
		}
		cp := adj
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, filter.Limit, filter.Offset), nil
}

func (r *FakeAdjustmentRepo) ListBetween(from, to time.Time, warehouseID string) ([]*entity.Adjustment, error) {
	out := make([]*entity.Adjustment, 0)
	for _, adj := range r.S.Adjustments {
		if adj.CreatedAt.Before(from) || !adj.CreatedAt.Before(to) {
			continue
		}
		if warehouseID != "" && adj.WarehouseID != warehouseID {
			continue
		}
		cp := adj
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// FakeSequenceRepo implementa repository.SequenceRepository.
type FakeSequenceRepo struct{ S *FakeStore }

var _ repository.SequenceRepository = (*FakeSequenceRepo)(nil)

func (r *FakeSequenceRepo) Next(kind, period string) (int, error) {
	key := kind + "|" + period
	r.S.Sequences[key]++
	return r.S.Sequences[key], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escaneos, evidencias y master data
// ──────────────────────────────────────────────────────────────────────────────

// FakeSerialScanRepo implementa repository.SerialScanRepository.
type FakeSerialScanRepo struct{ S *FakeStore }

var _ repository.SerialScanRepository = (*FakeSerialScanRepo)(nil)

func (r *FakeSerialScanRepo) Create(scan *entity.SerialScan) error {
	r.S.Scans[scan.ID] = *scan
	return nil
}

func (r *FakeSerialScanRepo) ListByAudit(auditID string) ([]*entity.SerialScan, error) {
	out := make([]*entity.SerialScan, 0)
	for _, sc := range r.S.Scans {
		if sc.AuditID == auditID {
			cp := sc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScannedAt.Before(out[j].ScannedAt) })
	return out, nil
}

func (r *FakeSerialScanRepo) ListByDetail(detailID string) ([]*entity.SerialScan, error) {
	out := make([]*entity.SerialScan, 0)
	for _, sc := range r.S.Scans {
		if sc.AuditDetailID == detailID {
			cp := sc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScannedAt.Before(out[j].ScannedAt) })
	return out, nil
}

// FakeEvidenceRepo implementa repository.EvidenceRepository.
type FakeEvidenceRepo struct{ S *FakeStore }

var _ repository.EvidenceRepository = (*FakeEvidenceRepo)(nil)

func (r *FakeEvidenceRepo) Create(ev *entity.Evidence) error {
	r.S.Evidence[ev.ID] = *ev
	return nil
}

func (r *FakeEvidenceRepo) GetByID(id string) (*entity.Evidence, error) {
	ev, ok := r.S.Evidence[id]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (r *FakeEvidenceRepo) ListByAudit(auditID string) ([]*entity.Evidence, error) {
	out := make([]*entity.Evidence, 0)
	for _, ev := range r.S.Evidence {
		if ev.AuditID == auditID {
			cp := ev
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *FakeEvidenceRepo) Update(ev *entity.Evidence) error {
	if _, ok := r.S.Evidence[ev.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Evidence[ev.ID] = *ev
	return nil
}

func (r *FakeEvidenceRepo) Delete(id string) error {
	delete(r.S.Evidence, id)
	return nil
}

// FakeWarehouseRepo implementa repository.WarehouseRepository.
type FakeWarehouseRepo struct{ S *FakeStore }

var _ repository.WarehouseRepository = (*FakeWarehouseRepo)(nil)

func (r *FakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.S.Warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *FakeWarehouseRepo) GetShelf(shelfID string) (*entity.Shelf, error) {
	sh, ok := r.S.Shelves[shelfID]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (r *FakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(r.S.Warehouses))
	for _, w := range r.S.Warehouses {
		cp := w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

// FakeCategoryRepo implementa repository.CategoryRepository.
type FakeCategoryRepo struct{ S *FakeStore }

var _ repository.CategoryRepository = (*FakeCategoryRepo)(nil)

func (r *FakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.S.Categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *FakeCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.S.Categories))
	for _, c := range r.S.Categories {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

// FakeProductRepo implementa repository.ProductRepository.
type FakeProductRepo struct{ S *FakeStore }

var _ repository.ProductRepository = (*FakeProductRepo)(nil)

func (r *FakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.S.Products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *FakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.S.Products))
	for _, p := range r.S.Products {
		cp := p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return page(out, limit, offset), nil
}

// FakeMetricsRepo implementa repository.MetricsRepository.
type FakeMetricsRepo struct{ S *FakeStore }

var _ repository.MetricsRepository = (*FakeMetricsRepo)(nil)

func (r *FakeMetricsRepo) Upsert(_ context.Context, m *entity.AuditMetrics) error {
	r.S.Metrics[m.Period+"|"+m.WarehouseID] = *m
	return nil
}

func (r *FakeMetricsRepo) Get(_ context.Context, period, warehouseID string) (*entity.AuditMetrics, error) {
	m, ok := r.S.Metrics[period+"|"+warehouseID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *FakeMetricsRepo) ListByPeriod(_ context.Context, period string) ([]*entity.AuditMetrics, error) {
	out := make([]*entity.AuditMetrics, 0)
	for key, m := range r.S.Metrics {
		if strings.HasPrefix(key, period+"|") {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseID < out[j].WarehouseID })
	return out, nil
}

// FakeUserRepo implementa repository.UserRepository.
type FakeUserRepo struct{ S *FakeStore }

var _ repository.UserRepository = (*FakeUserRepo)(nil)

func (r *FakeUserRepo) Create(u *entity.User) error {
	for _, existing := range r.S.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.S.Users[u.ID] = *u
	return nil
}

func (r *FakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.S.Users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *FakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones y puertos externos
// ──────────────────────────────────────────────────────────────────────────────

// FakeTxRunner implementa los dos puertos de transacción. Antes de ejecutar
// el callback clona el almacén; si el callback falla restaura el clon, igual
// que el ROLLBACK real.
type FakeTxRunner struct{ S *FakeStore }

var _ audit.TxRunner = (*FakeTxRunner)(nil)
var _ adjustment.TxRunner = (*FakeTxRunner)(nil)

func (r *FakeTxRunner) Run(_ context.Context, fn func(
	auditRepo repository.AuditRepository,
	detailRepo repository.AuditDetailRepository,
	stockRepo repository.StockRepository,
	snapshotRepo repository.SnapshotRepository,
) error) error {
	saved := r.S.clone()
	err := fn(&FakeAuditRepo{r.S}, &FakeAuditDetailRepo{r.S}, &FakeStockRepo{r.S}, &FakeSnapshotRepo{r.S})
	if err != nil {
		r.S.restore(saved)
	}
	return err
}

func (r *FakeTxRunner) RunAdjustment(_ context.Context, fn func(
	adjRepo repository.AdjustmentRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	saved := r.S.clone()
	err := fn(&FakeAdjustmentRepo{r.S}, &FakeStockRepo{r.S}, &FakeMovementRepo{r.S}, &FakeSequenceRepo{r.S})
	if err != nil {
		r.S.restore(saved)
	}
	return err
}

// FakeSerialRegistry implementa audit.SerialRegistry sobre un mapa.
type FakeSerialRegistry struct {
	Serials map[string]audit.RegisteredSerial
}

var _ audit.SerialRegistry = (*FakeSerialRegistry)(nil)

func (r *FakeSerialRegistry) Lookup(serial string) (*audit.RegisteredSerial, error) {
	if r.Serials == nil {
		return nil, nil
	}
	reg, ok := r.Serials[serial]
	if !ok {
		return nil, nil
	}
	return &reg, nil
}

// FakeBlobStorage implementa audit.BlobStorage en memoria. FailDelete fuerza
// el fallo de Delete para probar la tolerancia del reemplazo de evidencia.
type FakeBlobStorage struct {
	Saved      map[string][]byte // clave URL
	Deleted    []string
	FailDelete bool
	saveCount  int
}

var _ audit.BlobStorage = (*FakeBlobStorage)(nil)

func (b *FakeBlobStorage) Save(_ context.Context, name, _ string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	if b.Saved == nil {
		b.Saved = map[string][]byte{}
	}
	b.saveCount++
	url := fmt.Sprintf("/files/%d-%s", b.saveCount, name)
	b.Saved[url] = data
	return url, nil
}

func (b *FakeBlobStorage) Delete(_ context.Context, url string) error {
	if b.FailDelete {
		return fmt.Errorf("blob %s no existe", url)
	}
	delete(b.Saved, url)
	b.Deleted = append(b.Deleted, url)
	return nil
}

// page aplica limit/offset como lo haría la consulta real; limit<=0 = todos.
func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return []T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
