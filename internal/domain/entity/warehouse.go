package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Shelf representa un estante/ubicación dentro de una bodega.
type Shelf struct {
	ID          string
	WarehouseID string
	Code        string
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
