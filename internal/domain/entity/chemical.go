package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryStatus estado de un producto químico.
type InventoryStatus string

const (
	InventoryActive    InventoryStatus = "active"
	InventoryDiscarded InventoryStatus = "discarded"
	// InventoryExpired no se persiste: se deriva de expiration_date para registros activos.
	InventoryExpired InventoryStatus = "expired"
)

// ParseInventoryStatus valida el filtro/estado recibido.
func ParseInventoryStatus(s string) (InventoryStatus, bool) {
	switch st := InventoryStatus(s); st {
	case InventoryActive, InventoryDiscarded, InventoryExpired:
		return st, true
	}
	return "", false
}

// ChemicalItem producto químico registrado en un área.
type ChemicalItem struct {
	ID               string
	ChemicalName     string
	Quantity         decimal.Decimal
	Unit             string
	Concentration    string
	Manufacturer     string
	LotNumber        string
	ExpirationDate   *time.Time
	StorageLocation  string
	Area             Area
	Status           InventoryStatus // estado efectivo (con expired derivado)
	RegisteredBy     string
	RegisteredByName string
	RegisteredAt     time.Time
	DiscardedBy      string
	DiscardedByName  string
	DiscardedAt      *time.Time
	Notes            string
	UpdatedAt        time.Time
}

// EffectiveStatus aplica la expiración por fecha a un registro activo.
func EffectiveStatus(stored InventoryStatus, expiration *time.Time, today time.Time) InventoryStatus {
	if stored != InventoryActive || expiration == nil {
		return stored
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ey, em, ed := expiration.Date()
	if time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC).Before(start) {
		return InventoryExpired
	}
	return stored
}

// InventoryStats agregados del inventario.
type InventoryStats struct {
	Total         int64
	Active        int64
	Discarded     int64
	Expired       int64
	TotalQuantity decimal.Decimal
	ByArea        map[Area]int64
}
