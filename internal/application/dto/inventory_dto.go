package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChemicalRequest alta o reemplazo completo de un producto químico.
type ChemicalRequest struct {
	ChemicalName    string           `json:"chemical_name" validate:"required,notblank,max=200"`
	Quantity        *decimal.Decimal `json:"quantity" validate:"required,min=0,max=99999999.99,decimal2"`
	Unit            string           `json:"unit" validate:"required,notblank,max=50"`
	Area            string           `json:"area" validate:"required,area"`
	Concentration   string           `json:"concentration" validate:"max=100"`
	Manufacturer    string           `json:"manufacturer" validate:"max=200"`
	LotNumber       string           `json:"lot_number" validate:"max=100"`
	ExpirationDate  string           `json:"expiration_date" validate:"omitempty,isodate"`
	StorageLocation string           `json:"storage_location" validate:"max=200"`
	Notes           string           `json:"notes"`
}

// DiscardRequest cuerpo opcional del descarte.
type DiscardRequest struct {
	Notes *string `json:"notes"`
}

// InventoryQuery filtros de GET /inventory y del reporte de inventario.
type InventoryQuery struct {
	DateQuery
	Area   string `query:"area"`
	Status string `query:"status"`
	Search string `query:"search"`
}

// ChemicalResponse salida de un producto químico.
type ChemicalResponse struct {
	ID               string          `json:"id"`
	ChemicalName     string          `json:"chemical_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	Concentration    string          `json:"concentration"`
	Manufacturer     string          `json:"manufacturer"`
	LotNumber        string          `json:"lot_number"`
	ExpirationDate   *string         `json:"expiration_date"`
	StorageLocation  string          `json:"storage_location"`
	Area             string          `json:"area"`
	Status           string          `json:"status"`
	RegisteredBy     *string         `json:"registered_by"`
	RegisteredByName *string         `json:"registered_by_name"`
	RegisteredAt     time.Time       `json:"registered_at"`
	DiscardedBy      *string         `json:"discarded_by"`
	DiscardedByName  *string         `json:"discarded_by_name"`
	DiscardedAt      *time.Time      `json:"discarded_at"`
	Notes            string          `json:"notes"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ChemicalEnvelope respuesta de alta, edición y descarte.
type ChemicalEnvelope struct {
	Message  string            `json:"message"`
	Chemical *ChemicalResponse `json:"chemical"`
}

// InventoryStatsResponse estadísticas del inventario.
type InventoryStatsResponse struct {
	TotalChemicals     int64            `json:"total_chemicals"`
	ActiveChemicals    int64            `json:"active_chemicals"`
	DiscardedChemicals int64            `json:"discarded_chemicals"`
	ExpiredChemicals   int64            `json:"expired_chemicals"`
	TotalQuantity      decimal.Decimal  `json:"total_quantity"`
	ByArea             map[string]int64 `json:"by_area"`
}
