package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Certificate certificado de tratamiento cuarentenario. No tiene estado: existir implica emitido.
type Certificate struct {
	ID                  string
	CertificateNumber   string // CERT-YYYYMMDD-NNN
	TreatmentType       string
	ProductName         string
	ApplicationLocation string
	ResponsiblePerson   string
	ApplicationDate     time.Time
	ApplicationTime     string // HH:MM
	ChemicalUsed        string
	ConcentrationUsed   string
	QuantityUsed        decimal.NullDecimal
	UnitUsed            string
	WeatherConditions   string
	Temperature         decimal.NullDecimal
	Humidity            decimal.NullDecimal
	Observations        string
	CreatedBy           string
	CreatedByName       string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// CertificateStats agregados de certificados.
type CertificateStats struct {
	Total           int64
	ThisMonth       int64
	ByTreatmentType map[string]int64
}
