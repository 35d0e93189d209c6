package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CertificateRequest emisión o reemplazo completo de un certificado.
type CertificateRequest struct {
	TreatmentType       string           `json:"treatment_type" validate:"required,notblank,max=100"`
	ProductName         string           `json:"product_name" validate:"required,notblank,max=200"`
	ApplicationLocation string           `json:"application_location" validate:"required,notblank,max=200"`
	ResponsiblePerson   string           `json:"responsible_person" validate:"required,notblank,max=100"`
	ApplicationDate     string           `json:"application_date" validate:"required,isodate"`
	ApplicationTime     string           `json:"application_time" validate:"required,clock"`
	ChemicalUsed        string           `json:"chemical_used" validate:"max=200"`
	ConcentrationUsed   string           `json:"concentration_used" validate:"max=100"`
	QuantityUsed        *decimal.Decimal `json:"quantity_used" validate:"omitempty,min=0,max=99999999.99,decimal2"`
	UnitUsed            string           `json:"unit_used" validate:"max=50"`
	WeatherConditions   string           `json:"weather_conditions" validate:"max=100"`
	Temperature         *decimal.Decimal `json:"temperature" validate:"omitempty,min=-999.99,max=999.99,decimal2"`
	Humidity            *decimal.Decimal `json:"humidity" validate:"omitempty,min=0,max=100,decimal2"`
	Observations        string           `json:"observations"`
}

// CertificateQuery filtros de GET /certificates y del reporte de certificados.
type CertificateQuery struct {
	DateQuery
	TreatmentType string `query:"treatment_type"`
	Search        string `query:"search"`
}

// CertificateResponse salida de un certificado.
type CertificateResponse struct {
	ID                  string           `json:"id"`
	CertificateNumber   string           `json:"certificate_number"`
	TreatmentType       string           `json:"treatment_type"`
	ProductName         string           `json:"product_name"`
	ApplicationLocation string           `json:"application_location"`
	ResponsiblePerson   string           `json:"responsible_person"`
	ApplicationDate     string           `json:"application_date"`
	ApplicationTime     string           `json:"application_time"`
	ChemicalUsed        string           `json:"chemical_used"`
	ConcentrationUsed   string           `json:"concentration_used"`
	QuantityUsed        *decimal.Decimal `json:"quantity_used"`
	UnitUsed            string           `json:"unit_used"`
	WeatherConditions   string           `json:"weather_conditions"`
	Temperature         *decimal.Decimal `json:"temperature"`
	Humidity            *decimal.Decimal `json:"humidity"`
	Observations        string           `json:"observations"`
	CreatedBy           *string          `json:"created_by"`
	CreatedByName       *string          `json:"created_by_name"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// CertificateEnvelope respuesta de alta y edición.
type CertificateEnvelope struct {
	Message     string               `json:"message"`
	Certificate *CertificateResponse `json:"certificate"`
}

// CertificateStatsResponse estadísticas de certificados.
type CertificateStatsResponse struct {
	TotalCertificates     int64            `json:"total_certificates"`
	CertificatesThisMonth int64            `json:"certificates_this_month"`
	ByTreatmentType       map[string]int64 `json:"by_treatment_type"`
}
