package dto

import "time"

// ReportQuery filtros y formato de los reportes tabulares.
// Incluye la unión de filtros; cada reporte usa los que le corresponden.
type ReportQuery struct {
	DateQuery
	Format        string `query:"format"`
	Status        string `query:"status"`
	Area          string `query:"area"`
	TreatmentType string `query:"treatment_type"`
	LocationType  string `query:"location_type"`
}

// TabularReportResponse reporte tabular en formato JSON.
type TabularReportResponse struct {
	ReportType   string            `json:"report_type"`
	GeneratedAt  time.Time         `json:"generated_at"`
	Filters      map[string]string `json:"filters"`
	TotalRecords int               `json:"total_records"`
	Data         any               `json:"data"`
}

// MonthlyReportData cuerpo del reporte mensual.
type MonthlyReportData struct {
	Period       string                   `json:"period"`
	Inventory    InventoryStatsResponse   `json:"inventory"`
	Certificates CertificateStatsResponse `json:"certificates"`
	Treatments   TreatmentStatsResponse   `json:"treatments"`
}

// MonthlyReportResponse reporte mensual en formato JSON.
type MonthlyReportResponse struct {
	ReportType  string            `json:"report_type"`
	GeneratedAt time.Time         `json:"generated_at"`
	Period      string            `json:"period"`
	Data        MonthlyReportData `json:"data"`
}

// ReportTypeDTO entrada del catálogo de reportes.
type ReportTypeDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Endpoint    string   `json:"endpoint"`
	Filters     []string `json:"filters"`
}
