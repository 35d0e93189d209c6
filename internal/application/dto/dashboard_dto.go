package dto

// DashboardSummaryDTO resumen para la pantalla principal.
type DashboardSummaryDTO struct {
	Inventory             InventoryStatsResponse `json:"inventory"`
	Treatments            TreatmentStatsResponse `json:"treatments"`
	CertificatesThisMonth int64                  `json:"certificates_this_month"`
	UpcomingTreatments    []TreatmentResponse    `json:"upcoming_treatments"`
	DateLabel             string                 `json:"date_label"` // ej. "Febrero 2026"
}
