package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// FromChemical convierte la entidad en su representación HTTP.
func FromChemical(c *entity.ChemicalItem) *ChemicalResponse {
	if c == nil {
		return nil
	}
	return &ChemicalResponse{
		ID:               c.ID,
		ChemicalName:     c.ChemicalName,
		Quantity:         c.Quantity,
		Unit:             c.Unit,
		Concentration:    c.Concentration,
		Manufacturer:     c.Manufacturer,
		LotNumber:        c.LotNumber,
		ExpirationDate:   datePtr(c.ExpirationDate),
		StorageLocation:  c.StorageLocation,
		Area:             string(c.Area),
		Status:           string(c.Status),
		RegisteredBy:     strPtr(c.RegisteredBy),
		RegisteredByName: strPtr(c.RegisteredByName),
		RegisteredAt:     c.RegisteredAt,
		DiscardedBy:      strPtr(c.DiscardedBy),
		DiscardedByName:  strPtr(c.DiscardedByName),
		DiscardedAt:      c.DiscardedAt,
		Notes:            c.Notes,
		UpdatedAt:        c.UpdatedAt,
	}
}

// FromChemicals convierte un listado.
func FromChemicals(list []*entity.ChemicalItem) []ChemicalResponse {
	out := make([]ChemicalResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *FromChemical(c))
	}
	return out
}

// FromCertificate convierte la entidad en su representación HTTP.
func FromCertificate(c *entity.Certificate) *CertificateResponse {
	if c == nil {
		return nil
	}
	return &CertificateResponse{
		ID:                  c.ID,
		CertificateNumber:   c.CertificateNumber,
		TreatmentType:       c.TreatmentType,
		ProductName:         c.ProductName,
		ApplicationLocation: c.ApplicationLocation,
		ResponsiblePerson:   c.ResponsiblePerson,
		ApplicationDate:     c.ApplicationDate.Format(dateLayout),
		ApplicationTime:     c.ApplicationTime,
		ChemicalUsed:        c.ChemicalUsed,
		ConcentrationUsed:   c.ConcentrationUsed,
		QuantityUsed:        nullDecimalPtr(c.QuantityUsed),
		UnitUsed:            c.UnitUsed,
		WeatherConditions:   c.WeatherConditions,
		Temperature:         nullDecimalPtr(c.Temperature),
		Humidity:            nullDecimalPtr(c.Humidity),
		Observations:        c.Observations,
		CreatedBy:           strPtr(c.CreatedBy),
		CreatedByName:       strPtr(c.CreatedByName),
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// FromCertificates convierte un listado.
func FromCertificates(list []*entity.Certificate) []CertificateResponse {
	out := make([]CertificateResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *FromCertificate(c))
	}
	return out
}

// FromTreatment convierte la entidad en su representación HTTP.
func FromTreatment(t *entity.TreatmentSchedule) *TreatmentResponse {
	if t == nil {
		return nil
	}
	return &TreatmentResponse{
		ID:                t.ID,
		ScheduleNumber:    t.ScheduleNumber,
		TreatmentType:     t.TreatmentType,
		LocationType:      string(t.LocationType),
		LocationName:      t.LocationName,
		ChemicalName:      t.ChemicalName,
		QuantityPlanned:   t.QuantityPlanned,
		Unit:              t.Unit,
		ScheduledDate:     t.ScheduledDate.Format(dateLayout),
		ScheduledTime:     t.ScheduledTime,
		ResponsiblePerson: t.ResponsiblePerson,
		AreaSize:          nullDecimalPtr(t.AreaSize),
		AreaUnit:          t.AreaUnit,
		Status:            string(t.Status),
		Priority:          string(t.Priority),
		Notes:             t.Notes,
		CreatedBy:         strPtr(t.CreatedBy),
		CreatedByName:     strPtr(t.CreatedByName),
		CompletedBy:       strPtr(t.CompletedBy),
		CompletedByName:   strPtr(t.CompletedByName),
		CompletedAt:       t.CompletedAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// FromTreatments convierte un listado.
func FromTreatments(list []*entity.TreatmentSchedule) []TreatmentResponse {
	out := make([]TreatmentResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *FromTreatment(t))
	}
	return out
}

// FromUser convierte la entidad sin exponer el hash.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: nonNilPermissions(u.Permissions),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// FromUsers convierte un listado.
func FromUsers(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *FromUser(u))
	}
	return out
}

// NewSessionUser datos del usuario autenticado.
func NewSessionUser(u *entity.User) SessionUser {
	return SessionUser{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: nonNilPermissions(u.Permissions),
	}
}

// FromInventoryStats convierte los agregados.
func FromInventoryStats(s *entity.InventoryStats) InventoryStatsResponse {
	byArea := make(map[string]int64, len(entity.Areas))
	for _, a := range entity.Areas {
		byArea[string(a)] = s.ByArea[a]
	}
	return InventoryStatsResponse{
		TotalChemicals:     s.Total,
		ActiveChemicals:    s.Active,
		DiscardedChemicals: s.Discarded,
		ExpiredChemicals:   s.Expired,
		TotalQuantity:      s.TotalQuantity,
		ByArea:             byArea,
	}
}

// FromCertificateStats convierte los agregados.
func FromCertificateStats(s *entity.CertificateStats) CertificateStatsResponse {
	by := s.ByTreatmentType
	if by == nil {
		by = map[string]int64{}
	}
	return CertificateStatsResponse{
		TotalCertificates:     s.Total,
		CertificatesThisMonth: s.ThisMonth,
		ByTreatmentType:       by,
	}
}

// FromTreatmentStats convierte los agregados.
func FromTreatmentStats(s *entity.TreatmentStats) TreatmentStatsResponse {
	return TreatmentStatsResponse{
		TotalTreatments:      s.Total,
		ScheduledTreatments:  s.Scheduled,
		InProgressTreatments: s.InProgress,
		CompletedTreatments:  s.Completed,
		CancelledTreatments:  s.Cancelled,
		OverdueTreatments:    s.Overdue,
	}
}

// FromUserStats convierte los agregados.
func FromUserStats(s *entity.UserStats) UserStatsResponse {
	return UserStatsResponse{
		TotalUsers:    s.Total,
		ActiveUsers:   s.Active,
		InactiveUsers: s.Inactive,
		AdminUsers:    s.Admins,
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func nullDecimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func nonNilPermissions(p entity.Permissions) entity.Permissions {
	if p == nil {
		return entity.Permissions{}
	}
	return p
}
