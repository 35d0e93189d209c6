package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

var _ repository.CertificateRepository = (*CertificateRepo)(nil)

const certificateSelect = `
	SELECT tc.id::text, tc.certificate_number, tc.treatment_type, tc.product_name, tc.application_location,
	       tc.responsible_person, tc.application_date, to_char(tc.application_time, 'HH24:MI'),
	       COALESCE(tc.chemical_used, ''), COALESCE(tc.concentration_used, ''), tc.quantity_used,
	       COALESCE(tc.unit_used, ''), COALESCE(tc.weather_conditions, ''), tc.temperature, tc.humidity,
	       COALESCE(tc.observations, ''), COALESCE(tc.created_by::text, ''), COALESCE(u.full_name, ''),
	       tc.created_at, tc.updated_at
	FROM treatment_certificates tc
	LEFT JOIN users u ON u.id = tc.created_by`

// CertificateRepo implementación del puerto CertificateRepository sobre PostgreSQL.
type CertificateRepo struct {
	q Querier
}

// NewCertificateRepository construye el adaptador. Acepta pool o tx (Querier).
func NewCertificateRepository(q Querier) *CertificateRepo {
	return &CertificateRepo{q: q}
}

func scanCertificate(row pgx.Row) (*entity.Certificate, error) {
	var c entity.Certificate
	err := row.Scan(
		&c.ID, &c.CertificateNumber, &c.TreatmentType, &c.ProductName, &c.ApplicationLocation,
		&c.ResponsiblePerson, &c.ApplicationDate, &c.ApplicationTime,
		&c.ChemicalUsed, &c.ConcentrationUsed, &c.QuantityUsed,
		&c.UnitUsed, &c.WeatherConditions, &c.Temperature, &c.Humidity,
		&c.Observations, &c.CreatedBy, &c.CreatedByName,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List lista certificados filtrados, más recientes primero.
func (r *CertificateRepo) List(ctx context.Context, f repository.CertificateFilter) ([]*entity.Certificate, error) {
	w := &where{}
	w.dateRange("tc.application_date", f.DateRange)
	if f.TreatmentType != "" {
		w.add("tc.treatment_type ILIKE ?", escapeLike(f.TreatmentType))
	}
	w.search(f.Search, "tc.certificate_number", "tc.product_name", "tc.responsible_person")

	rows, err := r.q.Query(ctx, certificateSelect+w.sql()+" ORDER BY tc.created_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	defer rows.Close()
	var list []*entity.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan certificate: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene un certificado por ID.
func (r *CertificateRepo) GetByID(ctx context.Context, id string) (*entity.Certificate, error) {
	c, err := scanCertificate(r.q.QueryRow(ctx, certificateSelect+" WHERE tc.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	return c, nil
}

// Create persiste un certificado. El número es UNIQUE: colisión → domain.ErrDuplicate.
func (r *CertificateRepo) Create(ctx context.Context, c *entity.Certificate) error {
	query := `
		INSERT INTO treatment_certificates (id, certificate_number, treatment_type, product_name, application_location,
			responsible_person, application_date, application_time, chemical_used, concentration_used, quantity_used,
			unit_used, weather_conditions, temperature, humidity, observations, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::time, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CertificateNumber, c.TreatmentType, c.ProductName, c.ApplicationLocation,
		c.ResponsiblePerson, dateOnly(c.ApplicationDate), c.ApplicationTime,
		nullIfEmpty(c.ChemicalUsed), nullIfEmpty(c.ConcentrationUsed), c.QuantityUsed,
		nullIfEmpty(c.UnitUsed), nullIfEmpty(c.WeatherConditions), c.Temperature, c.Humidity,
		nullIfEmpty(c.Observations), nullIfEmpty(c.CreatedBy), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert certificate: %w", err)
	}
	return nil
}

// Update reemplaza los campos editables; número y emisor se conservan.
func (r *CertificateRepo) Update(ctx context.Context, c *entity.Certificate) error {
	query := `
		UPDATE treatment_certificates SET
			treatment_type = $2, product_name = $3, application_location = $4, responsible_person = $5,
			application_date = $6::date, application_time = $7::time, chemical_used = $8, concentration_used = $9,
			quantity_used = $10, unit_used = $11, weather_conditions = $12, temperature = $13, humidity = $14,
			observations = $15, updated_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.TreatmentType, c.ProductName, c.ApplicationLocation, c.ResponsiblePerson,
		dateOnly(c.ApplicationDate), c.ApplicationTime, nullIfEmpty(c.ChemicalUsed), nullIfEmpty(c.ConcentrationUsed),
		c.QuantityUsed, nullIfEmpty(c.UnitUsed), nullIfEmpty(c.WeatherConditions), c.Temperature, c.Humidity,
		nullIfEmpty(c.Observations), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el certificado.
func (r *CertificateRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM treatment_certificates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats total y emitidos en el mes en curso dentro del rango, más el desglose por tipo.
func (r *CertificateRepo) Stats(ctx context.Context, dr repository.DateRange) (*entity.CertificateStats, error) {
	w := &where{}
	w.dateRange("tc.application_date", dr)

	st := &entity.CertificateStats{ByTreatmentType: map[string]int64{}}
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE date_trunc('month', tc.created_at) = date_trunc('month', NOW()))
		FROM treatment_certificates tc` + w.sql()
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&st.Total, &st.ThisMonth); err != nil {
		return nil, fmt.Errorf("certificate stats: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT tc.treatment_type, COUNT(*) FROM treatment_certificates tc`+w.sql()+` GROUP BY tc.treatment_type`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("certificate stats by type: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t string
		var n int64
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan certificate type stats: %w", err)
		}
		st.ByTreatmentType[t] = n
	}
	return st, rows.Err()
}
