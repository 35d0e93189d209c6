package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

var _ repository.ChemicalRepository = (*ChemicalRepo)(nil)

// estado efectivo: un registro activo con fecha de vencimiento pasada se reporta como expired
const chemicalStatusExpr = `CASE WHEN ci.status = 'active' AND ci.expiration_date < CURRENT_DATE THEN 'expired' ELSE ci.status END`

const chemicalSelect = `
	SELECT ci.id::text, ci.chemical_name, ci.quantity, ci.unit,
	       COALESCE(ci.concentration, ''), COALESCE(ci.manufacturer, ''), COALESCE(ci.lot_number, ''),
	       ci.expiration_date, COALESCE(ci.storage_location, ''), ci.area, ` + chemicalStatusExpr + `,
	       COALESCE(ci.registered_by::text, ''), COALESCE(ru.full_name, ''), ci.registered_at,
	       COALESCE(ci.discarded_by::text, ''), COALESCE(du.full_name, ''), ci.discarded_at,
	       COALESCE(ci.notes, ''), ci.updated_at
	FROM chemical_inventory ci
	LEFT JOIN users ru ON ru.id = ci.registered_by
	LEFT JOIN users du ON du.id = ci.discarded_by`

// ChemicalRepo implementación del puerto ChemicalRepository sobre PostgreSQL.
type ChemicalRepo struct {
	q Querier
}

// NewChemicalRepository construye el adaptador. Acepta pool o tx (Querier).
func NewChemicalRepository(q Querier) *ChemicalRepo {
	return &ChemicalRepo{q: q}
}

func scanChemical(row pgx.Row) (*entity.ChemicalItem, error) {
	var c entity.ChemicalItem
	var area, status string
	err := row.Scan(
		&c.ID, &c.ChemicalName, &c.Quantity, &c.Unit,
		&c.Concentration, &c.Manufacturer, &c.LotNumber,
		&c.ExpirationDate, &c.StorageLocation, &area, &status,
		&c.RegisteredBy, &c.RegisteredByName, &c.RegisteredAt,
		&c.DiscardedBy, &c.DiscardedByName, &c.DiscardedAt,
		&c.Notes, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Area = entity.Area(area)
	c.Status = entity.InventoryStatus(status)
	return &c, nil
}

// List lista el inventario filtrado, más recientes primero.
func (r *ChemicalRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.ChemicalItem, error) {
	w := &where{}
	w.dateRange("ci.registered_at", f.DateRange)
	if f.Area != "" {
		w.add("ci.area = ?", string(f.Area))
	}
	if f.Status != "" {
		w.add(chemicalStatusExpr+" = ?", string(f.Status))
	}
	w.search(f.Search, "ci.chemical_name", "ci.manufacturer", "ci.lot_number")

	rows, err := r.q.Query(ctx, chemicalSelect+w.sql()+" ORDER BY ci.registered_at DESC", w.args...)
	if err != nil {
		return nil, fmt.Errorf("list chemicals: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChemicalItem
	for rows.Next() {
		c, err := scanChemical(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chemical: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por ID.
func (r *ChemicalRepo) GetByID(ctx context.Context, id string) (*entity.ChemicalItem, error) {
	c, err := scanChemical(r.q.QueryRow(ctx, chemicalSelect+" WHERE ci.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chemical: %w", err)
	}
	return c, nil
}

// Create persiste un producto nuevo.
func (r *ChemicalRepo) Create(ctx context.Context, c *entity.ChemicalItem) error {
	query := `
		INSERT INTO chemical_inventory (id, chemical_name, quantity, unit, concentration, manufacturer, lot_number,
			expiration_date, storage_location, area, status, registered_by, registered_at, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ChemicalName, c.Quantity, c.Unit,
		nullIfEmpty(c.Concentration), nullIfEmpty(c.Manufacturer), nullIfEmpty(c.LotNumber),
		c.ExpirationDate, nullIfEmpty(c.StorageLocation), string(c.Area), string(c.Status),
		nullIfEmpty(c.RegisteredBy), c.RegisteredAt, nullIfEmpty(c.Notes), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chemical: %w", err)
	}
	return nil
}

// Update reemplaza los campos editables.
func (r *ChemicalRepo) Update(ctx context.Context, c *entity.ChemicalItem) error {
	query := `
		UPDATE chemical_inventory SET
			chemical_name = $2, quantity = $3, unit = $4, concentration = $5, manufacturer = $6,
			lot_number = $7, expiration_date = $8, storage_location = $9, area = $10, notes = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.ChemicalName, c.Quantity, c.Unit, nullIfEmpty(c.Concentration), nullIfEmpty(c.Manufacturer),
		nullIfEmpty(c.LotNumber), c.ExpirationDate, nullIfEmpty(c.StorageLocation), string(c.Area),
		nullIfEmpty(c.Notes), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update chemical: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Discard marca como descartado un registro activo.
func (r *ChemicalRepo) Discard(ctx context.Context, id, discardedBy string, notes *string, at time.Time) error {
	query := `
		UPDATE chemical_inventory SET
			status = 'discarded', discarded_by = $2, discarded_at = $3, notes = COALESCE($4, notes), updated_at = $3
		WHERE id = $1 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query, id, nullIfEmpty(discardedBy), at, notes)
	if err != nil {
		return fmt.Errorf("discard chemical: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el registro.
func (r *ChemicalRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM chemical_inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete chemical: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats conteos por estado efectivo y por área; la cantidad total suma solo registros activos.
func (r *ChemicalRepo) Stats(ctx context.Context, dr repository.DateRange) (*entity.InventoryStats, error) {
	w := &where{}
	w.dateRange("ci.registered_at", dr)

	st := &entity.InventoryStats{ByArea: map[entity.Area]int64{}}
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE ` + chemicalStatusExpr + ` = 'active'),
		       COUNT(*) FILTER (WHERE ci.status = 'discarded'),
		       COUNT(*) FILTER (WHERE ` + chemicalStatusExpr + ` = 'expired'),
		       COALESCE(SUM(ci.quantity) FILTER (WHERE ci.status = 'active'), 0)
		FROM chemical_inventory ci` + w.sql()
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, w.args...).Scan(&st.Total, &st.Active, &st.Discarded, &st.Expired, &total); err != nil {
		return nil, fmt.Errorf("chemical stats: %w", err)
	}
	st.TotalQuantity = total

	rows, err := r.q.Query(ctx, `SELECT ci.area, COUNT(*) FROM chemical_inventory ci`+w.sql()+` GROUP BY ci.area`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("chemical stats by area: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var area string
		var n int64
		if err := rows.Scan(&area, &n); err != nil {
			return nil, fmt.Errorf("scan area stats: %w", err)
		}
		st.ByArea[entity.Area(area)] = n
	}
	return st, rows.Err()
}
