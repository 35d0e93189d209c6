package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

const dashboardUpcoming = 5 // programaciones en el widget del dashboard

// DashboardUseCase arma el resumen de la pantalla principal.
type DashboardUseCase struct {
	chemicals    repository.ChemicalRepository
	certificates repository.CertificateRepository
	treatments   repository.TreatmentRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	chemicals repository.ChemicalRepository,
	certificates repository.CertificateRepository,
	treatments repository.TreatmentRepository,
) *DashboardUseCase {
	return &DashboardUseCase{chemicals: chemicals, certificates: certificates, treatments: treatments}
}

// GetSummary cuatro consultas en paralelo:
//  1. estadísticas del inventario completo
//  2. estadísticas de programaciones (con vencidas a hoy)
//  3. certificados del mes en curso
//  4. próximas programaciones pendientes
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	day := today()
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)

	var (
		inv      *entity.InventoryStats
		trt      *entity.TreatmentStats
		cert     *entity.CertificateStats
		upcoming []*entity.TreatmentSchedule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if inv, err = uc.chemicals.Stats(gctx, repository.DateRange{}); err != nil {
			return fmt.Errorf("dashboard: inventario: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if trt, err = uc.treatments.Stats(gctx, repository.DateRange{}, day); err != nil {
			return fmt.Errorf("dashboard: tratamientos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if cert, err = uc.certificates.Stats(gctx, repository.DateRange{From: &monthStart, To: &day}); err != nil {
			return fmt.Errorf("dashboard: certificados: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if upcoming, err = uc.treatments.Upcoming(gctx, day, dashboardUpcoming); err != nil {
			return fmt.Errorf("dashboard: próximos tratamientos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		Inventory:             dto.FromInventoryStats(inv),
		Treatments:            dto.FromTreatmentStats(trt),
		CertificatesThisMonth: cert.Total,
		UpcomingTreatments:    dto.FromTreatments(upcoming),
		DateLabel:             monthLabel(now),
	}, nil
}
