// Package analytics contiene los reportes (tabulares y mensual) y el resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// Format formato de salida de un reporte.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

const (
	contentTypePDF = "application/pdf"
	contentTypeXML = "application/xml"
)

// Output resultado de un reporte: JSON para serializar o un archivo binario.
type Output struct {
	JSON        any
	Body        []byte
	ContentType string
	Filename    string
}

// ReportUseCase genera los reportes del sistema.
type ReportUseCase struct {
	chemicals    repository.ChemicalRepository
	certificates repository.CertificateRepository
	treatments   repository.TreatmentRepository
	renderer     DocumentRenderer
	exporter     XMLExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	chemicals repository.ChemicalRepository,
	certificates repository.CertificateRepository,
	treatments repository.TreatmentRepository,
	renderer DocumentRenderer,
	exporter XMLExporter,
) *ReportUseCase {
	return &ReportUseCase{
		chemicals:    chemicals,
		certificates: certificates,
		treatments:   treatments,
		renderer:     renderer,
		exporter:     exporter,
	}
}

// Types catálogo de reportes disponibles.
func (uc *ReportUseCase) Types() []dto.ReportTypeDTO {
	return []dto.ReportTypeDTO{
		{
			ID:          "inventory",
			Name:        "Reporte de Inventario",
			Description: "Reporte detallado del inventario de productos químicos",
			Endpoint:    "/api/reports/inventory",
			Filters:     []string{"start_date", "end_date", "status"},
		},
		{
			ID:          "certificates",
			Name:        "Reporte de Certificados",
			Description: "Reporte de certificados de tratamiento generados",
			Endpoint:    "/api/reports/certificates",
			Filters:     []string{"start_date", "end_date", "treatment_type"},
		},
		{
			ID:          "treatments",
			Name:        "Reporte de Tratamientos",
			Description: "Reporte de programación de tratamientos químicos",
			Endpoint:    "/api/reports/treatments",
			Filters:     []string{"start_date", "end_date", "status", "location_type"},
		},
		{
			ID:          "monthly",
			Name:        "Reporte Mensual",
			Description: "Reporte mensual comprehensivo de todas las actividades",
			Endpoint:    "/api/reports/monthly/:year/:month",
			Filters:     []string{"year", "month"},
		},
	}
}

// parseFormat pdf por defecto; xml solo en reportes tabulares.
func parseFormat(s string, allowXML bool) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatJSON:
		return f, nil
	case FormatXML:
		if allowXML {
			return f, nil
		}
	}
	allowed := "pdf, json"
	if allowXML {
		allowed += ", xml"
	}
	return "", domain.NewValidationError(domain.Violation{Field: "format", Message: "debe ser uno de: " + allowed})
}

func echoFilters(q dto.ReportQuery, extra map[string]string) map[string]string {
	out := map[string]string{}
	if v := q.From(); v != "" {
		out["start_date"] = v
	}
	if v := q.To(); v != "" {
		out["end_date"] = v
	}
	for k, v := range extra {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Inventory reporte del inventario químico (fecha de registro, estado, área).
func (uc *ReportUseCase) Inventory(ctx context.Context, q dto.ReportQuery) (*Output, error) {
	format, err := parseFormat(q.Format, true)
	if err != nil {
		return nil, err
	}
	f, err := usecase.BuildInventoryFilter(dto.InventoryQuery{DateQuery: q.DateQuery, Status: q.Status, Area: q.Area})
	if err != nil {
		return nil, err
	}
	items, err := uc.chemicals.List(ctx, f)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	doc := &TabularDocument{
		Kind:        "inventory",
		Title:       "REPORTE DE INVENTARIO QUÍMICO",
		CountLabel:  "Total de registros",
		GeneratedAt: now,
		PeriodFrom:  q.From(),
		PeriodTo:    q.To(),
		Filters:     echoFilters(q, map[string]string{"status": q.Status, "area": q.Area}),
		Columns: []Column{
			{Key: "registered_at", Header: "Fecha", Span: 2},
			{Key: "chemical_name", Header: "Producto", Span: 3, MaxChars: 15},
			{Key: "quantity", Header: "Cantidad", Span: 1},
			{Key: "status", Header: "Estado", Span: 2},
			{Key: "registered_by", Header: "Registrado por", Span: 2},
			{Key: "storage_location", Header: "Ubicación", Span: 2},
		},
	}
	for _, it := range items {
		doc.Rows = append(doc.Rows, []string{
			it.RegisteredAt.Format("02/01/2006"),
			it.ChemicalName,
			it.Quantity.String() + " " + it.Unit,
			string(it.Status),
			orNA(it.RegisteredByName),
			orNA(it.StorageLocation),
		})
	}
	return uc.output(ctx, format, doc, "inventario", func() any { return dto.FromChemicals(items) })
}

// Certificates reporte de certificados emitidos (fecha de aplicación, tipo de tratamiento).
func (uc *ReportUseCase) Certificates(ctx context.Context, q dto.ReportQuery) (*Output, error) {
	format, err := parseFormat(q.Format, true)
	if err != nil {
		return nil, err
	}
	f, err := usecase.BuildCertificateFilter(dto.CertificateQuery{DateQuery: q.DateQuery, TreatmentType: q.TreatmentType})
	if err != nil {
		return nil, err
	}
	list, err := uc.certificates.List(ctx, f)
	if err != nil {
		return nil, err
	}
	doc := &TabularDocument{
		Kind:        "certificates",
		Title:       "REPORTE DE CERTIFICADOS DE TRATAMIENTO",
		CountLabel:  "Total de certificados",
		GeneratedAt: time.Now(),
		PeriodFrom:  q.From(),
		PeriodTo:    q.To(),
		Filters:     echoFilters(q, map[string]string{"treatment_type": q.TreatmentType}),
		Columns: []Column{
			{Key: "application_date", Header: "Fecha", Span: 2},
			{Key: "treatment_type", Header: "Tipo Tratamiento", Span: 3, MaxChars: 15},
			{Key: "product_name", Header: "Producto", Span: 2, MaxChars: 15},
			{Key: "responsible_person", Header: "Responsable", Span: 2, MaxChars: 15},
			{Key: "application_location", Header: "Ubicación", Span: 3, MaxChars: 15},
		},
	}
	for _, c := range list {
		doc.Rows = append(doc.Rows, []string{
			c.ApplicationDate.Format("02/01/2006"),
			c.TreatmentType,
			c.ProductName,
			c.ResponsiblePerson,
			c.ApplicationLocation,
		})
	}
	return uc.output(ctx, format, doc, "certificados", func() any { return dto.FromCertificates(list) })
}

// Treatments reporte de programaciones (fecha programada, estado, tipo de ubicación).
func (uc *ReportUseCase) Treatments(ctx context.Context, q dto.ReportQuery) (*Output, error) {
	format, err := parseFormat(q.Format, true)
	if err != nil {
		return nil, err
	}
	f, err := usecase.BuildTreatmentFilter(dto.TreatmentQuery{
		DateQuery:     q.DateQuery,
		Status:        q.Status,
		LocationType:  q.LocationType,
		TreatmentType: q.TreatmentType,
	})
	if err != nil {
		return nil, err
	}
	list, err := uc.treatments.List(ctx, f)
	if err != nil {
		return nil, err
	}
	doc := &TabularDocument{
		Kind:        "treatments",
		Title:       "REPORTE DE PROGRAMACIÓN DE TRATAMIENTOS",
		CountLabel:  "Total de programaciones",
		GeneratedAt: time.Now(),
		PeriodFrom:  q.From(),
		PeriodTo:    q.To(),
		Filters: echoFilters(q, map[string]string{
			"status":         q.Status,
			"location_type":  q.LocationType,
			"treatment_type": q.TreatmentType,
		}),
		Columns: []Column{
			{Key: "scheduled_date", Header: "Fecha", Span: 2},
			{Key: "treatment_type", Header: "Tipo", Span: 2, MaxChars: 12},
			{Key: "status", Header: "Estado", Span: 2},
			{Key: "responsible_person", Header: "Responsable", Span: 2, MaxChars: 12},
			{Key: "location_name", Header: "Ubicación", Span: 2, MaxChars: 12},
			{Key: "priority", Header: "Prioridad", Span: 2},
		},
	}
	for _, t := range list {
		doc.Rows = append(doc.Rows, []string{
			t.ScheduledDate.Format("02/01/2006"),
			t.TreatmentType,
			string(t.Status),
			t.ResponsiblePerson,
			t.LocationName,
			string(t.Priority),
		})
	}
	return uc.output(ctx, format, doc, "tratamientos", func() any { return dto.FromTreatments(list) })
}

func (uc *ReportUseCase) output(ctx context.Context, format Format, doc *TabularDocument, slug string, data func() any) (*Output, error) {
	stamp := doc.GeneratedAt.Format(time.DateOnly)
	switch format {
	case FormatJSON:
		return &Output{JSON: dto.TabularReportResponse{
			ReportType:   doc.Kind,
			GeneratedAt:  doc.GeneratedAt,
			Filters:      doc.Filters,
			TotalRecords: len(doc.Rows),
			Data:         data(),
		}}, nil
	case FormatXML:
		body, err := uc.exporter.ExportTabular(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("reporte %s xml: %w", doc.Kind, err)
		}
		return &Output{Body: body, ContentType: contentTypeXML, Filename: fmt.Sprintf("reporte-%s-%s.xml", slug, stamp)}, nil
	default:
		body, err := uc.renderer.RenderTabular(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("reporte %s pdf: %w", doc.Kind, err)
		}
		return &Output{Body: body, ContentType: contentTypePDF, Filename: fmt.Sprintf("reporte-%s-%s.pdf", slug, stamp)}, nil
	}
}

// Monthly reporte mensual: las tres estadísticas del mes se consultan en paralelo.
func (uc *ReportUseCase) Monthly(ctx context.Context, yearParam, monthParam, formatParam string) (*Output, error) {
	format, err := parseFormat(formatParam, false)
	if err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < 1900 || year > 9999 {
		verr.Add("year", "año inválido")
	}
	month, err := strconv.Atoi(monthParam)
	if err != nil || month < 1 || month > 12 {
		verr.Add("month", "mes debe estar entre 1 y 12")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	r := repository.DateRange{From: &first, To: &last}

	var (
		inv  *entity.InventoryStats
		cert *entity.CertificateStats
		trt  *entity.TreatmentStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		inv, err = uc.chemicals.Stats(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		cert, err = uc.certificates.Stats(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		trt, err = uc.treatments.Stats(gctx, r, today())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte mensual: %w", err)
	}

	period := fmt.Sprintf("%02d/%d", month, year)
	report := &dto.MonthlyReportResponse{
		ReportType:  "monthly_comprehensive",
		GeneratedAt: time.Now(),
		Period:      period,
		Data: dto.MonthlyReportData{
			Period:       period,
			Inventory:    dto.FromInventoryStats(inv),
			Certificates: dto.FromCertificateStats(cert),
			Treatments:   dto.FromTreatmentStats(trt),
		},
	}
	if format == FormatJSON {
		return &Output{JSON: report}, nil
	}
	body, err := uc.renderer.RenderMonthly(ctx, report, monthLabel(first))
	if err != nil {
		return nil, fmt.Errorf("reporte mensual pdf: %w", err)
	}
	return &Output{
		Body:        body,
		ContentType: contentTypePDF,
		Filename:    fmt.Sprintf("reporte-mensual-%d-%02d.pdf", year, month),
	}, nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
