package analytics

import (
	"context"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
)

// DocumentRenderer genera los PDF de reportes. Lo implementa infrastructure/pdf.
type DocumentRenderer interface {
	RenderTabular(ctx context.Context, doc *TabularDocument) ([]byte, error)
	RenderMonthly(ctx context.Context, report *dto.MonthlyReportResponse, periodLabel string) ([]byte, error)
}

// XMLExporter serializa un reporte tabular. Lo implementa infrastructure/xmlexport.
type XMLExporter interface {
	ExportTabular(ctx context.Context, doc *TabularDocument) ([]byte, error)
}
