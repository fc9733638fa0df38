// Package exporting converte o overview de analytics nos formatos de download do painel
package exporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/apiErrors"
)

//go:generate mockgen -source=exporter.go -destination=mocks/mock_exporter.go -package=mocks

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("formato de exportação não suportado")
	ErrRenderFailed      = errors.New("falha ao gerar arquivo de exportação")
)

// ExportError carrega o código de API junto do erro base
type ExportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ExportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func NewExportError(baseErr error, details string) *ExportError {
	code := apiErrors.ErrExportRender
	if errors.Is(baseErr, ErrUnsupportedFormat) {
		code = apiErrors.ErrInvalidFormat
	}

	return &ExportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// ParseFormat usa CSV quando o parâmetro está vazio
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatPDF, FormatXLSX:
		return Format(value), nil
	default:
		return "", NewExportError(ErrUnsupportedFormat, value)
	}
}

// Report é o conteúdo exportado: o overview já calculado e o período que ele cobre
type Report struct {
	Range       domain.DateRange
	Overview    *domain.OverviewResponse
	GeneratedAt time.Time
}

type Artifact struct {
	ContentType string
	Extension   string
	Body        []byte
}

// Filename segue o padrão analytics-<YYYY-MM-DD>.<ext> com a data de geração
func (a *Artifact) Filename(generatedAt time.Time) string {
	return fmt.Sprintf("analytics-%s.%s", generatedAt.Format(domain.DateLayout), a.Extension)
}

type Exporter interface {
	Export(ctx context.Context, format Format, report Report) (*Artifact, error)
}

type Service struct {
	pdf *pdfRenderer
}

func NewService(cfg config.Export) (Exporter, error) {
	pdf, err := newPDFRenderer(cfg)
	if err != nil {
		return nil, err
	}

	return &Service{pdf: pdf}, nil
}

func (s *Service) Export(ctx context.Context, format Format, report Report) (*Artifact, error) {
	if report.Overview == nil {
		report.Overview = &domain.OverviewResponse{}
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	switch format {
	case FormatCSV, "":
		body, err := ToCSV(report.Overview)
		if err != nil {
			return nil, NewExportError(ErrRenderFailed, err.Error())
		}
		return &Artifact{ContentType: "text/csv; charset=utf-8", Extension: "csv", Body: []byte(body)}, nil

	case FormatPDF:
		body, err := s.pdf.Render(ctx, report)
		if err != nil {
			return nil, err
		}
		return &Artifact{ContentType: "application/pdf", Extension: "pdf", Body: body}, nil

	case FormatXLSX:
		body, err := toXLSX(buildSections(report.Overview))
		if err != nil {
			return nil, NewExportError(ErrRenderFailed, err.Error())
		}
		return &Artifact{
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Extension:   "xlsx",
			Body:        body,
		}, nil

	default:
		return nil, NewExportError(ErrUnsupportedFormat, string(format))
	}
}

// ErrorCode devolve o código de API do erro de exportação
func ErrorCode(err error) string {
	var exportErr *ExportError
	if errors.As(err, &exportErr) && exportErr.Code != "" {
		return exportErr.Code
	}
	return apiErrors.ErrInternalServer
}
