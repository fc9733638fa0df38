package exporting

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/imm/dashboard-api/internal/config"
	"github.com/imm/dashboard-api/pkg/log"
	"github.com/imm/dashboard-api/pkg/utils"
)

//go:embed templates/overview.html.tmpl
var templatesFS embed.FS

const defaultTemplate = "templates/overview.html.tmpl"

type pdfView struct {
	From        string
	To          string
	GeneratedAt string
	Sections    []section
}

// pdfRenderer gera o HTML do relatório e delega a conversão para um processo externo.
// O comando recebe PDFArgs seguidos do caminho do HTML de entrada e do PDF de saída.
type pdfRenderer struct {
	command string
	args    []string
	tmpDir  string
	tmpl    *template.Template
}

func newPDFRenderer(cfg config.Export) (*pdfRenderer, error) {
	var (
		tmpl *template.Template
		err  error
	)

	if cfg.TemplatePath != "" {
		tmpl, err = template.ParseFiles(cfg.TemplatePath)
	} else {
		tmpl, err = template.ParseFS(templatesFS, defaultTemplate)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar template do PDF: %w", err)
	}

	return &pdfRenderer{
		command: cfg.PDFCommand,
		args:    cfg.PDFArgs,
		tmpDir:  cfg.TmpDir,
		tmpl:    tmpl,
	}, nil
}

func (r *pdfRenderer) Render(ctx context.Context, report Report) ([]byte, error) {
	if r.command == "" {
		return nil, NewExportError(ErrRenderFailed, "comando de geração de PDF não configurado")
	}

	workDir, err := os.MkdirTemp(r.tmpDir, "imm-export-")
	if err != nil {
		return nil, NewExportError(ErrRenderFailed, fmt.Sprintf("erro ao criar diretório temporário: %v", err))
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			log.ForContext(ctx).WithError(err).WithField("dir", workDir).Warn("Falha ao remover diretório temporário da exportação")
		}
	}()

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewExportError(ErrRenderFailed, err.Error())
	}

	htmlPath := filepath.Join(workDir, id+".html")
	pdfPath := filepath.Join(workDir, id+".pdf")

	var html bytes.Buffer
	if err := r.tmpl.Execute(&html, pdfView{
		From:        report.Range.From.Format("02/01/2006"),
		To:          report.Range.To.Format("02/01/2006"),
		GeneratedAt: report.GeneratedAt.Format("02/01/2006 15:04"),
		Sections:    buildSections(report.Overview),
	}); err != nil {
		return nil, NewExportError(ErrRenderFailed, fmt.Sprintf("erro ao renderizar template: %v", err))
	}

	if err := os.WriteFile(htmlPath, html.Bytes(), 0o600); err != nil {
		return nil, NewExportError(ErrRenderFailed, fmt.Sprintf("erro ao gravar HTML: %v", err))
	}

	args := make([]string, 0, len(r.args)+2)
	args = append(args, r.args...)
	args = append(args, htmlPath, pdfPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"command": r.command,
			"stderr":  strings.TrimSpace(stderr.String()),
		}).Error("Falha ao executar o gerador de PDF")
		return nil, NewExportError(ErrRenderFailed, fmt.Sprintf("gerador de PDF falhou: %v", err))
	}

	body, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, NewExportError(ErrRenderFailed, fmt.Sprintf("PDF não foi gerado: %v", err))
	}

	return body, nil
}
