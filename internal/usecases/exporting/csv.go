package exporting

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/imm/dashboard-api/internal/domain"
)

// ToCSV gera o relatório em um único documento, com as seções separadas por uma linha em branco
//
// As aspas seguem encoding/csv: além de vírgula, aspas e quebra de linha,
// campos que começam com espaço ou contêm \r também são citados.
func ToCSV(resp *domain.OverviewResponse) (string, error) {
	if resp == nil {
		resp = &domain.OverviewResponse{}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for i, sec := range buildSections(resp) {
		if i > 0 {
			if err := writer.Write([]string{""}); err != nil {
				return "", fmt.Errorf("write CSV separator: %w", err)
			}
		}

		if err := writer.Write([]string{sec.Title}); err != nil {
			return "", fmt.Errorf("write CSV title %q: %w", sec.Title, err)
		}
		if err := writer.Write(sec.Header); err != nil {
			return "", fmt.Errorf("write CSV header %q: %w", sec.Title, err)
		}
		if err := writer.WriteAll(sec.Rows); err != nil {
			return "", fmt.Errorf("write CSV rows %q: %w", sec.Title, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush CSV: %w", err)
	}

	return buf.String(), nil
}
