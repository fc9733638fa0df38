package analytics

import (
	"time"

	"github.com/imm/dashboard-api/internal/domain"
	"github.com/imm/dashboard-api/pkg/apiErrors"
	"github.com/imm/dashboard-api/pkg/utils"
)

// DefaultWindowDays é o tamanho da janela padrão, contando o dia final
const DefaultWindowDays = 30

// ResolveDateRange normaliza from/to (YYYY-MM-DD) para meia-noite UTC.
// Sem to, usa o dia corrente; sem from, usa to menos 29 dias.
func ResolveDateRange(from, to *string, now time.Time) (domain.DateRange, error) {
	end := utils.StartOfDayUTC(now)
	if to != nil && *to != "" {
		parsed, err := utils.ParseDate(*to)
		if err != nil {
			return domain.DateRange{}, newFieldError(ErrInvalidDate, apiErrors.ErrInvalidFormat, "to", "use o formato YYYY-MM-DD")
		}
		end = *parsed
	}

	start := end.AddDate(0, 0, -(DefaultWindowDays - 1))
	if from != nil && *from != "" {
		parsed, err := utils.ParseDate(*from)
		if err != nil {
			return domain.DateRange{}, newFieldError(ErrInvalidDate, apiErrors.ErrInvalidFormat, "from", "use o formato YYYY-MM-DD")
		}
		start = *parsed
	}

	if start.After(end) {
		return domain.DateRange{}, newFieldError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, "from", "from deve ser anterior ou igual a to")
	}

	return domain.DateRange{From: start, To: end}, nil
}
