package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate interpreta uma data YYYY-MM-DD já alinhada à meia-noite UTC.
// String vazia retorna nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// StartOfDayUTC descarta a parte de horário de t, no fuso UTC
func StartOfDayUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDate formata no layout YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
