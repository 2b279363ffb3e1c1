package reports

import (
	"strings"

	"github.com/edu-delahoz/finanzas/internal/core"
)

// Header is the fixed first line of every movements export.
const Header = "type,amount,concept,date,userName,userEmail"

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// EncodeCSV serializes movement rows for download. A field is quoted
// only when it contains a comma, a double quote, or a newline, with
// internal quotes doubled. Amounts are re-formatted to two decimals and
// dates emitted as ISO-8601 UTC timestamps.
func EncodeCSV(rows []Row) string {
	var b strings.Builder
	b.WriteString(Header)

	for _, row := range rows {
		fields := [6]string{
			string(row.Type),
			core.FormatCents(core.MinorUnits(row.Amount)),
			row.Concept,
			row.Date.UTC().Format(isoMillis),
			row.UserName,
			row.UserEmail,
		}
		b.WriteByte('\n')
		for i, field := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvEscape(field))
		}
	}

	return b.String()
}

func csvEscape(value string) string {
	escaped := strings.ReplaceAll(value, `"`, `""`)
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + escaped + `"`
	}
	return escaped
}
