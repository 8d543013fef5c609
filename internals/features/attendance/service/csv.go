// file: internals/features/attendance/service/csv.go
package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"nccnexus_backend/internals/features/attendance/dto"
)

// csvField quotes a field when it carries a comma, quote or newline,
// doubling embedded quotes per RFC 4180. Clean fields pass through bare so
// typical exports stay byte-stable.
func csvField(v string) string {
	if strings.ContainsAny(v, ",\"\r\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// RenderSessionCSV flattens the session detail matrix into the export
// layout: one column per drill between the identity columns and the summary
// columns, one row per cadet in roster order.
func RenderSessionCSV(detail dto.SessionDetailResponse) string {
	var b strings.Builder

	header := make([]string, 0, len(detail.Drills)+5)
	header = append(header, "Cadet Name", "Regimental No")
	for _, d := range detail.Drills {
		header = append(header, csvField(fmt.Sprintf("%s (%s %s)", d.DrillName, d.DrillDate, d.DrillTime)))
	}
	header = append(header, "Total Drills", "Total Attendance", "Percentage")
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, cadet := range detail.Cadets {
		row := make([]string, 0, len(cadet.Attendance)+5)
		row = append(row, csvField(cadet.Name), csvField(cadet.RegimentalNo))
		row = append(row, cadet.Attendance...)
		row = append(row,
			strconv.Itoa(cadet.Summary.Total),
			strconv.Itoa(cadet.Summary.Attended),
			formatPercent(cadet.Summary.Percent),
		)
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

var unsafeFileChars = regexp.MustCompile(`[^\w.-]+`)

// SanitizeFileName collapses anything outside [A-Za-z0-9_.-] to underscores
// so the session name is safe inside a Content-Disposition header.
func SanitizeFileName(name string) string {
	out := unsafeFileChars.ReplaceAllString(name, "_")
	out = strings.Trim(out, "_")
	if out == "" {
		out = "session"
	}
	return out
}
