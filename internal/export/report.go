package export

import (
	"bytes"
	"html/template"
	"time"
)

// reportTemplate mirrors the printable report the UI used to open in a new
// window for PDF printing.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; padding: 20px; }
    h1 { font-size: 18px; margin-bottom: 16px; }
    table { border-collapse: collapse; width: 100%; }
    th { border: 1px solid #333; padding: 8px 10px; background: #f0f0f0; font-size: 12px; text-align: left; }
    td { border: 1px solid #ddd; padding: 6px 10px; font-size: 12px; }
    @media print { body { padding: 0; } }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p style="font-size:11px;color:#666;">Generated on {{.GeneratedOn}}</p>
  <table>
    <thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
    <tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
  </table>
</body>
</html>
`))

type reportData struct {
	Title       string
	GeneratedOn string
	Headers     []string
	Rows        [][]string
}

// WriteHTMLReport renders a titled, printable HTML table from a header list
// and row matrix.
func WriteHTMLReport(title string, headers []string, rows [][]string, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, reportData{
		Title:       title,
		GeneratedOn: now.Format("Jan 2, 2006"),
		Headers:     headers,
		Rows:        rows,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
