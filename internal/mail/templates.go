package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

var dailyReportTmpl = template.Must(template.New("daily-report").Parse(
	`Daily asset report for {{.Date}}

Movements (last 24h): {{len .Movements}}
{{- range .Movements}}
  - {{.Direction}} {{.Quantity}} x {{.AssetName}}
{{- end}}

Low stock items: {{len .LowStock}}
{{- range .LowStock}}
  - {{.Name}} ({{.AvailableQty}}/{{.Quantity}} available)
{{- end}}

Out of stock items: {{len .OutOfStock}}
{{- range .OutOfStock}}
  - {{.Name}}
{{- end}}

Open gate passes: {{len .PendingGatePass}}
Pending indent requests: {{len .PendingIndents}}
`))

var lowStockTmpl = template.Must(template.New("low-stock").Parse(
	`Low stock alert

The following assets are at or below 20% availability:
{{- range .}}
  - {{.Name}} (serial {{.SerialNumber}}): {{.AvailableQty}}/{{.Quantity}} available
{{- end}}

Please raise indent requests for replenishment.
`))

var indentTmpl = template.Must(template.New("indent-request").Parse(
	`New indent request {{.Number}}

Item: {{.ItemName}}
Quantity: {{.Quantity}}
{{- if .Justification}}
Justification: {{.Justification}}
{{- end}}

Review it in the asset management console.
`))

// RenderDailyReport renders the daily-report email body.
func RenderDailyReport(report *store.DailyReport) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := dailyReportTmpl.Execute(&buf, report); err != nil {
		return "", "", fmt.Errorf("rendering daily report: %w", err)
	}
	return "Daily asset report " + report.Date, buf.String(), nil
}

// RenderLowStockAlert renders the low-stock-alert email body.
func RenderLowStockAlert(assets []model.Asset) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := lowStockTmpl.Execute(&buf, assets); err != nil {
		return "", "", fmt.Errorf("rendering low stock alert: %w", err)
	}
	return fmt.Sprintf("Low stock alert: %d assets", len(assets)), buf.String(), nil
}

// RenderIndentRequest renders the indent-request notification body.
func RenderIndentRequest(ind *model.IndentRequest) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := indentTmpl.Execute(&buf, ind); err != nil {
		return "", "", fmt.Errorf("rendering indent request: %w", err)
	}
	return "Indent request " + ind.Number, buf.String(), nil
}
