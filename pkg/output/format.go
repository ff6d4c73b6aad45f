// Package output provides utilities for rendering amortization reports.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/loan-calculator/internal/report"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Write renders the report in the named output format.
func Write(w io.Writer, outputFormat string, rep report.Report) error {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return CsvFormat(w, rep)
	case constants.OutputFormatHTML:
		return HTMLFormat(w, rep)
	case constants.OutputFormatJSON:
		return JSONFormat(w, rep)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, rep)
	default:
		return PrettyFormat(w, rep)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, rep report.Report) error {
	params := rep.Schedule.Parameters
	if _, err := fmt.Fprintf(w, "--- Loan of %s at %s%% over %d years (%s, %s) ---\n",
		strconv.FormatFloat(params.Principal, 'f', -1, 64),
		strconv.FormatFloat(params.AnnualInterestRatePercent, 'f', 2, 64),
		params.TermYears, rep.Language, rep.Currency); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n%s: %s\n%s: %s\n\n",
		report.LabelMonthlyPayment, rep.Summary.MonthlyPayment,
		report.LabelTotalPayback, rep.Summary.TotalPayback,
		report.LabelTotalInterest, rep.Summary.TotalInterest); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, strings.Join(report.Columns, "\t")+"\t"); err != nil {
		return err
	}
	for _, row := range rep.Rows {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			row.Month, row.LoanLeft, row.LoanPaid, row.InterestLeft, row.InterestPaid); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// CsvFormat outputs the unformatted schedule figures in comma-separated value
// format so that spreadsheets can compute with them.
func CsvFormat(w io.Writer, rep report.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Columns); err != nil {
		return err
	}
	for _, record := range rep.Schedule.Records {
		if err := cw.Write([]string{
			strconv.Itoa(record.Month),
			formatFigure(record.RemainingLoanBalance),
			formatFigure(record.PrincipalPaid),
			formatFigure(record.RemainingInterestBalance),
			formatFigure(record.InterestPaid),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering as a string.
func CsvString(rep report.Report) (string, error) {
	var sb strings.Builder
	if err := CsvFormat(&sb, rep); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatFigure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TableStyle is the stylesheet applied to the rendered schedule table.
const TableStyle = `.result > table, .result > table td {
    border: 1px solid black;
    border-collapse: collapse;
    padding: 10px;
}`

var htmlTemplate = template.Must(template.New("schedule").Parse(`<div class="result">
<p>{{.Labels.MonthlyPayment}}: {{.Report.Summary.MonthlyPayment}}</p>
<p>{{.Labels.TotalPayback}}: {{.Report.Summary.TotalPayback}}</p>
<p>{{.Labels.TotalInterest}}: {{.Report.Summary.TotalInterest}}</p>
<table>
<tr>{{range .Columns}}<td>{{.}}</td>{{end}}</tr>
{{- range .Report.Rows}}
<tr><td>{{.Month}}</td><td>{{.LoanLeft}}</td><td>{{.LoanPaid}}</td><td>{{.InterestLeft}}</td><td>{{.InterestPaid}}</td></tr>
{{- end}}
</table>
</div>
`))

var htmlDocument = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>Loan schedule</title>
<style>{{.Style}}</style>
</head>
<body>
{{.Body}}</body>
</html>
`))

type htmlLabels struct {
	MonthlyPayment string
	TotalPayback   string
	TotalInterest  string
}

// HTMLFragment renders the summary paragraphs and schedule table.
func HTMLFragment(w io.Writer, rep report.Report) error {
	return htmlTemplate.Execute(w, struct {
		Labels  htmlLabels
		Columns []string
		Report  report.Report
	}{
		Labels: htmlLabels{
			MonthlyPayment: report.LabelMonthlyPayment,
			TotalPayback:   report.LabelTotalPayback,
			TotalInterest:  report.LabelTotalInterest,
		},
		Columns: report.Columns,
		Report:  rep,
	})
}

// HTMLFormat renders a standalone HTML document around HTMLFragment.
func HTMLFormat(w io.Writer, rep report.Report) error {
	var body strings.Builder
	if err := HTMLFragment(&body, rep); err != nil {
		return err
	}
	return htmlDocument.Execute(w, struct {
		Lang  string
		Style template.CSS
		Body  template.HTML
	}{
		Lang:  rep.Language,
		Style: template.CSS(TableStyle),
		Body:  template.HTML(body.String()),
	})
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(w io.Writer, rep report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// YAMLFormat outputs the report as YAML.
func YAMLFormat(w io.Writer, rep report.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
