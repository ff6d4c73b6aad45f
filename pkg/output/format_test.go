package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/internal/report"
	"github.com/iwvelando/loan-calculator/pkg/testutil"
	"gopkg.in/yaml.v3"
)

func TestPrettyFormat(t *testing.T) {
	rep := testutil.MustReport(t, 100000, 5, 1)

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, rep); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "--- Loan of 100000 at 5.00% over 1 years (en-US, USD) ---") {
		t.Errorf("PrettyFormat missing header, got:\n%s", output)
	}
	if !strings.Contains(output, "Paid monthly: USD 8561") {
		t.Errorf("PrettyFormat missing monthly payment")
	}
	if !strings.Contains(output, "Full payback: USD 102732") {
		t.Errorf("PrettyFormat missing total payback")
	}
	if !strings.Contains(output, "Full interest: USD 2732") {
		t.Errorf("PrettyFormat missing total interest")
	}
	for _, column := range report.Columns {
		if !strings.Contains(output, column) {
			t.Errorf("PrettyFormat missing column %q", column)
		}
	}

	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	// header, three summary lines, blank line, column header, twelve months
	if len(lines) != 1+3+1+1+12 {
		t.Errorf("expected %d lines, got %d", 18, len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "USD 8523") {
		t.Errorf("last row should carry the final principal, got %q", lines[len(lines)-1])
	}
}

func TestCsvFormat(t *testing.T) {
	rep := testutil.MustReport(t, 50000000, 3, 25)

	var buf bytes.Buffer
	if err := CsvFormat(&buf, rep); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to read CSV output: %v", err)
	}
	if len(records) != 301 {
		t.Fatalf("expected 301 CSV records, got %d", len(records))
	}

	expectedHeader := strings.Join(report.Columns, ",")
	if got := strings.Join(records[0], ","); got != expectedHeader {
		t.Errorf("header = %q, expected %q", got, expectedHeader)
	}
	if got := strings.Join(records[1], ","); got != "1,49887894,112106,21006800,125000" {
		t.Errorf("first row = %q", got)
	}
	if got := strings.Join(records[300], ","); got != "300,0,236373,0,733" {
		t.Errorf("last row = %q", got)
	}
}

func TestCsvString(t *testing.T) {
	rep := testutil.MustReport(t, 1200, 0, 1)

	csvStr, err := CsvString(rep)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if !strings.HasPrefix(csvStr, "Month,Loan left,") {
		t.Errorf("unexpected CSV prefix: %q", csvStr[:20])
	}
	if !strings.Contains(csvStr, "\n12,0,100,0,0\n") {
		t.Errorf("CSV missing final month, got:\n%s", csvStr)
	}
}

func TestHTMLFragment(t *testing.T) {
	rep := testutil.MustReport(t, 1200, 0, 1)
	rep.Summary.TotalInterest = "<script>alert(1)</script>"

	var buf bytes.Buffer
	if err := HTMLFragment(&buf, rep); err != nil {
		t.Fatalf("HTMLFragment() error = %v", err)
	}
	output := buf.String()

	if !strings.HasPrefix(output, `<div class="result">`) {
		t.Errorf("fragment must be wrapped in the result div, got %q", output[:30])
	}
	if !strings.Contains(output, "<p>Paid monthly: USD 100</p>") {
		t.Errorf("fragment missing summary paragraph")
	}
	if strings.Contains(output, "<script>") {
		t.Errorf("fragment must escape formatted values")
	}
	if got := strings.Count(output, "<tr>"); got != 13 {
		t.Errorf("expected 13 table rows, got %d", got)
	}
	if !strings.Contains(output, "<td>Interest paid in month</td>") {
		t.Errorf("fragment missing column header")
	}
}

func TestHTMLFormat(t *testing.T) {
	rep := testutil.MustReport(t, 1200, 0, 1)

	var buf bytes.Buffer
	if err := HTMLFormat(&buf, rep); err != nil {
		t.Fatalf("HTMLFormat() error = %v", err)
	}
	output := buf.String()

	if !strings.HasPrefix(output, "<!DOCTYPE html>") {
		t.Errorf("document must start with a doctype")
	}
	if !strings.Contains(output, `<html lang="en-US">`) {
		t.Errorf("document missing language attribute")
	}
	if !strings.Contains(output, "border-collapse: collapse;") {
		t.Errorf("document missing table style")
	}
	if !strings.Contains(output, `<div class="result">`) {
		t.Errorf("document missing fragment")
	}
}

func TestJSONFormat(t *testing.T) {
	rep := testutil.MustReport(t, 1200, 0, 1)

	var buf bytes.Buffer
	if err := JSONFormat(&buf, rep); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded report.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode JSON output: %v", err)
	}
	if decoded.Schedule.MonthlyPayment != 100 {
		t.Errorf("MonthlyPayment = %v, expected 100", decoded.Schedule.MonthlyPayment)
	}
	if len(decoded.Rows) != 12 {
		t.Errorf("expected 12 rows, got %d", len(decoded.Rows))
	}
}

func TestYAMLFormat(t *testing.T) {
	rep := testutil.MustReport(t, 1200, 0, 1)

	var buf bytes.Buffer
	if err := YAMLFormat(&buf, rep); err != nil {
		t.Fatalf("YAMLFormat() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode YAML output: %v", err)
	}
	if decoded["currency"] != "USD" {
		t.Errorf("currency = %v, expected USD", decoded["currency"])
	}
	if !strings.Contains(buf.String(), "monthlyPayment: USD 100") {
		t.Errorf("YAML missing formatted summary, got:\n%s", buf.String())
	}
}

func TestWrite(t *testing.T) {
	rep := testutil.MustReport(t, 1200, 0, 1)

	tests := []struct {
		format   string
		contains string
	}{
		{"pretty", "Paid monthly: USD 100"},
		{"csv", "Month,Loan left"},
		{"html", "<!DOCTYPE html>"},
		{"json", `"monthlyPayment": "USD 100"`},
		{"yaml", "language: en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, tt.format, rep); err != nil {
				t.Fatalf("Write(%s) error = %v", tt.format, err)
			}
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("Write(%s) output missing %q", tt.format, tt.contains)
			}
		})
	}

	var buf bytes.Buffer
	if err := Write(&buf, "xml", rep); err == nil {
		t.Error("expected error for unsupported format")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unsupported format")
	}
}
