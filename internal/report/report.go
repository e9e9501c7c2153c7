// Package report prints test results and correlation matrices to the console.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/KaramelBytes/edastat/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Output formats accepted by New.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Printer writes results in one output format.
type Printer struct {
	w      io.Writer
	format string
}

// New returns a Printer for format ("" means text).
func New(w io.Writer, format string) (*Printer, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		f = FormatText
	case FormatText, FormatTable, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported output format %q (use text, table or json)", format)
	}
	return &Printer{w: w, format: f}, nil
}

// Poisson prints a Poisson goodness-of-fit result.
func (p *Printer) Poisson(r *stats.PoissonResult) error {
	switch p.format {
	case FormatJSON:
		return p.json(poissonJSON{
			Test:      "poisson",
			Label:     r.Label,
			Lambda:    num(r.Lambda),
			Values:    r.Values,
			Observed:  r.Observed,
			Expected:  r.Expected,
			Statistic: num(r.Statistic),
			PValue:    num(r.PValue),
			DOF:       r.DOF,
			Poisson:   r.IsPoisson(),
			Verdict:   r.Verdict(),
		})
	case FormatTable:
		t := p.table(fmt.Sprintf("%s Poisson Test", r.Label))
		t.AppendHeader(table.Row{"Value", "Observed", "Expected"})
		for i, v := range r.Values {
			t.AppendRow(table.Row{formatFloat(v, "%g"), formatFloat(r.Observed[i], "%g"), formatFloat(r.Expected[i], "%.4f")})
		}
		t.AppendFooter(table.Row{"lambda", formatFloat(r.Lambda, "%.4f"), ""})
		t.Render()
		_, err := fmt.Fprintf(p.w, "Chi-square Statistic: %.4f (dof %d)\np-value: %.4f\n%s\n",
			r.Statistic, r.DOF, r.PValue, r.Verdict())
		return err
	default:
		_, err := fmt.Fprintf(p.w, "\n🔹 %s Poisson Test\nChi-square Statistic: %.4f\np-value: %.4f\n%s\n",
			r.Label, r.Statistic, r.PValue, r.Verdict())
		return err
	}
}

// Normality prints a D'Agostino-Pearson normality result.
func (p *Printer) Normality(r *stats.NormalityResult) error {
	switch p.format {
	case FormatJSON:
		return p.json(normalityJSON{
			Test:      "normality",
			Label:     r.Label,
			N:         r.N,
			Skewness:  num(r.Skewness),
			Kurtosis:  num(r.Kurtosis),
			SkewZ:     num(r.SkewZ),
			KurtosisZ: num(r.KurtosisZ),
			Statistic: num(r.Statistic),
			PValue:    num(r.PValue),
			Normal:    r.IsNormal(),
			Verdict:   r.Verdict(),
		})
	case FormatTable:
		t := p.table(fmt.Sprintf("%s Normality Test", r.Label))
		t.AppendHeader(table.Row{"Measure", "Value"})
		t.AppendRows([]table.Row{
			{"n", r.N},
			{"skewness", formatFloat(r.Skewness, "%.4f")},
			{"kurtosis", formatFloat(r.Kurtosis, "%.4f")},
			{"skew z", formatFloat(r.SkewZ, "%.4f")},
			{"kurtosis z", formatFloat(r.KurtosisZ, "%.4f")},
			{"statistic", formatFloat(r.Statistic, "%.4f")},
			{"p-value", formatFloat(r.PValue, "%.4f")},
		})
		t.Render()
		_, err := fmt.Fprintln(p.w, r.Verdict())
		return err
	default:
		_, err := fmt.Fprintf(p.w, "\n🔹 %s Normality Test\nStatistic: %.4f, p-value: %.4f\n%s\n",
			r.Label, r.Statistic, r.PValue, r.Verdict())
		return err
	}
}

// Skewness prints one skewness value.
func (p *Printer) Skewness(label string, v float64) error {
	switch p.format {
	case FormatJSON:
		return p.json(struct {
			Label    string   `json:"label"`
			Skewness *float64 `json:"skewness"`
		}{label, num(v)})
	default:
		_, err := fmt.Fprintf(p.w, "\n🔹 %s Skewness: %.4f\n", label, v)
		return err
	}
}

// Correlation prints the full matrix.
func (p *Printer) Correlation(m *stats.CorrMatrix) error {
	if p.format == FormatJSON {
		rows := make([][]*float64, len(m.Values))
		for i, row := range m.Values {
			rows[i] = make([]*float64, len(row))
			for j, v := range row {
				rows[i][j] = num(v)
			}
		}
		return p.json(struct {
			Columns []string     `json:"columns"`
			Values  [][]*float64 `json:"values"`
		}{m.Columns, rows})
	}
	t := p.table("Correlation Matrix")
	header := table.Row{""}
	for _, c := range m.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for i, c := range m.Columns {
		row := table.Row{c}
		for _, v := range m.Values[i] {
			row = append(row, formatFloat(v, "%.2f"))
		}
		t.AppendRow(row)
	}
	t.Render()
	return nil
}

// Message prints a free-form line in text and table modes; JSON output
// stays machine-readable so it is skipped there.
func (p *Printer) Message(format string, args ...any) {
	if p.format == FormatJSON {
		return
	}
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) table(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func (p *Printer) json(v any) error {
	b, err := utils.PrettyJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

type poissonJSON struct {
	Test      string    `json:"test"`
	Label     string    `json:"label"`
	Lambda    *float64  `json:"lambda"`
	Values    []float64 `json:"values"`
	Observed  []float64 `json:"observed"`
	Expected  []float64 `json:"expected"`
	Statistic *float64  `json:"statistic"`
	PValue    *float64  `json:"p_value"`
	DOF       int       `json:"dof"`
	Poisson   bool      `json:"poisson"`
	Verdict   string    `json:"verdict"`
}

type normalityJSON struct {
	Test      string   `json:"test"`
	Label     string   `json:"label"`
	N         int      `json:"n"`
	Skewness  *float64 `json:"skewness"`
	Kurtosis  *float64 `json:"kurtosis"`
	SkewZ     *float64 `json:"skew_z"`
	KurtosisZ *float64 `json:"kurtosis_z"`
	Statistic *float64 `json:"statistic"`
	PValue    *float64 `json:"p_value"`
	Normal    bool     `json:"normal"`
	Verdict   string   `json:"verdict"`
}

// num maps NaN and ±Inf to null; encoding/json rejects them.
func num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatFloat(v float64, layout string) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf(layout, v)
}
