package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/edastat/internal/dataset"
	"github.com/KaramelBytes/edastat/internal/stats"
	"github.com/KaramelBytes/edastat/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/floats"
	gstat "gonum.org/v1/gonum/stat"
)

// Options controls the dataset summary.
type Options struct {
	// SampleRows determines how many example rows to include in the report.
	SampleRows int
	// Outlier detection via robust Z-score (MAD). If Outliers is true, counts |z|>threshold.
	Outliers         bool
	OutlierThreshold float64
	// TopPairs limits the correlation pairs listed; 0 skips correlations.
	TopPairs int
}

// DefaultOptions returns reasonable defaults for dataset analysis.
func DefaultOptions() Options {
	return Options{
		SampleRows:       5,
		Outliers:         true,
		OutlierThreshold: 3.5,
		TopPairs:         10,
	}
}

// Report is a markdown-friendly analysis of a tabular dataset.
type Report struct {
	Name     string
	Rows     int
	Cols     []ColumnSummary
	Samples  [][]string
	Warnings []string
	Corr     *stats.CorrMatrix
	Pairs    []stats.PairCorr
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|text
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min      float64
	Max      float64
	Mean     float64
	Std      float64
	Skewness float64
	Kurtosis float64
	// Outliers (robust Z via MAD)
	OutliersCount    int
	OutliersMaxAbsZ  float64
	OutlierThreshold float64
	// Categorical top values
	TopValues    []CategoryCount
	ExampleTexts []string
}

type CategoryCount struct {
	Value string
	Count int
}

// maxCategories is the largest distinct count still reported as categorical.
const maxCategories = 50

// Summarize profiles every column of d.
func Summarize(d *dataset.Dataset, opt Options) (*Report, error) {
	rep := &Report{Name: d.Name, Rows: d.Len()}
	kinds := d.Kinds()
	for _, name := range d.Names() {
		var (
			s   ColumnSummary
			err error
		)
		if kinds[name] == "numeric" {
			s, err = numericSummary(d, name, opt)
		} else {
			s, err = textSummary(d, name)
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("column %q is %s; excluded from statistics and correlations", name, kinds[name]))
		}
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", d.Name, err)
		}
		if s.NonNull == 0 {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("column %q has no values", name))
		}
		rep.Cols = append(rep.Cols, s)
	}
	rep.Samples = d.Head(opt.SampleRows)

	if opt.TopPairs > 0 {
		names, cols := d.NumericColumns()
		if len(names) < 2 {
			rep.Warnings = append(rep.Warnings, "fewer than two numeric columns; correlations skipped")
		} else {
			m, err := stats.Correlations(names, cols)
			if err != nil {
				return nil, fmt.Errorf("summarize %s: %w", d.Name, err)
			}
			rep.Corr = m
			rep.Pairs = m.TopPairs(opt.TopPairs)
		}
	}
	return rep, nil
}

func numericSummary(d *dataset.Dataset, name string, opt Options) (ColumnSummary, error) {
	s := ColumnSummary{Name: name, Kind: "numeric"}
	raw, err := d.Column(name)
	if err != nil {
		return s, err
	}
	vals := make([]float64, 0, len(raw))
	for _, v := range raw {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.Missing++
			continue
		}
		vals = append(vals, v)
	}
	s.NonNull = len(vals)
	s.Skewness, s.Kurtosis = math.NaN(), math.NaN()
	if len(vals) == 0 {
		return s, nil
	}
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	if len(vals) > 1 {
		s.Mean, s.Std = gstat.MeanStdDev(vals, nil)
	} else {
		s.Mean = vals[0]
	}
	s.Skewness = stats.Skewness(vals)
	s.Kurtosis = stats.Kurtosis(vals)

	if opt.Outliers && len(vals) >= 8 {
		median, mad := medianMAD(vals)
		thr := opt.OutlierThreshold
		if thr <= 0 {
			thr = 3.5
		}
		if mad > 0 {
			for _, v := range vals {
				az := math.Abs(0.6745 * (v - median) / mad)
				if az > thr {
					s.OutliersCount++
				}
				if az > s.OutliersMaxAbsZ {
					s.OutliersMaxAbsZ = az
				}
			}
		}
		s.OutlierThreshold = thr
	}
	return s, nil
}

func textSummary(d *dataset.Dataset, name string) (ColumnSummary, error) {
	s := ColumnSummary{Name: name, Kind: "categorical"}
	vals, err := d.Text(name)
	if err != nil {
		return s, err
	}
	cats := map[string]int{}
	var examples []string
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			s.Missing++
			continue
		}
		s.NonNull++
		if cats[v] == 0 && len(examples) < 3 {
			examples = append(examples, v)
		}
		cats[v]++
	}
	s.Unique = len(cats)
	if s.Unique > maxCategories && s.Unique*2 > s.NonNull {
		s.Kind = "text"
		s.ExampleTexts = examples
		return s, nil
	}
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > 8 {
		tops = tops[:8]
	}
	s.TopValues = tops
	return s, nil
}

// Markdown renders the report as sectioned plain text.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", len(r.Cols)))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100.0 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct))
		switch c.Kind {
		case "numeric":
			if c.NonNull == 0 {
				break
			}
			b.WriteString(fmt.Sprintf(": min %.4g, max %.4g, mean %.4g, std %.4g, skew %.3f, kurtosis %.3f",
				c.Min, c.Max, c.Mean, c.Std, c.Skewness, c.Kurtosis))
			if c.OutlierThreshold > 0 {
				b.WriteString(fmt.Sprintf("; outliers: %d above |z|>%.1f", c.OutliersCount, c.OutlierThreshold))
				if c.OutliersMaxAbsZ > 0 {
					b.WriteString(fmt.Sprintf(" (max |z|≈%.2f)", c.OutliersMaxAbsZ))
				}
			}
		case "categorical":
			if len(c.TopValues) > 0 {
				b.WriteString(": top ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(fmt.Sprintf("%s(%d)", safeVal(kv.Value), kv.Count))
				}
				if c.Unique > len(c.TopValues) {
					b.WriteString(fmt.Sprintf("; unique=%d", c.Unique))
				}
			}
		case "text":
			if len(c.ExampleTexts) > 0 {
				b.WriteString(": e.g., ")
				for i, ex := range c.ExampleTexts {
					if i > 0 {
						b.WriteString(" | ")
					}
					b.WriteString(safeVal(ex))
				}
			}
		}
		b.WriteString("\n")
	}
	if len(r.Pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range r.Pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}
	if len(r.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range r.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c.Name))
		}
		b.WriteString(" |\n|")
		b.WriteString(strings.Repeat(" --- |", len(r.Cols)))
		b.WriteString("\n")
		for _, row := range r.Samples {
			b.WriteString("| ")
			for i := range r.Cols {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i]
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// WriteTable renders the schema as a console table.
func (r *Report) WriteTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s (%d rows)", r.Name, r.Rows))
	t.AppendHeader(table.Row{"Column", "Kind", "Non-null", "Missing", "Min", "Max", "Mean", "Std", "Skew", "Outliers"})
	for _, c := range r.Cols {
		if c.Kind != "numeric" || c.NonNull == 0 {
			t.AppendRow(table.Row{c.Name, c.Kind, c.NonNull, c.Missing, "", "", "", "", "", ""})
			continue
		}
		t.AppendRow(table.Row{
			c.Name, c.Kind, c.NonNull, c.Missing,
			fmt.Sprintf("%.4g", c.Min), fmt.Sprintf("%.4g", c.Max),
			fmt.Sprintf("%.4g", c.Mean), fmt.Sprintf("%.4g", c.Std),
			fmt.Sprintf("%.3f", c.Skewness), c.OutliersCount,
		})
	}
	t.Render()
}

// JSON encodes the report; NaN statistics become null.
func (r *Report) JSON() ([]byte, error) {
	type col struct {
		Name          string          `json:"name"`
		Kind          string          `json:"kind"`
		NonNull       int             `json:"non_null"`
		Missing       int             `json:"missing"`
		Unique        int             `json:"unique,omitempty"`
		Min           *float64        `json:"min,omitempty"`
		Max           *float64        `json:"max,omitempty"`
		Mean          *float64        `json:"mean,omitempty"`
		Std           *float64        `json:"std,omitempty"`
		Skewness      *float64        `json:"skewness,omitempty"`
		Kurtosis      *float64        `json:"kurtosis,omitempty"`
		OutliersCount int             `json:"outliers,omitempty"`
		TopValues     []CategoryCount `json:"top_values,omitempty"`
	}
	type pair struct {
		A string  `json:"a"`
		B string  `json:"b"`
		R float64 `json:"r"`
	}
	out := struct {
		Name     string   `json:"name"`
		Rows     int      `json:"rows"`
		Columns  []col    `json:"columns"`
		Pairs    []pair   `json:"correlations,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	}{Name: r.Name, Rows: r.Rows, Warnings: r.Warnings}
	for _, c := range r.Cols {
		jc := col{Name: c.Name, Kind: c.Kind, NonNull: c.NonNull, Missing: c.Missing, Unique: c.Unique,
			OutliersCount: c.OutliersCount, TopValues: c.TopValues}
		if c.Kind == "numeric" && c.NonNull > 0 {
			jc.Min, jc.Max, jc.Mean, jc.Std = num(c.Min), num(c.Max), num(c.Mean), num(c.Std)
			jc.Skewness, jc.Kurtosis = num(c.Skewness), num(c.Kurtosis)
		}
		out.Columns = append(out.Columns, jc)
	}
	for _, p := range r.Pairs {
		out.Pairs = append(out.Pairs, pair{A: p.A, B: p.B, R: p.R})
	}
	return utils.PrettyJSON(out)
}

func num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}
func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

// quantile interpolates linearly between closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
