package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var (
	// ErrColumnNotFound is returned when a requested header is absent.
	ErrColumnNotFound = errors.New("column not found")
	// ErrNotNumeric is returned when a column holds text or booleans.
	ErrNotNumeric = errors.New("column is not numeric")
)

// Options controls how a tabular file is read.
type Options struct {
	// Delimiter for CSV. If 0, picked from the file extension (',' or '\t').
	Delimiter rune
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// Dataset is an immutable, row-aligned table of named columns.
type Dataset struct {
	Name string
	df   dataframe.DataFrame
}

// Load reads the file at path using the first registered format that accepts it.
func Load(path string, opt Options) (*Dataset, error) {
	for _, f := range formats {
		if f.CanLoad(path) {
			return f.Load(path, opt)
		}
	}
	return csvFormat{}.Load(path, opt)
}

// Read parses delimited text with a header row.
func Read(r io.Reader, name string, opt Options) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(name)
	}
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithDelimiter(delim),
		dataframe.NaNValues([]string{"", "NA", "NaN", "nan", "N/A", "null", "<nil>"}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read %s: %w", name, df.Err)
	}
	return &Dataset{Name: filepath.Base(name), df: df}, nil
}

// FromRecords builds a Dataset from a header row followed by data rows.
func FromRecords(name string, records [][]string) (*Dataset, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("read %s: no header row", name)
	}
	ncol := len(records[0])
	rows := make([][]string, len(records))
	for i, rec := range records {
		if len(rec) == ncol {
			rows[i] = rec
			continue
		}
		// pad or trim ragged rows to the header width
		tmp := make([]string, ncol)
		copy(tmp, rec)
		rows[i] = tmp
	}
	df := dataframe.LoadRecords(rows,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues([]string{"", "NA", "NaN", "nan", "N/A", "null", "<nil>"}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read %s: %w", name, df.Err)
	}
	return &Dataset{Name: filepath.Base(name), df: df}, nil
}

// Len returns the number of records.
func (d *Dataset) Len() int { return d.df.Nrow() }

// Names returns the header names in file order.
func (d *Dataset) Names() []string { return d.df.Names() }

// Column returns a copy of the named column as float64 values.
// Missing cells are NaN.
func (d *Dataset) Column(name string) ([]float64, error) {
	s := d.df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, name, d.Name)
	}
	if !isNumeric(s.Type()) {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, name, s.Type())
	}
	return s.Float(), nil
}

// Text returns the named column as strings; missing cells are "".
func (d *Dataset) Text(name string) ([]string, error) {
	s := d.df.Col(name)
	if s.Err != nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrColumnNotFound, name, d.Name)
	}
	out := s.Records()
	for i, missing := range s.IsNaN() {
		if missing {
			out[i] = ""
		}
	}
	return out, nil
}

// Head returns up to n data rows as strings, without the header.
func (d *Dataset) Head(n int) [][]string {
	if n <= 0 {
		return nil
	}
	if n > d.Len() {
		n = d.Len()
	}
	if n == 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return d.df.Subset(idx).Records()[1:]
}

// NumericColumns returns every numeric column in file order.
func (d *Dataset) NumericColumns() (names []string, cols [][]float64) {
	types := d.df.Types()
	for i, name := range d.df.Names() {
		if !isNumeric(types[i]) {
			continue
		}
		names = append(names, name)
		cols = append(cols, d.df.Col(name).Float())
	}
	return names, cols
}

// Kinds maps each header to "numeric" or the gota type name of the column.
func (d *Dataset) Kinds() map[string]string {
	out := make(map[string]string, d.df.Ncol())
	types := d.df.Types()
	for i, name := range d.df.Names() {
		if isNumeric(types[i]) {
			out[name] = "numeric"
			continue
		}
		out[name] = string(types[i])
	}
	return out
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// Format reads one on-disk tabular layout.
type Format interface {
	CanLoad(path string) bool
	Load(path string, opt Options) (*Dataset, error)
}

var formats []Format

// Register adds a format to the registry consulted by Load.
func Register(f Format) {
	formats = append(formats, f)
}

func init() {
	Register(xlsxFormat{})
	Register(csvFormat{})
}

type csvFormat struct{}

func (csvFormat) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvFormat) Load(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Read(f, path, opt)
}
