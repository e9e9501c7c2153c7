package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/edastat/internal/config"
)

var cryptoRows = []string{
	"Date,Customers,Website_Visits,Crypto_Low,Coin_Age_Years,Crypto_Open,Active_Users,Crypto_Transactions,Exchange",
	"2024-01-01,3,120,41.5,2,42.0,310,55.2,alpha",
	"2024-01-02,1,98,40.1,5,41.2,290,48.9,beta",
	"2024-01-03,4,133,43.7,3,44.1,355,61.0,alpha",
	"2024-01-04,2,101,39.9,1,40.4,275,50.3,gamma",
	"2024-01-05,3,115,42.2,4,42.8,330,57.7,beta",
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCSVAndSelect(t *testing.T) {
	p := writeFile(t, "crypto_data.csv", strings.Join(cryptoRows, "\n")+"\n")
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Name != "crypto_data.csv" {
		t.Fatalf("name = %q", ds.Name)
	}
	if ds.Len() != 5 {
		t.Fatalf("len = %d, want 5", ds.Len())
	}
	sel, err := Select(ds, config.DefaultColumns())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	for _, s := range sel.All() {
		if len(s.Values) != ds.Len() {
			t.Fatalf("column %s has %d values, want %d", s.Name, len(s.Values), ds.Len())
		}
	}
	want := []float64{3, 1, 4, 2, 3}
	for i, v := range want {
		if sel.Customers.Values[i] != v {
			t.Fatalf("customers[%d] = %v, want %v", i, sel.Customers.Values[i], v)
		}
	}
	if sel.Transactions.Name != "Crypto_Transactions" || sel.Transactions.Values[2] != 61.0 {
		t.Fatalf("transactions = %#v", sel.Transactions)
	}
}

func TestSelectMissingColumn(t *testing.T) {
	rows := append([]string{strings.Replace(cryptoRows[0], "Active_Users", "Users", 1)}, cryptoRows[1:]...)
	p := writeFile(t, "crypto_data.csv", strings.Join(rows, "\n"))
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = Select(ds, config.DefaultColumns())
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("err = %v, want ErrColumnNotFound", err)
	}
	if !strings.Contains(err.Error(), "Active_Users") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestColumnNotNumeric(t *testing.T) {
	p := writeFile(t, "crypto_data.csv", strings.Join(cryptoRows, "\n"))
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := ds.Column("Exchange"); !errors.Is(err, ErrNotNumeric) {
		t.Fatalf("err = %v, want ErrNotNumeric", err)
	}
	kinds := ds.Kinds()
	if kinds["Customers"] != "numeric" || kinds["Exchange"] != "string" {
		t.Fatalf("kinds = %#v", kinds)
	}
}

func TestNumericColumnsSkipsText(t *testing.T) {
	p := writeFile(t, "crypto_data.csv", strings.Join(cryptoRows, "\n"))
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	names, cols := ds.NumericColumns()
	want := config.DefaultColumns().Names()
	if len(names) != len(want) {
		t.Fatalf("numeric names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("numeric names = %v, want %v", names, want)
		}
		if len(cols[i]) != 5 {
			t.Fatalf("col %s len = %d", names[i], len(cols[i]))
		}
	}
}

func TestLoadTSVAndMissingCells(t *testing.T) {
	body := "a\tb\n1\t2.5\n\t3.5\n3\tNA\n"
	p := writeFile(t, "gaps.tsv", body)
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	a, err := ds.Column("a")
	if err != nil {
		t.Fatalf("Column a: %v", err)
	}
	if a[0] != 1 || !math.IsNaN(a[1]) || a[2] != 3 {
		t.Fatalf("a = %v", a)
	}
	b, err := ds.Column("b")
	if err != nil {
		t.Fatalf("Column b: %v", err)
	}
	if b[1] != 3.5 || !math.IsNaN(b[2]) {
		t.Fatalf("b = %v", b)
	}
}

func TestReadExplicitDelimiter(t *testing.T) {
	ds, err := Read(strings.NewReader("x;y\n1;2\n3;4\n"), "inline.txt", Options{Delimiter: ';'})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := ds.Names(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("names = %v", got)
	}
}

func TestFromRecordsPadsRaggedRows(t *testing.T) {
	ds, err := FromRecords("mem", [][]string{{"a", "b"}, {"1", "2"}, {"3"}})
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	b, err := ds.Column("b")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if len(b) != 2 || b[0] != 2 || !math.IsNaN(b[1]) {
		t.Fatalf("b = %v", b)
	}
	if _, err := FromRecords("mem", nil); err == nil {
		t.Fatalf("expected error for empty records")
	}
}

func TestTextAndHead(t *testing.T) {
	rows := append([]string{}, cryptoRows...)
	rows = append(rows, "2024-01-06,2,99,40.0,2,40.9,301,52.0,")
	p := writeFile(t, "crypto_data.csv", strings.Join(rows, "\n"))
	ds, err := Load(p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ex, err := ds.Text("Exchange")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if ex[0] != "alpha" || ex[5] != "" {
		t.Fatalf("exchange = %q", ex)
	}
	head := ds.Head(2)
	if len(head) != 2 || head[1][0] != "2024-01-02" {
		t.Fatalf("head = %v", head)
	}
	if got := ds.Head(100); len(got) != 6 {
		t.Fatalf("head(100) len = %d", len(got))
	}
	if _, err := ds.Text("Nope"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("err = %v", err)
	}
}
