package dataset

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

type xlsxFormat struct{}

func (xlsxFormat) CanLoad(p string) bool {
	return strings.HasSuffix(strings.ToLower(p), ".xlsx")
}

func (xlsxFormat) Load(p string, opt Options) (*Dataset, error) {
	records, err := readXLSX(p, opt.Sheet)
	if err != nil {
		return nil, err
	}
	return FromRecords(p, records)
}

type xlsxWorkbook struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		ID   int    `xml:"sheetId,attr"`
		RID  string `xml:"id,attr"` // r:id
	} `xml:"sheets>sheet"`
}

type xlsxRels struct {
	Items []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

type xlsxShared struct {
	Items []struct {
		T    string `xml:"t"`
		Runs []struct {
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

type xlsxSheet struct {
	Rows []struct {
		Cells []struct {
			Ref    string `xml:"r,attr"`
			Type   string `xml:"t,attr"`
			Value  string `xml:"v"`
			Inline string `xml:"is>t"`
		} `xml:"c"`
	} `xml:"sheetData>row"`
}

// readXLSX returns the rows of the named sheet (or the first sheet) as strings.
func readXLSX(p, sheetName string) ([][]string, error) {
	zr, err := zip.OpenReader(p)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer zr.Close()

	var wb xlsxWorkbook
	if err := decodeZipXML(&zr.Reader, "xl/workbook.xml", &wb); err != nil {
		return nil, err
	}
	var rels xlsxRels
	if err := decodeZipXML(&zr.Reader, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Items))
	for _, r := range rels.Items {
		targets[r.ID] = normalizeRelPath(r.Target)
	}

	target := ""
	if sheetName != "" {
		names := make([]string, 0, len(wb.Sheets))
		for _, s := range wb.Sheets {
			names = append(names, s.Name)
			if strings.EqualFold(s.Name, sheetName) {
				target = targets[s.RID]
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				sheetName, filepath.Base(p), strings.Join(names, ", "))
		}
	} else if len(wb.Sheets) > 0 {
		target = targets[wb.Sheets[0].RID]
	}
	if target == "" {
		target = "xl/worksheets/sheet1.xml"
	}

	var shared xlsxShared
	if err := decodeZipXML(&zr.Reader, "xl/sharedStrings.xml", &shared); err != nil && !isMissingPart(err) {
		return nil, err
	}
	strs := make([]string, len(shared.Items))
	for i, si := range shared.Items {
		var b strings.Builder
		b.WriteString(si.T)
		for _, r := range si.Runs {
			b.WriteString(r.T)
		}
		strs[i] = b.String()
	}

	var sheet xlsxSheet
	if err := decodeZipXML(&zr.Reader, target, &sheet); err != nil {
		return nil, err
	}
	out := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		var rec []string
		for i, c := range row.Cells {
			idx := i
			if c.Ref != "" {
				idx = colIndexFromRef(c.Ref)
			}
			if idx < 0 {
				continue
			}
			for len(rec) <= idx {
				rec = append(rec, "")
			}
			switch c.Type {
			case "s":
				n, err := strconv.Atoi(strings.TrimSpace(c.Value))
				if err == nil && n >= 0 && n < len(strs) {
					rec[idx] = strs[n]
				}
			case "inlineStr":
				rec[idx] = c.Inline
			default:
				rec[idx] = c.Value
			}
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sheet %s in %s is empty", target, filepath.Base(p))
	}
	return out, nil
}

type missingPartError struct{ name string }

func (e missingPartError) Error() string { return "xlsx part not found: " + e.name }

func isMissingPart(err error) bool {
	_, ok := err.(missingPartError)
	return ok
}

func decodeZipXML(zr *zip.Reader, name string, v any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := xml.Unmarshal(b, v); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		return nil
	}
	return missingPartError{name: name}
}

// colIndexFromRef maps a cell reference like "C12" to a 0-based column index.
func colIndexFromRef(ref string) int {
	idx := 0
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'A' && c <= 'Z':
			idx = idx*26 + int(c-'A'+1)
		case c >= 'a' && c <= 'z':
			idx = idx*26 + int(c-'a'+1)
		default:
			return idx - 1
		}
	}
	return idx - 1
}

// normalizeRelPath converts relationship Target paths to ZIP entry names.
// Targets may carry a leading slash ("/xl/worksheets/sheet1.xml") or be
// relative to xl/ ("worksheets/sheet1.xml").
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return path.Join("xl", rel)
}
