package table

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/facetgrid/pkg/errors"
)

// Header names recognised as the entity and time columns (case-insensitive).
var (
	entityHeaders = []string{"entity", "entityname", "entity_name", "country"}
	timeHeaders   = []string{"year", "time", "day"}
)

// wireTable is the JSON representation of a Table.
type wireTable struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// MarshalJSON encodes the table as {"columns": [...], "rows": [...]}.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTable{Columns: t.Columns(), Rows: t.Rows()})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var w wireTable
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = *New(w.Columns, w.Rows)
	return nil
}

// ReadJSON decodes a table from JSON.
func ReadJSON(r io.Reader) (*Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "decode table json")
	}
	return &t, nil
}

// ReadCSV decodes a table from CSV with a header row.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "read csv")
	}
	return fromRecords(records)
}

// ReadXLSX decodes a table from the first sheet of a spreadsheet.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "open spreadsheet")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "spreadsheet has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "read sheet %s", sheets[0])
	}
	return fromRecords(records)
}

// ReadFile reads a table, choosing the decoder from the file extension.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "table %s", path)
		}
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(bytes.NewReader(data))
	case ".csv":
		return ReadCSV(bytes.NewReader(data))
	case ".xlsx":
		return ReadXLSX(bytes.NewReader(data))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported table format: %s", filepath.Ext(path))
}

// WriteJSON encodes the table as indented JSON.
func WriteJSON(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// fromRecords converts a header row plus data rows into a table.
func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table is empty")
	}
	header := records[0]
	entityCol, timeCol := -1, -1
	var columns []Column
	valueCols := make(map[int]string)

	for i, h := range header {
		h = strings.TrimSpace(h)
		switch {
		case entityCol < 0 && matchesAny(h, entityHeaders):
			entityCol = i
		case timeCol < 0 && matchesAny(h, timeHeaders):
			timeCol = i
		case h != "":
			slug := Slugify(h)
			valueCols[i] = slug
			columns = append(columns, Column{Slug: slug, Name: h})
		}
	}
	if entityCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "missing entity column (one of %s)", strings.Join(entityHeaders, ", "))
	}
	if timeCol < 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "missing time column (one of %s)", strings.Join(timeHeaders, ", "))
	}

	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		line := n + 2
		if isBlank(rec) {
			continue
		}
		entity := cell(rec, entityCol)
		if entity == "" {
			return nil, errors.New(errors.ErrCodeInvalidTable, "line %d: empty entity", line)
		}
		tm, err := strconv.Atoi(cell(rec, timeCol))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "line %d: invalid time", line)
		}
		row := Row{Entity: entity, Time: tm, Values: make(map[string]float64)}
		for i, slug := range valueCols {
			raw := cell(rec, i)
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "line %d: column %s", line, slug)
			}
			row.Values[slug] = v
		}
		rows = append(rows, row)
	}
	return New(columns, rows), nil
}

// Slugify turns a header into a column slug: lowercase, runs of other
// characters collapsed to a single underscore.
func Slugify(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

func matchesAny(h string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(h, n) {
			return true
		}
	}
	return false
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// String summarises the table for logs.
func (t *Table) String() string {
	return fmt.Sprintf("table(%d columns, %d rows, %d entities)", len(t.Columns()), t.NumRows(), len(t.EntityNames()))
}
