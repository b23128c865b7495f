package repo

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	perr "gearbox/internal/platform/errors"
)

// CSV column layout for spreadsheet exports; header row required
const (
	colID = iota
	colShopName
	colStatus
	colDropOff
	colStatusDate
	colCreatedAt
	colCost
	colCount
)

// csv date formats accepted, tried in order
var csvDateFormats = []string{time.RFC3339, "2006-01-02"}

// ReadCSVFile loads repair orders from a spreadsheet export on disk
func ReadCSVFile(path string) ([]OrderRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "open %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses repair orders from CSV. Malformed rows are dropped,
// not fatal; bad input belongs at this boundary, never in the cache
func ReadCSV(r io.Reader) ([]OrderRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header := true
	var out []OrderRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "read csv")
		}
		if header {
			header = false
			continue
		}
		if row, ok := parseRow(rec); ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func parseRow(rec []string) (OrderRow, bool) {
	if len(rec) < colCount {
		return OrderRow{}, false
	}
	row := OrderRow{
		ID:       strings.TrimSpace(rec[colID]),
		ShopName: strings.TrimSpace(rec[colShopName]),
		Status:   strings.TrimSpace(rec[colStatus]),
	}
	if row.ID == "" {
		return OrderRow{}, false
	}
	row.DropOff = parseDate(rec[colDropOff])
	row.StatusDate = parseDate(rec[colStatusDate])
	if t := parseDate(rec[colCreatedAt]); t != nil {
		row.CreatedAt = *t
	}
	if c, err := strconv.ParseFloat(strings.TrimSpace(rec[colCost]), 64); err == nil {
		row.Cost = c
	}
	return row, true
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range csvDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
