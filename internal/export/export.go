// Package export renders journal history as CSV, XLSX or a zip bundle of both.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"nutritrack/internal/domain"
	"nutritrack/internal/nutrition"
	"nutritrack/pkg/zip"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatZIP  Format = "zip"
)

// ParseFormat accepts csv, xlsx and zip, case-insensitive. Empty means csv.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatZIP:
		return f, nil
	}
	return "", fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, raw)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatZIP:
		return "application/zip"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename builds the attachment name for an export generated at.
func (f Format) Filename(at time.Time) string {
	return "nutritrack-history-" + at.Format("20060102") + "." + string(f)
}

var entryHeader = []string{
	"date", "time", "barcode", "product_name", "quantity", "unit", "nutriscore",
	"energy_kcal_100g", "proteins_100g", "carbohydrates_100g", "fat_100g", "consumed_kcal",
}

var dailyHeader = []string{"date", "total_kcal", "total_proteins", "total_carbs", "total_fat", "num_products"}

// History is the data rendered by every format.
type History struct {
	Entries []domain.Entry
	Days    []nutrition.Totals
}

// NewHistory builds the export payload, entries newest first with
// timestamps and day totals expressed in loc.
func NewHistory(entries []domain.Entry, loc *time.Location) History {
	local := nutrition.InLocation(entries, loc)
	return History{
		Entries: nutrition.NewestFirst(local),
		Days:    nutrition.DailyTotals(local, loc),
	}
}

// Write renders h in the given format.
func Write(w io.Writer, f Format, h History, at time.Time) error {
	switch f {
	case FormatCSV:
		return WriteEntriesCSV(w, h.Entries)
	case FormatXLSX:
		return WriteXLSX(w, h)
	case FormatZIP:
		data, err := Bundle(h, at)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("%w: unsupported export format %q", domain.ErrValidation, f)
}

// WriteEntriesCSV writes one row per journal entry.
func WriteEntriesCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(entryHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(entryRecord(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDailyCSV writes one row per day of totals.
func WriteDailyCSV(w io.Writer, days []nutrition.Totals) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dailyHeader); err != nil {
		return err
	}
	for _, d := range days {
		if err := cw.Write(dailyRecord(d)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with an Entries sheet and a Daily sheet.
func WriteXLSX(w io.Writer, h History) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Entries"); err != nil {
		return err
	}
	if err := writeSheet(f, "Entries", entryHeader, len(h.Entries), func(i int) []interface{} {
		return entryRow(h.Entries[i])
	}); err != nil {
		return err
	}
	if _, err := f.NewSheet("Daily"); err != nil {
		return err
	}
	if err := writeSheet(f, "Daily", dailyHeader, len(h.Days), func(i int) []interface{} {
		return dailyRow(h.Days[i])
	}); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, header []string, n int, row func(int) []interface{}) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := sw.SetRow("A1", cells); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cellAddr, row(i)); err != nil {
			return err
		}
	}
	return sw.Flush()
}

// Bundle zips the entries CSV, the daily CSV and the workbook together.
func Bundle(h History, at time.Time) ([]byte, error) {
	var entries, daily, workbook bytes.Buffer
	if err := WriteEntriesCSV(&entries, h.Entries); err != nil {
		return nil, err
	}
	if err := WriteDailyCSV(&daily, h.Days); err != nil {
		return nil, err
	}
	if err := WriteXLSX(&workbook, h); err != nil {
		return nil, err
	}
	return zip.Archive([]zip.File{
		{Name: "entries.csv", Modified: at, Data: entries.Bytes()},
		{Name: "daily.csv", Modified: at, Data: daily.Bytes()},
		{Name: "history.xlsx", Modified: at, Data: workbook.Bytes()},
	})
}

func entryRecord(e domain.Entry) []string {
	return []string{
		e.Timestamp.Format(nutrition.DateLayout),
		e.Timestamp.Format("15:04:05"),
		e.Barcode,
		e.ProductName,
		formatFloat(e.Quantity),
		e.Unit,
		e.Nutriscore,
		formatOptional(e.EnergyKcal100g),
		formatOptional(e.Proteins100g),
		formatOptional(e.Carbohydrates100g),
		formatOptional(e.Fat100g),
		formatFloat(nutrition.Round1(e.ConsumedKcal())),
	}
}

func entryRow(e domain.Entry) []interface{} {
	return []interface{}{
		e.Timestamp.Format(nutrition.DateLayout),
		e.Timestamp.Format("15:04:05"),
		e.Barcode,
		e.ProductName,
		e.Quantity,
		e.Unit,
		e.Nutriscore,
		optional(e.EnergyKcal100g),
		optional(e.Proteins100g),
		optional(e.Carbohydrates100g),
		optional(e.Fat100g),
		nutrition.Round1(e.ConsumedKcal()),
	}
}

func dailyRecord(d nutrition.Totals) []string {
	return []string{
		d.Date,
		formatFloat(d.TotalKcal),
		formatFloat(d.TotalProteins),
		formatFloat(d.TotalCarbs),
		formatFloat(d.TotalFat),
		strconv.Itoa(d.NumProducts),
	}
}

func dailyRow(d nutrition.Totals) []interface{} {
	return []interface{}{d.Date, d.TotalKcal, d.TotalProteins, d.TotalCarbs, d.TotalFat, d.NumProducts}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
