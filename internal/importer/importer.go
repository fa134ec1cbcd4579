// Package importer reads batches of quote requests from CSV and Excel files
// and part outlines from DXF drawings. It supports automatic delimiter
// detection, flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/xuri/excelize/v2"
)

// BatchRow is one imported part with its quote options.
type BatchRow struct {
	Label   string             `json:"label"`
	Request model.QuoteRequest `json:"request"`
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rows     []BatchRow
	Errors   []string
	Warnings []string
}

// Requests returns the imported quote requests in file order.
func (r ImportResult) Requests() []model.QuoteRequest {
	reqs := make([]model.QuoteRequest, len(r.Rows))
	for i, row := range r.Rows {
		reqs[i] = row.Request
	}
	return reqs
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 means the column is absent.
type ColumnMapping struct {
	Label        int
	Template     int
	Width        int
	Height       int
	Diameter     int
	Base         int
	HoleDiameter int
	HoleOffset   int
	Material     int
	Thickness    int
	Quantity     int
	Finishing    int
	Color        int
	FinishDesc   int
}

// columnRoles lists every role in positional order, used when a file has
// no header row.
var columnRoles = []string{
	"label", "template", "width", "height", "diameter", "base", "hole_diameter", "hole_offset",
	"material", "thickness", "quantity", "finishing", "color", "finish_desc",
}

func (m *ColumnMapping) field(role string) *int {
	switch role {
	case "label":
		return &m.Label
	case "template":
		return &m.Template
	case "width":
		return &m.Width
	case "height":
		return &m.Height
	case "diameter":
		return &m.Diameter
	case "base":
		return &m.Base
	case "hole_diameter":
		return &m.HoleDiameter
	case "hole_offset":
		return &m.HoleOffset
	case "material":
		return &m.Material
	case "thickness":
		return &m.Thickness
	case "quantity":
		return &m.Quantity
	case "finishing":
		return &m.Finishing
	case "color":
		return &m.Color
	case "finish_desc":
		return &m.FinishDesc
	}
	return nil
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":         {"label", "name", "part", "part name", "item", "piece"},
	"template":      {"template", "shape", "type"},
	"width":         {"width", "w"},
	"height":        {"height", "h", "altitude"},
	"diameter":      {"diameter", "dia", "d", "od"},
	"base":          {"base", "b", "base width"},
	"hole_diameter": {"hole diameter", "hole_diameter", "hole dia", "hole d"},
	"hole_offset":   {"hole offset", "hole_offset", "offset", "inset"},
	"material":      {"material", "mat", "alloy"},
	"thickness":     {"thickness", "thk", "gauge", "t"},
	"quantity":      {"quantity", "qty", "count", "pcs", "pieces"},
	"finishing":     {"finishing", "finish"},
	"color":         {"color", "colour", "powder coat color", "ral"},
	"finish_desc":   {"finish description", "finishing description", "custom finish", "notes"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	var mapping ColumnMapping
	for _, role := range columnRoles {
		*mapping.field(role) = -1
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if f := mapping.field(role); *f == -1 {
						*f = i
					}
				}
			}
		}
	}

	if !isHeader {
		for i, role := range columnRoles {
			*mapping.field(role) = i
		}
		return mapping, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseLength reads an optional non-negative length. An empty cell is zero.
func parseLength(row []string, idx int, name, rowLabel string) (float64, string) {
	s := strings.TrimSuffix(getCell(row, idx), `"`)
	if s == "" {
		return 0, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if v < 0 {
		return 0, fmt.Sprintf("%s: %s must not be negative", rowLabel, name)
	}
	return v, ""
}

// parseRow extracts a quote request from a row using the given column
// mapping. Returns the row, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, catalog *model.Catalog, rowLabel string, count int) (BatchRow, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Part %d", count+1)
	}

	templateStr := getCell(row, mapping.Template)
	if templateStr == "" {
		return BatchRow{}, fmt.Sprintf("%s: Missing template value", rowLabel), nil
	}
	template, ok := model.ParseTemplate(templateStr)
	if !ok {
		return BatchRow{}, fmt.Sprintf("%s: Unknown template '%s'", rowLabel, templateStr), nil
	}

	req := model.NewQuoteRequest()
	req.Part.Template = template
	lengths := []struct {
		idx  int
		name string
		dst  *float64
	}{
		{mapping.Width, "width", &req.Part.Width},
		{mapping.Height, "height", &req.Part.Height},
		{mapping.Diameter, "diameter", &req.Part.Diameter},
		{mapping.Base, "base", &req.Part.Base},
		{mapping.HoleDiameter, "hole diameter", &req.Part.HoleDiameter},
		{mapping.HoleOffset, "hole offset", &req.Part.HoleOffset},
	}
	for _, l := range lengths {
		v, errMsg := parseLength(row, l.idx, l.name, rowLabel)
		if errMsg != "" {
			return BatchRow{}, errMsg, nil
		}
		*l.dst = v
	}

	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return BatchRow{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if qty <= 0 {
			return BatchRow{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
		}
		req.Quantity = qty
	}

	if s := getCell(row, mapping.Material); s != "" {
		id, known := resolveMaterial(catalog, s)
		if known {
			req.Material = id
		} else {
			req.Material = model.OtherOption
			if !strings.EqualFold(s, model.OtherOption) {
				req.OtherMaterial = s
				warnings = append(warnings, fmt.Sprintf("%s: Unknown material '%s', quoting as other", rowLabel, s))
			}
		}
	}

	if s := getCell(row, mapping.Thickness); s != "" {
		id, known := resolveThickness(catalog, req.Material, s)
		if known {
			req.Thickness = id
		} else {
			req.Thickness = model.OtherOption
			if !strings.EqualFold(s, model.OtherOption) {
				req.OtherThickness = s
				warnings = append(warnings, fmt.Sprintf("%s: Thickness '%s' is not stocked, quoting as other", rowLabel, s))
			}
		}
	}

	if s := getCell(row, mapping.Finishing); s != "" {
		id, ok := resolveFinishing(catalog, s)
		if !ok {
			return BatchRow{}, fmt.Sprintf("%s: Unknown finishing '%s'", rowLabel, s), nil
		}
		req.Finishing = id
	}
	req.PowderCoatColor = getCell(row, mapping.Color)
	req.CustomFinishDescription = getCell(row, mapping.FinishDesc)

	return BatchRow{Label: label, Request: req}, "", warnings
}

// resolveMaterial matches a material by id or display name.
func resolveMaterial(catalog *model.Catalog, s string) (string, bool) {
	for _, m := range catalog.Materials {
		if strings.EqualFold(s, m.ID) || strings.EqualFold(s, m.Name) {
			return m.ID, true
		}
	}
	return "", false
}

// resolveThickness matches a thickness of the given material by id, label,
// or numeric value ("0.032", "0.032\"", ".032" all match "0.032").
func resolveThickness(catalog *model.Catalog, material, s string) (string, bool) {
	m := catalog.FindMaterial(material)
	if m == nil {
		return "", false
	}
	value, numErr := strconv.ParseFloat(strings.TrimSuffix(s, `"`), 64)
	for _, t := range m.Thicknesses {
		if strings.EqualFold(s, t.ID) || strings.EqualFold(s, t.Label) {
			return t.ID, true
		}
		if id, err := strconv.ParseFloat(t.ID, 64); numErr == nil && err == nil && id == value {
			return t.ID, true
		}
	}
	return "", false
}

// finishingAliases are shorthand spellings accepted on top of ids and names.
var finishingAliases = map[string]string{
	"raw":    model.FinishingNone,
	"powder": model.FinishingPowderCoated,
	"paint":  model.FinishingMatte,
}

// resolveFinishing matches a finishing by id, display name, or alias.
func resolveFinishing(catalog *model.Catalog, s string) (string, bool) {
	if id, ok := finishingAliases[strings.ToLower(s)]; ok {
		return id, true
	}
	for _, f := range catalog.Finishings {
		if strings.EqualFold(s, f.ID) || strings.EqualFold(s, f.Name) {
			return f.ID, true
		}
	}
	return "", false
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports quote requests from a CSV file. Material, thickness
// and finishing names are resolved against the catalog.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string, catalog model.Catalog) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, &catalog, "Line", result.Warnings)
}

// ImportCSVFromReader imports quote requests from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, catalog model.Catalog) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, &catalog, "Line", nil)
}

// ImportExcel imports quote requests from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, catalog model.Catalog) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, &catalog, "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string, catalog model.Catalog) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, catalog)
	}
	return ImportCSV(path, catalog)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a request.
func importFromRows(rows [][]string, catalog *model.Catalog, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Template == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Template")
			return result
		}
	} else if len(rows[0]) >= 2 {
		// No recognized header: if the template column does not parse, the
		// first row is most likely an unrecognized header.
		if _, ok := model.ParseTemplate(getCell(rows[0], mapping.Template)); !ok {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		parsed, errMsg, warnings := parseRow(row, mapping, catalog, rowLabel, len(result.Rows))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Rows = append(result.Rows, parsed)
	}

	return result
}

// ParseFields builds one request from values keyed by column name
// ("template", "width", "material", ...), applying the same resolution and
// checks as a batch row. Command-line flags use it so both paths accept the
// same spellings.
func ParseFields(fields map[string]string, catalog model.Catalog) (BatchRow, []string, error) {
	mapping := ColumnMapping{}
	var row []string
	for _, role := range columnRoles {
		idx := -1
		if v, ok := fields[role]; ok && strings.TrimSpace(v) != "" {
			idx = len(row)
			row = append(row, v)
		}
		*mapping.field(role) = idx
	}
	for name := range fields {
		if mapping.field(name) == nil {
			return BatchRow{}, nil, fmt.Errorf("unknown field %q", name)
		}
	}

	parsed, errMsg, warnings := parseRow(row, mapping, &catalog, "input", 0)
	if errMsg != "" {
		return BatchRow{}, warnings, errors.New(errMsg)
	}
	return parsed, warnings, nil
}
