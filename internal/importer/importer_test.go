package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/xuri/excelize/v2"
)

var catalog = model.DefaultCatalog()

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Template,Width,Height\nPlate,rectangle,10,5\nDisc,circle,,\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Template;Width;Height\nPlate;rectangle;10,5;5\nDisc;circle;;\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tTemplate\tWidth\tHeight\nPlate\trectangle\t10\t5\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Template|Width|Height\nPlate|rectangle|10|5\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Template", "Width", "Height", "Material", "Thickness", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	want := map[string]int{
		"label": 0, "template": 1, "width": 2, "height": 3, "material": 4, "thickness": 5, "quantity": 6,
		"diameter": -1, "base": -1, "hole_diameter": -1, "finishing": -1,
	}
	for role, idx := range want {
		if got := *mapping.field(role); got != idx {
			t.Errorf("expected %s at %d, got %d", role, idx, got)
		}
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"NAME", "Shape", "DIA", "Hole Dia", "Offset", "Alloy", "Gauge", "QTY", "Finish", "RAL", "Notes"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Template != 1 || mapping.Diameter != 2 {
		t.Errorf("unexpected leading columns: %+v", mapping)
	}
	if mapping.HoleDiameter != 3 || mapping.HoleOffset != 4 {
		t.Errorf("unexpected hole columns: %+v", mapping)
	}
	if mapping.Material != 5 || mapping.Thickness != 6 || mapping.Quantity != 7 {
		t.Errorf("unexpected stock columns: %+v", mapping)
	}
	if mapping.Finishing != 8 || mapping.Color != 9 || mapping.FinishDesc != 10 {
		t.Errorf("unexpected finishing columns: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Plate", "rectangle", "10", "5"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header")
	}
	for i, role := range columnRoles {
		if got := *mapping.field(role); got != i {
			t.Errorf("expected positional %s at %d, got %d", role, i, got)
		}
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := `Label,Template,Width,Height,Hole Diameter,Hole Offset,Material,Thickness,Qty
Bracket,rect_holes,10,5,0.25,0.5,aluminum_3003,0.032,25
Plate,Rectangle / Square,4,4,,,Mild Steel A36,0.059,1
`
	result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}

	r := result.Rows[0]
	if r.Label != "Bracket" {
		t.Errorf("expected label 'Bracket', got %q", r.Label)
	}
	want := model.PartSpec{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: 0.25, HoleOffset: 0.5}
	if r.Request.Part != want {
		t.Errorf("expected part %+v, got %+v", want, r.Request.Part)
	}
	if r.Request.Material != "aluminum_3003" || r.Request.Thickness != "0.032" || r.Request.Quantity != 25 {
		t.Errorf("unexpected stock: %+v", r.Request)
	}
	if r.Request.Finishing != model.FinishingNone {
		t.Errorf("expected default finishing none, got %q", r.Request.Finishing)
	}

	p := result.Rows[1].Request
	if p.Part.Template != model.TemplateRectangle {
		t.Errorf("expected template parsed from display name, got %q", p.Part.Template)
	}
	if p.Material != "mild_steel_a36" {
		t.Errorf("expected material resolved from name, got %q", p.Material)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Disc,circle,,,4,,,,stainless_304,0.060,3\nGusset,triangle_holes,,4,,6,0.25,0.75,aluminum_3003,0.063,10\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if result.Rows[0].Request.Part.Diameter != 4 {
		t.Errorf("expected diameter 4, got %f", result.Rows[0].Request.Part.Diameter)
	}
	g := result.Rows[1].Request.Part
	if g.Base != 6 || g.Height != 4 || g.HoleOffset != 0.75 {
		t.Errorf("unexpected triangle: %+v", g)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	data := "Part No,Kind,X,Y\nA1,rectangle,2,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d (errors: %v)", len(result.Rows), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "header") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Template;Width;Height\nrectangle;10;5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';', catalog)

	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	if result.Rows[0].Label != "Part 1" {
		t.Errorf("expected default label 'Part 1', got %q", result.Rows[0].Label)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',', catalog)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"missing template", "A,,10,5,1", "Missing template"},
		{"unknown template", "A,hexagon,10,5,1", "Unknown template 'hexagon'"},
		{"invalid width", "A,rectangle,abc,5,1", "Invalid width 'abc'"},
		{"negative height", "A,rectangle,10,-5,1", "height must not be negative"},
		{"invalid quantity", "A,rectangle,10,5,many", "Invalid quantity 'many'"},
		{"zero quantity", "A,rectangle,10,5,0", "Quantity must be positive"},
		{"unknown finishing", "A,rectangle,10,5,1,chrome", "Unknown finishing 'chrome'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Label,Template,Width,Height,Qty,Finishing\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)
			if len(result.Rows) != 0 {
				t.Errorf("expected no rows, got %d", len(result.Rows))
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, result.Errors)
			}
			if len(result.Errors) == 1 && !strings.HasPrefix(result.Errors[0], "Line 2:") {
				t.Errorf("expected line number in error, got %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Template,Width,Height\nrectangle,10,5\nrectangle,x,5\n\ncircle,,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)

	if len(result.Rows) != 2 {
		t.Errorf("expected 2 valid rows, got %d", len(result.Rows))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_OtherMaterial(t *testing.T) {
	data := "Template,Width,Height,Material,Thickness\nrectangle,3,3,Copper C110,0.040\nrectangle,3,3,other,other\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)

	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	r := result.Rows[0].Request
	if r.Material != model.OtherOption || r.OtherMaterial != "Copper C110" {
		t.Errorf("expected unknown material to become other, got %q / %q", r.Material, r.OtherMaterial)
	}
	if r.Thickness != model.OtherOption || r.OtherThickness != "0.040" {
		t.Errorf("expected unknown thickness to become other, got %q / %q", r.Thickness, r.OtherThickness)
	}
	if len(result.Warnings) < 2 {
		t.Errorf("expected warnings for unknown material and thickness, got %v", result.Warnings)
	}

	explicit := result.Rows[1].Request
	if explicit.OtherMaterial != "" || explicit.OtherThickness != "" {
		t.Errorf("explicit other should leave descriptions empty, got %+v", explicit)
	}
}

func TestImportCSVFromReader_Finishing(t *testing.T) {
	data := `Template,Width,Height,Finish,Color,Finish Description
rectangle,3,3,powder,RAL 9005,
rectangle,3,3,Custom Finishing,,anodize black
rectangle,3,3,Matte Finish (Ready for Paint),,
`
	result := ImportCSVFromReader(strings.NewReader(data), ',', catalog)
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d (errors: %v)", len(result.Rows), result.Errors)
	}
	if r := result.Rows[0].Request; r.Finishing != model.FinishingPowderCoated || r.PowderCoatColor != "RAL 9005" {
		t.Errorf("unexpected powder coat row: %+v", r)
	}
	if r := result.Rows[1].Request; r.Finishing != model.FinishingCustom || r.CustomFinishDescription != "anodize black" {
		t.Errorf("unexpected custom finishing row: %+v", r)
	}
	if r := result.Rows[2].Request; r.Finishing != model.FinishingMatte {
		t.Errorf("expected matte finishing, got %q", r.Finishing)
	}
}

func TestResolveThickness(t *testing.T) {
	tests := []struct {
		material, in, want string
		ok                 bool
	}{
		{"aluminum_3003", "0.032", "0.032", true},
		{"aluminum_3003", ".032", "0.032", true},
		{"aluminum_3003", `0.063"`, "0.063", true},
		{"aluminum_3003", `0.125" (1/8")`, "0.125", true},
		{"aluminum_3003", "0.250", "", false},
		{"", "0.032", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveThickness(&catalog, tt.material, tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("resolveThickness(%q, %q) = %q, %v; want %q, %v", tt.material, tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestImportResult_Requests(t *testing.T) {
	data := "Template,Width,Height\nrectangle,1,2\nrectangle,3,4\n"
	reqs := ImportCSVFromReader(strings.NewReader(data), ',', catalog).Requests()
	if len(reqs) != 2 || reqs[1].Part.Width != 3 {
		t.Errorf("unexpected requests: %+v", reqs)
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.csv")
	content := "Label;Template;Width;Height;Qty\nPlate;rectangle;10;5;2\nDisc;circle;;;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	result := ImportFile(path, catalog)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/batch.csv", catalog)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	result := ImportCSV(path, catalog)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Template", "Diameter", "Material", "Thickness", "Quantity"},
		{"Disc", "circle", 4, "Stainless Steel 304", "0.060", 3},
		{"Washer", "circle", 1.5, "aluminum_3003", "0.032", 100},
	})

	result := ImportFile(path, catalog)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Rows))
	}
	r := result.Rows[0].Request
	if r.Part.Diameter != 4 || r.Material != "stainless_304" || r.Thickness != "0.060" || r.Quantity != 3 {
		t.Errorf("unexpected first row: %+v", r)
	}
	if result.Rows[1].Request.Part.Diameter != 1.5 {
		t.Errorf("expected diameter 1.5, got %f", result.Rows[1].Request.Part.Diameter)
	}
}

func TestImportExcel_MissingTemplateColumn(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height"},
		{"Plate", 10, 5},
	})

	result := ImportExcel(path, catalog)
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Template") {
		t.Errorf("expected missing template column error, got %v", result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/batch.xlsx", catalog)
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestParseFields(t *testing.T) {
	row, warnings, err := ParseFields(map[string]string{
		"label":         "Gusset",
		"template":      "triangle_holes",
		"base":          "6",
		"height":        "4",
		"hole_diameter": "0.25",
		"hole_offset":   "0.75",
		"material":      "Mild Steel A36",
		"thickness":     ".059",
		"quantity":      "4",
		"finishing":     "powder",
		"color":         "RAL 9005",
	}, catalog)
	if err != nil {
		t.Fatalf("ParseFields failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	r := row.Request
	if row.Label != "Gusset" || r.Part.Template != model.TemplateTriangleHoles {
		t.Errorf("unexpected row: %+v", row)
	}
	if r.Material != "mild_steel_a36" || r.Thickness != "0.059" {
		t.Errorf("expected mild_steel_a36/0.059, got %s/%s", r.Material, r.Thickness)
	}
	if r.Finishing != model.FinishingPowderCoated || r.PowderCoatColor != "RAL 9005" {
		t.Errorf("unexpected finishing: %s %q", r.Finishing, r.PowderCoatColor)
	}
}

func TestParseFields_Errors(t *testing.T) {
	if _, _, err := ParseFields(map[string]string{"width": "3"}, catalog); err == nil {
		t.Error("expected error without template")
	}
	if _, _, err := ParseFields(map[string]string{"template": "circle", "colour_code": "x"}, catalog); err == nil {
		t.Error("expected error for unknown field")
	}
	if _, _, err := ParseFields(map[string]string{"template": "circle", "quantity": "0"}, catalog); err == nil {
		t.Error("expected error for zero quantity")
	}
	for _, v := range []string{"NaN", "Inf", "-Inf", "1e400", "abc"} {
		if _, _, err := ParseFields(map[string]string{"template": "circle", "diameter": v}, catalog); err == nil {
			t.Errorf("expected error for diameter %q", v)
		}
		if _, _, err := ParseFields(map[string]string{"template": "rect_holes", "width": "10", "height": "5", "hole_diameter": v}, catalog); err == nil {
			t.Errorf("expected error for hole diameter %q", v)
		}
	}
}
