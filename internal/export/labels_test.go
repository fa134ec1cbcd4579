package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	err := ExportLabels(path, []QuoteDocument{bracketDoc(), gussetDoc(), discDoc()})
	if err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoEstimableQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportLabels(path, []QuoteDocument{manualDoc()}); err == nil {
		t.Fatal("expected error when no quote has an estimate")
	}
	if err := ExportLabels(path, nil); err == nil {
		t.Fatal("expected error for no quotes")
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	docs := make([]QuoteDocument, labelsPerPage+5)
	for i := range docs {
		docs[i] = bracketDoc()
	}
	path := filepath.Join(t.TempDir(), "many.pdf")
	if err := ExportLabels(path, docs); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	bracket := bracketDoc()
	labels := CollectLabelInfos([]QuoteDocument{bracket, manualDoc(), discDoc()})

	if len(labels) != 2 {
		t.Fatalf("expected 2 labels (manual quote skipped), got %d", len(labels))
	}
	l := labels[0]
	if l.Reference != bracket.Reference || l.Label != "Mounting Bracket" {
		t.Errorf("unexpected label identity: %+v", l)
	}
	if l.Quantity != 25 {
		t.Errorf("expected quantity 25, got %d", l.Quantity)
	}
	if l.Total != bracket.Quote.Result.TotalCost {
		t.Errorf("expected total %.2f, got %.2f", bracket.Quote.Result.TotalCost, l.Total)
	}
	if labels[1].Label != "Circle / Disc" {
		t.Errorf("expected default label on second entry, got %q", labels[1].Label)
	}
}

func TestTruncate_KeepsWholeRunes(t *testing.T) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetFont("Helvetica", "B", 9)

	long := strings.Repeat("Ø12 flange ", 10)
	got := truncate(pdf, long, 30)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated label is not valid UTF-8: %q", got)
	}
	if got := truncate(pdf, "Ø2", 30); got != "Ø2" {
		t.Errorf("short label changed: %q", got)
	}
}

func TestExportLabels_MultibyteLabel(t *testing.T) {
	doc := bracketDoc()
	doc.Label = strings.Repeat("Ø", 60)
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, []QuoteDocument{doc}); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}
