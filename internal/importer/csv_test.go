package importer

import (
	"strings"
	"testing"
)

func TestDecodeCSV(t *testing.T) {
	input := strings.Join([]string{
		"Name;Kategorie;Kosten",
		"Netflix;streaming-video;9,99",
		"DSL;internet;",
		"Strom",
	}, "\n")

	rows, err := DecodeCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeCSV() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("DecodeCSV() returned %d rows, want 3", len(rows))
	}

	if rows[0]["Name"] != "Netflix" || rows[0]["Kosten"] != "9,99" {
		t.Errorf("row 0 = %v", rows[0])
	}

	// Empty cells still materialize their column.
	if v, ok := rows[1]["Kosten"]; !ok || v != "" {
		t.Errorf("row 1 Kosten = %q (present=%v), want empty and present", v, ok)
	}

	// Short records are padded to the header width.
	if v, ok := rows[2]["Kategorie"]; !ok || v != "" {
		t.Errorf("row 2 Kategorie = %q (present=%v), want empty and present", v, ok)
	}
}

func TestDecodeCSVEmptyFile(t *testing.T) {
	if _, err := DecodeCSV(strings.NewReader("")); err == nil {
		t.Error("DecodeCSV() on empty input succeeded, want error")
	}
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	rows, err := DecodeCSV(strings.NewReader("Name;Kategorie\n"))
	if err != nil {
		t.Fatalf("DecodeCSV() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("DecodeCSV() returned %d rows, want 0", len(rows))
	}
}
