package cli

import (
	"bytes"
	"strings"
	"testing"

	"apac-settle/internal/models"
)

func testOutput() (*Output, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Output{writer: buf, colorEnabled: false}, buf
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{ColorGreen + "green" + ColorReset, "green"},
		{ColorBold + ColorRed + "alert" + ColorReset, "alert"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripANSI(tt.input); got != tt.expected {
			t.Errorf("stripANSI(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFeasibilityTag(t *testing.T) {
	o, _ := testOutput()

	tests := []struct {
		status   models.FeasibilityStatus
		expected string
	}{
		{models.StatusLikely, "● LIKELY"},
		{models.StatusAtRisk, "● AT_RISK"},
		{models.StatusUnlikely, "● UNLIKELY"},
	}

	for _, tt := range tests {
		if got := o.FeasibilityTag(tt.status); got != tt.expected {
			t.Errorf("FeasibilityTag(%s) = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func TestTableRender(t *testing.T) {
	o, buf := testOutput()

	table := NewTable(o, "Market", "Status")
	table.AddRow("HK", "open")
	table.AddRow("JP", "closed for holiday")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header, separator, 2 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Market") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "HK") || !strings.Contains(lines[3], "JP") {
		t.Errorf("rows out of order: %v", lines[2:])
	}

	// Columns align on the widest cell.
	hkIdx := strings.Index(lines[2], "open")
	jpIdx := strings.Index(lines[3], "closed")
	if hkIdx != jpIdx {
		t.Errorf("column misaligned: %d vs %d", hkIdx, jpIdx)
	}
}

func TestTableRenderColoredCells(t *testing.T) {
	o, buf := testOutput()

	table := NewTable(o, "Market", "State")
	table.AddRow("HK", ColorGreen+"open"+ColorReset)
	table.AddRow("JP", "closed")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Width math must ignore escape codes: "closed" is the widest cell.
	sep := lines[1]
	if len(sep) != len(lines[0]) && !strings.Contains(sep, "─") {
		t.Errorf("unexpected separator %q", sep)
	}
	if strings.Index(stripANSI(lines[2]), "open") != strings.Index(lines[3], "closed") {
		t.Error("colored cell broke column alignment")
	}
}

func TestJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	o := &Output{writer: buf, jsonMode: true}

	if !o.IsJSON() {
		t.Fatal("IsJSON should be true")
	}
	if err := o.JSON(map[string]string{"status": "LIKELY"}); err != nil {
		t.Fatalf("JSON error: %v", err)
	}
	if !strings.Contains(buf.String(), `"status": "LIKELY"`) {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
}
