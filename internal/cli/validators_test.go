package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/promptdeck/promptdeck/pkg/models"
)

func TestParsePageID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "valid", input: "3", want: 3},
		{name: "with spaces", input: " 12 ", want: 12},
		{name: "zero", input: "0", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePageID: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateTagType(t *testing.T) {
	if err := ValidateTagType("head"); err != nil {
		t.Errorf("head rejected: %v", err)
	}
	if err := ValidateTagType("TAIL"); err != nil {
		t.Errorf("TAIL rejected: %v", err)
	}
	if err := ValidateTagType("middle"); !errors.Is(err, models.ErrInvalidTagType) {
		t.Errorf("middle: got %v, want ErrInvalidTagType", err)
	}
}

func TestNormalizeTagType(t *testing.T) {
	if got := NormalizeTagType("TAIL"); got != models.TagTypeTail {
		t.Errorf("TAIL normalized to %q", got)
	}
	if got := NormalizeTagType("anything"); got != models.TagTypeHead {
		t.Errorf("fallback normalized to %q", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := TruncateString("a very long page name", 10); got != "a very ..." {
		t.Errorf("got %q", got)
	}
}

func TestOutputResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]int{"count": 2}
	if err := OutputResults(&buf, "json", data); err != nil {
		t.Fatalf("OutputResults: %v", err)
	}
	if !strings.Contains(buf.String(), `"count": 2`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestOutputResultsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputResults(&buf, "xml", nil); err == nil {
		t.Error("xml accepted")
	}
}
