package property

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	p, err := New("content", Text, "The content")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "content" || p.DataType() != Text || p.Description() != "The content" {
		t.Errorf("unexpected property: %+v", p)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prop    string
		dt      DataType
		wantSub string
	}{
		{"empty name", "", Text, "required"},
		{"too long", strings.Repeat("a", 231), Text, "too long"},
		{"leading digit", "1content", Text, "must start"},
		{"hyphen", "my-content", Text, "must start"},
		{"bad type", "content", DataType("int"), "unsupported data type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.prop, tc.dt, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tc.wantSub)
			}
		})
	}
}
