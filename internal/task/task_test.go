//nolint:testpackage // Tests require internal access for thorough testing
package task

import (
	"errors"
	"testing"

	boarderrors "github.com/abatilo/taskboard/internal/errors"
)

func TestIsValidStatus(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusDone, true},
		{Status("todo"), false},
		{Status("invalid"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := IsValidStatus(tt.status); got != tt.valid {
				t.Errorf("IsValidStatus(%q) = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"TODO", StatusTodo, false},
		{"todo", StatusTodo, false},
		{"To Do", StatusTodo, false},
		{"IN_PROGRESS", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"doing", StatusInProgress, false},
		{" Done ", StatusDone, false},
		{"closed", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				var invalid boarderrors.InvalidStatusError
				if !errors.As(err, &invalid) {
					t.Fatalf("ParseStatus(%q) error = %v, want InvalidStatusError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStatus(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStatusTitleAndOrder(t *testing.T) {
	want := []string{"To Do", "In Progress", "Done"}
	for i, s := range Statuses {
		if s.Title() != want[i] {
			t.Errorf("%s.Title() = %q, want %q", s, s.Title(), want[i])
		}
		if s.Order() != i {
			t.Errorf("%s.Order() = %d, want %d", s, s.Order(), i)
		}
	}
	if Status("nope").Order() != -1 {
		t.Error("unknown status should have order -1")
	}
}

func TestValidateInput(t *testing.T) {
	title, desc, err := ValidateInput("  Write docs  ", "  some detail ")
	if err != nil {
		t.Fatalf("ValidateInput failed: %v", err)
	}
	if title != "Write docs" {
		t.Errorf("title = %q, want %q", title, "Write docs")
	}
	if desc != "some detail" {
		t.Errorf("description = %q, want %q", desc, "some detail")
	}

	for _, short := range []string{"", "ab", "   ab   "} {
		if _, _, err := ValidateInput(short, ""); err == nil {
			t.Errorf("ValidateInput(%q) should fail", short)
		}
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Error("Expected different IDs")
	}
	if len(a) != 36 {
		t.Errorf("ID length = %d, want 36", len(a))
	}
	if len(ShortID(a)) != 8 {
		t.Errorf("ShortID length = %d, want 8", len(ShortID(a)))
	}
	if ShortID("abc") != "abc" {
		t.Errorf("ShortID of short id should be unchanged")
	}
}

func TestMatchesRef(t *testing.T) {
	id := "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	tests := []struct {
		ref  string
		want bool
	}{
		{id, true},
		{"1b9d", true},
		{"1B9D6BCD", true},
		{"1b9d6bcdbbfd", true},
		{"1b9d6bcd-bbfd", true},
		{"2b9d", false},
		{"", false},
		{"-", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if got := MatchesRef(id, tt.ref); got != tt.want {
				t.Errorf("MatchesRef(%q) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}
