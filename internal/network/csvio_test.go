package network

import (
	"errors"
	"strings"
	"testing"
)

func TestReadMatrix(t *testing.T) {
	m, err := ReadMatrix(strings.NewReader("1,0,2.5\n0,3,0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 2 || len(m[0]) != 3 {
		t.Fatalf("shape = (%d, %d), want (2, 3)", len(m), len(m[0]))
	}
	if m[0][2] != 2.5 || m[1][1] != 3 {
		t.Errorf("unexpected values: %v", m)
	}
}

func TestReadMatrixErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty file", ""},
		{"ragged rows", "1,2,3\n1,2\n"},
		{"non-numeric cell", "1,x,3\n"},
		{"negative weight", "1,-2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadMatrix(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("expected *FormatError, got %T: %v", err, err)
			}
		})
	}
}

func TestReadMatrixErrorMentionsLine(t *testing.T) {
	_, err := ReadMatrix(strings.NewReader("1,2\n3,oops\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
	if ferr.Line != 2 {
		t.Errorf("Line = %d, want 2", ferr.Line)
	}
	if !strings.Contains(ferr.Error(), "oops") {
		t.Errorf("message should identify the bad cell: %q", ferr.Error())
	}
}
