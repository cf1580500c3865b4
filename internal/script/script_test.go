package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_Actions(t *testing.T) {
	s, err := Parse([]byte(`
actions:
  - submit: {name: Ana, place: Hall, date: "2024-05-01", organizer: Beto, contact: a@b.com}
  - edit: 0
  - delete: 1
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(s.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, want 3", len(s.Actions))
	}
	wantKinds := []string{KindSubmit, KindEdit, KindDelete}
	for i, want := range wantKinds {
		if got := s.Actions[i].Kind(); got != want {
			t.Errorf("Actions[%d].Kind() = %q, want %q", i, got, want)
		}
	}
	if s.Actions[0].Submit.Name != "Ana" || s.Actions[0].Submit.Date != "2024-05-01" {
		t.Errorf("submit = %+v", *s.Actions[0].Submit)
	}
	if *s.Actions[1].Edit != 0 || *s.Actions[2].Delete != 1 {
		t.Errorf("edit/delete ids = %d/%d, want 0/1", *s.Actions[1].Edit, *s.Actions[2].Delete)
	}
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if len(s.Actions) != 0 {
		t.Errorf("len(Actions) = %d, want 0", len(s.Actions))
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "two kinds", data: "actions:\n  - edit: 0\n    delete: 0\n", wantErr: ErrInvalidAction},
		{name: "no kind", data: "actions:\n  - {}\n", wantErr: ErrInvalidAction},
		{name: "unknown action", data: "actions:\n  - borrar: 0\n"},
		{name: "unknown record field", data: "actions:\n  - submit: {nombre: Ana}\n"},
		{name: "non-numeric delete", data: "actions:\n  - delete: uno\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("actions:\n  - delete: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Actions) != 1 || s.Actions[0].Kind() != KindDelete {
		t.Errorf("Load() = %+v, want one delete", s.Actions)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("Load(missing) error = nil, want error")
	}
}
