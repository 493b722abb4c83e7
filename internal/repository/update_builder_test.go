package repository

import (
	"errors"
	"testing"
)

func TestBuildUpdateOrdersByAllowList(t *testing.T) {
	allowed := []string{"title", "pages"}
	fields := map[string]any{
		"pages": 3,
		"title": "Landing",
	}

	setClause, args, err := BuildUpdate(allowed, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SET title = $1, pages = $2, updated_at = now()"
	if setClause != want {
		t.Fatalf("expected %q, got %q", want, setClause)
	}
	if len(args) != 2 || args[0] != "Landing" || args[1] != 3 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildUpdateSkipsUnknownKeys(t *testing.T) {
	allowed := []string{"width", "height"}
	fields := map[string]any{
		"width":    100,
		"id":       99,
		"; DROP":   "x",
		"password": "sneaky",
	}

	setClause, args, err := BuildUpdate(allowed, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SET width = $1, updated_at = now()"
	if setClause != want {
		t.Fatalf("expected %q, got %q", want, setClause)
	}
	if len(args) != 1 || args[0] != 100 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildUpdateSkipsNilValues(t *testing.T) {
	allowed := []string{"name", "color"}
	fields := map[string]any{
		"name":  nil,
		"color": "#000000",
	}

	setClause, args, err := BuildUpdate(allowed, fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "SET color = $1, updated_at = now()"
	if setClause != want {
		t.Fatalf("expected %q, got %q", want, setClause)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildUpdateEmptyFields(t *testing.T) {
	_, _, err := BuildUpdate([]string{"title"}, map[string]any{})
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}

	_, _, err = BuildUpdate([]string{"title"}, map[string]any{"other": 1})
	if !errors.Is(err, ErrNoFields) {
		t.Fatalf("expected ErrNoFields for filtered-out keys, got %v", err)
	}
}

func TestBuildUpdateZeroValuesKept(t *testing.T) {
	// Un cero explícito es un cambio válido, solo nil se descarta.
	setClause, args, err := BuildUpdate([]string{"z_index"}, map[string]any{"z_index": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setClause != "SET z_index = $1, updated_at = now()" {
		t.Fatalf("unexpected clause %q", setClause)
	}
	if args[0] != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}
