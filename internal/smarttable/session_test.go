package smarttable

import "testing"

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(&Table{Fields: testFields()})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestSessionAddRowRecomputes(t *testing.T) {
	s := newTestSession(t)
	if err := s.Dispatch("add-row", map[string]any{"item": "nut", "price": "3", "qty": "5"}); err != nil {
		t.Fatalf("add-row: %v", err)
	}
	rows := s.Table().Rows
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0]["total"] != 15.0 {
		t.Fatalf("total = %v, want 15", rows[0]["total"])
	}
}

func TestSessionSetCellRecomputes(t *testing.T) {
	s := newTestSession(t)
	if err := s.Dispatch("add-row", map[string]any{"item": "nut", "price": "3", "qty": "5"}); err != nil {
		t.Fatalf("add-row: %v", err)
	}
	if err := s.Dispatch("set-cell", map[string]any{"row": 0, "field": "qty", "value": "10"}); err != nil {
		t.Fatalf("set-cell: %v", err)
	}
	if got := s.Table().Rows[0]["total"]; got != 30.0 {
		t.Fatalf("total after edit = %v, want 30", got)
	}
}

func TestSessionDeleteRow(t *testing.T) {
	s := newTestSession(t)
	for _, item := range []string{"a", "b", "c"} {
		if err := s.Dispatch("add-row", map[string]any{"item": item}); err != nil {
			t.Fatalf("add-row: %v", err)
		}
	}
	if err := s.Dispatch("delete-row", map[string]any{"row": 1}); err != nil {
		t.Fatalf("delete-row: %v", err)
	}
	rows := s.Table().Rows
	if len(rows) != 2 || rows[0]["item"] != "a" || rows[1]["item"] != "c" {
		t.Fatalf("rows after delete = %v", rows)
	}
	if err := s.Dispatch("delete-row", map[string]any{"row": 5}); err == nil {
		t.Fatal("want out-of-range error")
	}
}

func TestSessionAddFieldBackfills(t *testing.T) {
	s := newTestSession(t)
	if err := s.Dispatch("add-row", map[string]any{"item": "nut", "price": "2", "qty": "3"}); err != nil {
		t.Fatalf("add-row: %v", err)
	}
	def := FieldDefinition{Name: "double", Type: FieldCalculated, Formula: "Price * 2"}
	if err := s.Dispatch("add-field", map[string]any{"field": def}); err != nil {
		t.Fatalf("add-field: %v", err)
	}
	if got := s.Table().Rows[0]["double"]; got != 4.0 {
		t.Fatalf("backfilled value = %v, want 4", got)
	}
	// Adding a conflicting field is rejected and leaves the schema intact.
	bad := FieldDefinition{Name: "item", Label: "Other", Type: FieldText}
	if err := s.Dispatch("add-field", map[string]any{"field": bad}); err == nil {
		t.Fatal("want duplicate-name error")
	}
}

func TestSessionRemoveField(t *testing.T) {
	s := newTestSession(t)
	if err := s.Dispatch("remove-field", map[string]any{"name": "total"}); err != nil {
		t.Fatalf("remove-field: %v", err)
	}
	if len(s.Table().Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(s.Table().Fields))
	}
	if err := s.Dispatch("remove-field", map[string]any{"name": "missing"}); err == nil {
		t.Fatal("want unknown-field error")
	}
}

func TestSessionUnknownAction(t *testing.T) {
	s := newTestSession(t)
	if err := s.Dispatch("drop-table", nil); err == nil {
		t.Fatal("want unknown-action error")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)
	if a.ID == b.ID {
		t.Fatal("sessions share an id")
	}
	if err := a.Dispatch("add-row", map[string]any{"item": "only-in-a"}); err != nil {
		t.Fatalf("add-row: %v", err)
	}
	if len(b.Table().Rows) != 0 {
		t.Fatal("mutating one session leaked into another")
	}
}

func TestSetCellMissingRow(t *testing.T) {
	s := newTestSession(t)
	if err := s.Dispatch("set-cell", map[string]any{"field": "qty", "value": "1"}); err == nil {
		t.Fatal("want missing-row error")
	}
}
