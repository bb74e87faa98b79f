package smarttable

import (
	"fmt"

	"github.com/KaramelBytes/tablekit-cli/internal/dataset"
	"github.com/google/uuid"
)

// Table is a user-defined smart table: a field schema plus row data. Fields
// mutate independently of row data; schema changes never rewrite existing
// row storage; stale keys simply stop being projected.
type Table struct {
	Fields []FieldDefinition
	Rows   []dataset.Record
}

// Command mutates a session's table in response to one named user action.
type Command func(args map[string]any) error

// Session owns a table being edited plus an explicit dispatch table keyed by
// action name. Each session registers its own commands; there is no shared
// method table and no global mutation between sessions.
type Session struct {
	ID       string
	table    *Table
	commands map[string]Command
}

// NewSession wraps a table for editing and registers the built-in actions.
func NewSession(table *Table) (*Session, error) {
	if err := ValidateFields(table.Fields); err != nil {
		return nil, err
	}
	s := &Session{ID: uuid.NewString(), table: table}
	s.commands = map[string]Command{
		"add-row":      s.addRow,
		"delete-row":   s.deleteRow,
		"set-cell":     s.setCell,
		"add-field":    s.addField,
		"remove-field": s.removeField,
	}
	return s, nil
}

// Table returns the session's current table state.
func (s *Session) Table() *Table { return s.table }

// Dispatch runs the named action. Unknown actions are an error, not a no-op:
// the action vocabulary is closed.
func (s *Session) Dispatch(action string, args map[string]any) error {
	cmd, ok := s.commands[action]
	if !ok {
		return fmt.Errorf("unknown table action %q", action)
	}
	return cmd(args)
}

func (s *Session) addRow(args map[string]any) error {
	row := make(dataset.Record, len(s.table.Fields))
	for _, f := range s.table.Fields {
		if v, ok := args[f.Name]; ok {
			row[f.Name] = v
		} else {
			row[f.Name] = nil
		}
	}
	s.table.Rows = append(s.table.Rows, Recompute(row, s.table.Fields))
	return nil
}

func (s *Session) deleteRow(args map[string]any) error {
	idx, err := rowIndex(args, len(s.table.Rows))
	if err != nil {
		return err
	}
	s.table.Rows = append(s.table.Rows[:idx], s.table.Rows[idx+1:]...)
	return nil
}

// setCell writes one cell, then recomputes the row's calculated fields: an
// edit event drives recomputation, never a timer.
func (s *Session) setCell(args map[string]any) error {
	idx, err := rowIndex(args, len(s.table.Rows))
	if err != nil {
		return err
	}
	field, _ := args["field"].(string)
	if !s.hasField(field) {
		return fmt.Errorf("unknown field %q", field)
	}
	row := s.table.Rows[idx].Clone()
	row[field] = args["value"]
	s.table.Rows[idx] = Recompute(row, s.table.Fields)
	return nil
}

func (s *Session) addField(args map[string]any) error {
	def, ok := args["field"].(FieldDefinition)
	if !ok {
		return fmt.Errorf("add-field requires a field definition")
	}
	next := append(append([]FieldDefinition(nil), s.table.Fields...), def)
	if err := ValidateFields(next); err != nil {
		return err
	}
	s.table.Fields = next
	if def.Type == FieldCalculated {
		for i, row := range s.table.Rows {
			s.table.Rows[i] = Recompute(row, s.table.Fields)
		}
	}
	return nil
}

func (s *Session) removeField(args map[string]any) error {
	name, _ := args["name"].(string)
	for i, f := range s.table.Fields {
		if f.Name == name {
			s.table.Fields = append(s.table.Fields[:i], s.table.Fields[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("unknown field %q", name)
}

func (s *Session) hasField(name string) bool {
	for _, f := range s.table.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func rowIndex(args map[string]any, n int) (int, error) {
	raw, ok := args["row"]
	if !ok {
		return 0, fmt.Errorf("action requires a row index")
	}
	var idx int
	switch v := raw.(type) {
	case int:
		idx = v
	case float64:
		idx = int(v)
	default:
		return 0, fmt.Errorf("row index must be a number, got %T", raw)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("row index %d out of range [0,%d)", idx, n)
	}
	return idx, nil
}
