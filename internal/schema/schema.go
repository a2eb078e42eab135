package schema

import (
	"go-export-service/internal/model"
)

// Column maps an output column to its database column and CSV header
type Column struct {
	Name     string
	DBColumn string
	Header   string
}

// Template is a named column/formatting profile controlling output shape
type Template struct {
	Name    string
	Columns []Column
}

// Headers returns the CSV header row for the template
func (t Template) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}
	return headers
}

// ExportType describes one exportable entity: its backing table, the filter
// fields the coordinator recognizes, and the templates it can render.
type ExportType struct {
	Name            string
	Table           string
	FilterColumns   map[string]string // filter field -> database column
	Templates       map[string]Template
	DefaultTemplate string
}

// Template resolves a template name, falling back to the default when the
// request leaves it empty. Unknown names are a validation error.
func (et *ExportType) Template(name string) (Template, error) {
	if name == "" {
		name = et.DefaultTemplate
	}
	tmpl, ok := et.Templates[name]
	if !ok {
		return Template{}, model.Validationf("unknown template %q for export type %q", name, et.Name)
	}
	return tmpl, nil
}

// FilterColumn maps a filter field name to its database column
func (et *ExportType) FilterColumn(field string) (string, bool) {
	col, ok := et.FilterColumns[field]
	return col, ok
}

var registry = map[string]*ExportType{
	"participants": {
		Name:  "participants",
		Table: "participants",
		FilterColumns: map[string]string{
			"id":          "id",
			"program_id":  "program_id",
			"form_status": "form_status",
			"email":       "email",
			"score":       "score",
			"enrolled_at": "enrolled_at",
		},
		Templates: map[string]Template{
			"standard": {
				Name: "standard",
				Columns: []Column{
					{Name: "id", DBColumn: "id", Header: "ID"},
					{Name: "first_name", DBColumn: "first_name", Header: "First Name"},
					{Name: "last_name", DBColumn: "last_name", Header: "Last Name"},
					{Name: "email", DBColumn: "email", Header: "Email"},
					{Name: "form_status", DBColumn: "form_status", Header: "Form Status"},
				},
			},
			"detailed": {
				Name: "detailed",
				Columns: []Column{
					{Name: "id", DBColumn: "id", Header: "ID"},
					{Name: "program_id", DBColumn: "program_id", Header: "Program ID"},
					{Name: "first_name", DBColumn: "first_name", Header: "First Name"},
					{Name: "last_name", DBColumn: "last_name", Header: "Last Name"},
					{Name: "email", DBColumn: "email", Header: "Email"},
					{Name: "form_status", DBColumn: "form_status", Header: "Form Status"},
					{Name: "score", DBColumn: "score", Header: "Score"},
					{Name: "enrolled_at", DBColumn: "enrolled_at", Header: "Enrolled At"},
				},
			},
			"summary": {
				Name: "summary",
				Columns: []Column{
					{Name: "id", DBColumn: "id", Header: "ID"},
					{Name: "program_id", DBColumn: "program_id", Header: "Program ID"},
					{Name: "form_status", DBColumn: "form_status", Header: "Form Status"},
				},
			},
		},
		DefaultTemplate: "standard",
	},
}

// Lookup resolves an export type by name
func Lookup(name string) (*ExportType, error) {
	et, ok := registry[name]
	if !ok {
		return nil, model.Validationf("unknown export type %q", name)
	}
	return et, nil
}

// Types lists the registered export type names
func Types() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
