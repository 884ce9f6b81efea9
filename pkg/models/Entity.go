package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

var (
	ErrUnknownEntity = fmt.Errorf("unknown entity")
)

/*
Record is a single item returned by a list endpoint. Cells returns the
displayed values in the same order as the owning entity's Columns.
*/
type Record interface {
	RecordID() uint
	Cells() []string
}

/*
Row is a decoded record, flattened for display.
*/
type Row struct {
	ID    uint
	Cells []string
}

/*
Entity describes one resource collection exposed by the backend: the
path segment used in URLs, the JSON key holding the identifier and the
columns shown in its table.
*/
type Entity struct {
	Name     string
	Singular string
	Title    string
	IDField  string
	Columns  []string

	decode func(body []byte) ([]Row, error)
}

var (
	Clients      = newEntity[Client]("client", "Client", "Clients", "client_id", "ID", "Name", "Email")
	Employees    = newEntity[Employee]("employee", "Employee", "Employees", "employee_id", "ID", "Name", "Email", "Role")
	Works        = newEntity[Work]("work", "Work", "Works", "work_id", "ID", "Description", "Cost")
	Vehicles     = newEntity[Vehicle]("vehicle", "Vehicle", "Vehicles", "vehicle_id", "ID", "License Plate", "Brand", "Model", "Year")
	Tasks        = newEntity[Task]("task", "Task", "Tasks", "task_id", "ID", "Description", "Employee", "Work", "Start", "End", "Status")
	Invoices     = newEntity[Invoice]("invoice", "Invoice", "Invoices", "invoice_id", "ID", "Client", "Issued At", "Total", "IVA", "Total With IVA")
	InvoiceItems = newEntity[InvoiceItem]("invoice_item", "Invoice item", "Invoice Items", "item_id", "ID", "Description", "Cost", "Invoice", "Task")

	entities = []Entity{Clients, Employees, Works, Vehicles, Tasks, Invoices, InvoiceItems}
)

func newEntity[T Record](name, singular, title, idField string, columns ...string) Entity {
	return Entity{
		Name:     name,
		Singular: singular,
		Title:    title,
		IDField:  idField,
		Columns:  columns,
		decode:   decodeRows[T],
	}
}

/*
Entities returns every entity the dashboard manages, in display order.
*/
func Entities() []Entity {
	result := make([]Entity, len(entities))
	copy(result, entities)
	return result
}

/*
LookupEntity finds an entity by its path segment. Names are matched
case-insensitively.
*/
func LookupEntity(name string) (Entity, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	for _, e := range entities {
		if e.Name == name {
			return e, nil
		}
	}

	return Entity{}, fmt.Errorf("%w: '%s'", ErrUnknownEntity, name)
}

/*
DecodeRows parses a JSON array of this entity's records.
*/
func (e Entity) DecodeRows(body []byte) ([]Row, error) {
	if e.decode == nil {
		return nil, fmt.Errorf("entity '%s' has no decoder", e.Name)
	}

	return e.decode(body)
}

// ColumnCount includes the trailing actions column.
func (e Entity) ColumnCount() int {
	return len(e.Columns) + 1
}

func (e Entity) TableBodyID() string {
	return e.Name + "TableBody"
}

func decodeRows[T Record](body []byte) ([]Row, error) {
	var (
		err     error
		records []T
	)

	if err = json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("error decoding list of records: %w", err)
	}

	rows := make([]Row, 0, len(records))

	for _, record := range records {
		rows = append(rows, Row{
			ID:    record.RecordID(),
			Cells: record.Cells(),
		})
	}

	return rows, nil
}
