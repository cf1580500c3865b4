// Package event defines the event record and the validation gate every
// submission passes before it may enter the store.
package event

import (
	"strings"
	"time"
)

// NoID marks a record whose identity has not been assigned yet.
// It never matches a stored record.
const NoID = -1

// Field names a form field.
type Field string

const (
	FieldID        Field = "id"
	FieldName      Field = "name"
	FieldPlace     Field = "place"
	FieldDate      Field = "date"
	FieldOrganizer Field = "organizer"
	FieldContact   Field = "contact"
)

// FormFields lists the user-editable fields in display order.
var FormFields = []Field{FieldName, FieldPlace, FieldDate, FieldOrganizer, FieldContact}

// fieldOrder is the order used when reporting validation errors.
var fieldOrder = append([]Field{FieldID}, FormFields...)

// LabelKey returns the catalog key of the field's label.
func (f Field) LabelKey() string {
	return "field." + string(f)
}

// Record is a validated event entry.
type Record struct {
	ID        int
	Name      string
	Place     string
	Date      time.Time
	Organizer string
	Contact   string
}

// RawRecord holds unvalidated form values. An empty ID means "unset".
type RawRecord struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Place     string `yaml:"place"`
	Date      string `yaml:"date"`
	Organizer string `yaml:"organizer"`
	Contact   string `yaml:"contact"`
}

// Value returns the raw value of field f.
func (r RawRecord) Value(f Field) string {
	switch f {
	case FieldID:
		return r.ID
	case FieldName:
		return r.Name
	case FieldPlace:
		return r.Place
	case FieldDate:
		return r.Date
	case FieldOrganizer:
		return r.Organizer
	case FieldContact:
		return r.Contact
	default:
		return ""
	}
}

// Set assigns v to field f. Unknown fields are ignored.
func (r *RawRecord) Set(f Field, v string) {
	switch f {
	case FieldID:
		r.ID = v
	case FieldName:
		r.Name = v
	case FieldPlace:
		r.Place = v
	case FieldDate:
		r.Date = v
	case FieldOrganizer:
		r.Organizer = v
	case FieldContact:
		r.Contact = v
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every value.
func (r RawRecord) Trimmed() RawRecord {
	var out RawRecord
	for _, f := range fieldOrder {
		out.Set(f, strings.TrimSpace(r.Value(f)))
	}
	return out
}
