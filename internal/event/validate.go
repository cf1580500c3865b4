package event

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultDateLayout is the layout of an HTML date input.
const DefaultDateLayout = "2006-01-02"

// Catalog message keys used by the validator.
const (
	KeyIDNumber          = "validation.id.number"
	KeyNameRequired      = "validation.name.required"
	KeyPlaceRequired     = "validation.place.required"
	KeyDateRequired      = "validation.date.required"
	KeyDateInvalid       = "validation.date.invalid"
	KeyOrganizerRequired = "validation.organizer.required"
	KeyContactRequired   = "validation.contact.required"
	KeyContactEmail      = "validation.contact.email"
)

const (
	tagEventID   = "event_id"
	tagEventDate = "event_date"
)

// Messages formats catalog messages. *i18n.Printer satisfies it.
type Messages interface {
	T(key string, args ...any) string
}

// keyMessages returns the key itself; used when no catalog is supplied.
type keyMessages struct{}

func (keyMessages) T(key string, _ ...any) string { return key }

// rule checks one field against a validator tag. The first failing rule of
// a field determines its message.
type rule struct {
	field Field
	tag   string
	key   string
}

// Validator checks raw records against the fixed event schema.
// It has no side effects and may be reused for any number of records.
type Validator struct {
	rules    []rule
	layouts  []string
	msgs     Messages
	validate *validator.Validate
}

// Option configures a Validator.
type Option func(*Validator)

// WithDateLayouts sets the accepted date layouts, tried in order.
// The first layout is also used by Format. Empty layouts are ignored.
func WithDateLayouts(layouts ...string) Option {
	return func(v *Validator) {
		var kept []string
		for _, l := range layouts {
			if l != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) > 0 {
			v.layouts = kept
		}
	}
}

// NewValidator returns a Validator reporting messages from msgs.
// A nil msgs reports bare catalog keys.
func NewValidator(msgs Messages, opts ...Option) *Validator {
	if msgs == nil {
		msgs = keyMessages{}
	}
	v := &Validator{
		layouts:  []string{DefaultDateLayout},
		msgs:     msgs,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(v)
	}

	// Registration only fails on an empty tag or nil func.
	mustRegister(v.validate, tagEventID, func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	mustRegister(v.validate, tagEventDate, func(fl validator.FieldLevel) bool {
		_, ok := v.parseDate(fl.Field().String())
		return ok
	})

	v.rules = []rule{
		{field: FieldID, tag: "omitempty," + tagEventID, key: KeyIDNumber},
		{field: FieldName, tag: "required", key: KeyNameRequired},
		{field: FieldPlace, tag: "required", key: KeyPlaceRequired},
		{field: FieldDate, tag: "required", key: KeyDateRequired},
		{field: FieldDate, tag: tagEventDate, key: KeyDateInvalid},
		{field: FieldOrganizer, tag: "required", key: KeyOrganizerRequired},
		{field: FieldContact, tag: "required", key: KeyContactRequired},
		{field: FieldContact, tag: "email", key: KeyContactEmail},
	}
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("event: registering %s: %v", tag, err))
	}
}

// Validate checks every field of raw and returns the validated record, or a
// *ValidationError listing each failing field. Values are trimmed first.
// An empty ID yields a record with ID NoID.
func (v *Validator) Validate(raw RawRecord) (Record, error) {
	raw = raw.Trimmed()

	failed := make(map[Field]string)
	for _, r := range v.rules {
		if _, done := failed[r.field]; done {
			continue
		}
		if err := v.validate.Var(raw.Value(r.field), r.tag); err != nil {
			failed[r.field] = v.msgs.T(r.key)
		}
	}
	if len(failed) > 0 {
		return Record{}, &ValidationError{Fields: failed}
	}

	id := NoID
	if raw.ID != "" {
		id, _ = strconv.Atoi(raw.ID)
	}
	date, _ := v.parseDate(raw.Date)

	return Record{
		ID:        id,
		Name:      raw.Name,
		Place:     raw.Place,
		Date:      date,
		Organizer: raw.Organizer,
		Contact:   raw.Contact,
	}, nil
}

// Format renders rec back into form values, using the primary date layout.
func (v *Validator) Format(rec Record) RawRecord {
	raw := RawRecord{
		Name:      rec.Name,
		Place:     rec.Place,
		Date:      rec.Date.Format(v.layouts[0]),
		Organizer: rec.Organizer,
		Contact:   rec.Contact,
	}
	if rec.ID != NoID {
		raw.ID = strconv.Itoa(rec.ID)
	}
	return raw
}

// DateLayout returns the primary date layout.
func (v *Validator) DateLayout() string {
	return v.layouts[0]
}

func (v *Validator) parseDate(s string) (time.Time, bool) {
	for _, layout := range v.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
