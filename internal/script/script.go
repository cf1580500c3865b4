// Package script drives a session from a YAML list of actions, for
// non-interactive use of the form.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/agenda/internal/event"
)

// Action kinds.
const (
	KindSubmit = "submit"
	KindEdit   = "edit"
	KindDelete = "delete"
)

// ErrInvalidAction indicates an action that does not name exactly one kind.
var ErrInvalidAction = errors.New("script: action must set exactly one of submit, edit, delete")

// Script is an ordered list of actions.
type Script struct {
	Actions []Action `yaml:"actions"`
}

// Action is a single user action. Exactly one field is set.
type Action struct {
	Submit *event.RawRecord `yaml:"submit"`
	Edit   *int             `yaml:"edit"`
	Delete *int             `yaml:"delete"`
}

// Kind returns the action kind, or "" if the action is malformed.
func (a Action) Kind() string {
	var kinds []string
	if a.Submit != nil {
		kinds = append(kinds, KindSubmit)
	}
	if a.Edit != nil {
		kinds = append(kinds, KindEdit)
	}
	if a.Delete != nil {
		kinds = append(kinds, KindDelete)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: reading %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script, rejecting unknown fields and malformed actions.
// An empty document is an empty script.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("script: parsing: %w", err)
	}
	for i, a := range s.Actions {
		if a.Kind() == "" {
			return nil, fmt.Errorf("%w (action %d)", ErrInvalidAction, i+1)
		}
	}
	return &s, nil
}
