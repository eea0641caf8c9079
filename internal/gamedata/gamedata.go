// Package gamedata reads the game's exported GameData.json: the declarative
// atom and word lists everything else is computed from.
package gamedata

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/d0sboots/VaultDict/internal/script"
)

// Atom type strings as they appear in the export. The engine writes both
// "modifier" and "type" for the qualifier category.
const (
	TypeAtom     = "atom"
	TypePrefix   = "prefix"
	TypeModifier = "modifier"
	TypeType     = "type"
)

// Atom is one atom declaration.
type Atom struct {
	Name     string `json:"name"`
	AtomType string `json:"atomType"`
}

// Validate validates a single atom record.
func (a Atom) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.AtomType, validation.Required,
			validation.In(TypeAtom, TypePrefix, TypeModifier, TypeType)),
	)
}

// Category maps the declared atomType to its script category.
func (a Atom) Category() script.AtomCategory {
	switch a.AtomType {
	case TypePrefix:
		return script.CategoryPrefix
	case TypeModifier, TypeType:
		return script.CategoryType
	default:
		return script.CategoryAtom
	}
}

// Word is one word declaration. Components reference concepts or other words
// by name, case-insensitively.
type Word struct {
	Name         string   `json:"name"`
	Equivalences []string `json:"equivalences,omitempty"`
	Components   []string `json:"components"`
}

// Validate validates a single word record.
func (w Word) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Name, validation.Required),
		validation.Field(&w.Components, validation.Required,
			validation.Each(validation.Required)),
	)
}

// Document is the parsed export.
type Document struct {
	Atoms []Atom `json:"atoms"`
	Words []Word `json:"words"`
}

// Validate validates the whole document, naming the offending record.
func (d *Document) Validate() error {
	if len(d.Atoms) == 0 {
		return fmt.Errorf("gamedata: no atoms declared")
	}
	for i, a := range d.Atoms {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("gamedata: atom %d (%q): %w", i, a.Name, err)
		}
	}
	for i, w := range d.Words {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("gamedata: word %d (%q): %w", i, w.Name, err)
		}
	}
	return nil
}

// AtomDecls converts the atom list for the script layer.
func (d *Document) AtomDecls() []script.AtomDecl {
	decls := make([]script.AtomDecl, len(d.Atoms))
	for i, a := range d.Atoms {
		decls[i] = script.AtomDecl{Name: a.Name, Category: a.Category()}
	}
	return decls
}

// WordDecls converts the word list for the script layer.
func (d *Document) WordDecls() []script.WordDecl {
	decls := make([]script.WordDecl, len(d.Words))
	for i, w := range d.Words {
		decls[i] = script.WordDecl{
			Name:         w.Name,
			Equivalences: w.Equivalences,
			Components:   w.Components,
		}
	}
	return decls
}

// Parse decodes and validates raw export bytes.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gamedata: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the export from a source.
func Load(src Source) (*Document, error) {
	data, err := src.Read()
	if err != nil {
		return nil, fmt.Errorf("gamedata: read: %w", err)
	}
	return Parse(data)
}
