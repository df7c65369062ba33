// Package customfield declares the fields the Oman VAT localization adds to existing document types.
package customfield

import (
	"fmt"
	"regexp"
	"strings"

	"omanvat/internal/model"
)

// FieldType is the value type of a custom field.
type FieldType string

const (
	TypeCheck       FieldType = "Check"
	TypeData        FieldType = "Data"
	TypeReadOnly    FieldType = "Read Only"
	TypeAttachImage FieldType = "Attach Image"
)

var knownTypes = map[FieldType]bool{
	TypeCheck:       true,
	TypeData:        true,
	TypeReadOnly:    true,
	TypeAttachImage: true,
}

var fieldnamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Definition describes one custom field. Fieldname, Label and Type are required; FetchFrom
// is "<link field>.<source field>" and is mandatory for Read Only fields.
type Definition struct {
	Fieldname   string
	Label       string
	Type        FieldType
	FetchFrom   string
	InsertAfter string
	PrintHide   bool
	ReadOnly    bool
	NoCopy      bool
	Hidden      bool
}

// Validate checks the definition is complete and consistent.
func (d Definition) Validate() error {
	if !fieldnamePattern.MatchString(d.Fieldname) {
		return fmt.Errorf("fieldname '%s' must be lowercase snake_case", d.Fieldname)
	}
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("%s: label is required", d.Fieldname)
	}
	if !knownTypes[d.Type] {
		return fmt.Errorf("%s: unknown field type '%s'", d.Fieldname, d.Type)
	}
	if d.FetchFrom != "" {
		link, source, ok := strings.Cut(d.FetchFrom, ".")
		if !ok || !fieldnamePattern.MatchString(link) || !fieldnamePattern.MatchString(source) {
			return fmt.Errorf("%s: fetch_from '%s' must look like link_field.source_field", d.Fieldname, d.FetchFrom)
		}
	}
	if d.Type == TypeReadOnly && d.FetchFrom == "" {
		return fmt.Errorf("%s: read only fields must fetch their value", d.Fieldname)
	}
	if d.InsertAfter == "" && !d.Hidden {
		return fmt.Errorf("%s: visible fields need insert_after", d.Fieldname)
	}
	return nil
}

// ToModel converts the definition into the stored custom field for docType.
func (d Definition) ToModel(docType string) model.CustomField {
	return model.CustomField{
		DocType:     docType,
		Fieldname:   d.Fieldname,
		Label:       d.Label,
		Fieldtype:   string(d.Type),
		FetchFrom:   d.FetchFrom,
		InsertAfter: d.InsertAfter,
		PrintHide:   d.PrintHide,
		ReadOnly:    d.ReadOnly,
		NoCopy:      d.NoCopy,
		Hidden:      d.Hidden,
	}
}

// Mapping assigns field definitions to document types.
type Mapping map[string][]Definition

// Validate checks every definition and rejects a fieldname used twice on one document type.
func (m Mapping) Validate() error {
	for docType, defs := range m {
		seen := make(map[string]bool, len(defs))
		for _, d := range defs {
			if err := d.Validate(); err != nil {
				return fmt.Errorf("%s: %w", docType, err)
			}
			if seen[d.Fieldname] {
				return fmt.Errorf("%s: duplicate fieldname '%s'", docType, d.Fieldname)
			}
			seen[d.Fieldname] = true
		}
	}
	return nil
}

// Count returns the total number of field definitions.
func (m Mapping) Count() int {
	n := 0
	for _, defs := range m {
		n += len(defs)
	}
	return n
}
