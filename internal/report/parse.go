// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package report

import (
	"encoding/json"
	"strings"

	"github.com/mcubecollections/selfie-verification/internal/models"
)

// column is one parsed serialized-JSON column of a verification record.
// root holds the top level payload, data the optional "data" envelope.
// Malformed JSON degrades to an empty column; parse errors are never
// surfaced to the caller.
type column struct {
	root *models.ProviderData
	data *models.ProviderData
}

func parseColumn(s string) column {
	s = strings.TrimSpace(s)
	if s == "" {
		return column{}
	}

	var root models.ProviderData
	if err := json.Unmarshal([]byte(s), &root); err != nil {
		return column{}
	}
	var wrap struct {
		Data *models.ProviderData `json:"data"`
	}
	_ = json.Unmarshal([]byte(s), &wrap)

	return column{root: &root, data: wrap.Data}
}

func (c column) rootPerson() *models.Person {
	if c.root == nil {
		return nil
	}
	return c.root.Person
}

func (c column) dataPerson() *models.Person {
	if c.data == nil {
		return nil
	}
	return c.data.Person
}

// extractPerson walks the possible person locations in priority order and
// returns the first hit together with its surrounding payload envelope.
func extractPerson(personCol, responseCol column) (*models.Person, *models.ProviderData) {
	candidates := []struct {
		person   *models.Person
		envelope *models.ProviderData
	}{
		{personCol.rootPerson(), personCol.root},
		{personCol.dataPerson(), personCol.data},
		{responseCol.dataPerson(), responseCol.data},
		{responseCol.rootPerson(), responseCol.root},
	}
	for _, c := range candidates {
		if c.person != nil {
			return c.person, c.envelope
		}
	}
	return nil, nil
}

// firstValue returns the first renderable value from the candidates, or "".
func firstValue(candidates ...string) string {
	for _, v := range candidates {
		if renderable(v) {
			return v
		}
	}
	return ""
}

// renderable implements the field hygiene rule: a value renders only when
// non-empty after trimming and not a literal "null"/"undefined" left over
// from a sloppy serializer.
func renderable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "null" && v != "undefined"
}
