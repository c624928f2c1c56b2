package models

import (
	"github.com/go-playground/validator/v10"
	"github.com/rohanthewiz/serr"
)

// Suggestion is the normalized unit returned by every lookup path,
// whatever shape the upstream endpoint uses.
// ID re-identifies the entity; Name is for display only.
type Suggestion struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

// FieldValue is what gets persisted into the host entry field:
// a copy of the selected Suggestion tagged with the content type
// that was active when it was picked.
type FieldValue struct {
	Type ContentType `json:"type" msgpack:"type" validate:"required,oneof=CATEGORY SUBCATEGORY MERCHANT BRAND"`
	ID   string      `json:"id" msgpack:"id" validate:"required"`
	Name string      `json:"name" msgpack:"name" validate:"required"`
}

// validate is shared; validator caches struct metadata internally.
var validate = validator.New()

// Validate checks that the value is complete. A FieldValue is never
// stored partially, so every field is required.
func (v FieldValue) Validate() error {
	if err := validate.Struct(v); err != nil {
		return serr.Wrap(err, "invalid field value")
	}
	return nil
}

// NewFieldValue composes the persisted value from a type and selection.
func NewFieldValue(ct ContentType, s Suggestion) FieldValue {
	return FieldValue{Type: ct, ID: s.ID, Name: s.Name}
}

// Hydrate splits a stored value back into session state.
// Missing or unknown parts are treated as unset rather than rejected,
// so a half-broken stored value still mounts.
func (v *FieldValue) Hydrate() (ContentType, *Suggestion) {
	if v == nil {
		return "", nil
	}

	var ct ContentType
	if v.Type.IsValid() {
		ct = v.Type
	}

	if v.ID == "" {
		return ct, nil
	}
	return ct, &Suggestion{ID: v.ID, Name: v.Name}
}
