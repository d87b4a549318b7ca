package profiles

import (
	"encoding/json"
	"fmt"
)

// Document is the persisted settings document: an ordered profile list.
// Top-level fields other than "profiles" are kept verbatim so that a
// load/save cycle never drops data this package does not own.
type Document[T any, PT Entry[T]] struct {
	Profiles []PT

	extra map[string]json.RawMessage
}

// NewDocument returns an empty document.
func NewDocument[T any, PT Entry[T]]() *Document[T, PT] {
	return &Document[T, PT]{Profiles: []PT{}}
}

// MarshalJSON encodes the profile list alongside any preserved fields.
func (d Document[T, PT]) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+1)
	for k, v := range d.extra {
		out[k] = v
	}
	profiles := d.Profiles
	if profiles == nil {
		profiles = []PT{}
	}
	out["profiles"] = profiles
	return json.Marshal(out)
}

// UnmarshalJSON decodes the profile list and stashes unknown fields.
func (d *Document[T, PT]) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing settings document: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("parsing settings document: expected object")
	}

	d.Profiles = nil
	if p, ok := raw["profiles"]; ok {
		if err := json.Unmarshal(p, &d.Profiles); err != nil {
			return fmt.Errorf("parsing settings profiles: %w", err)
		}
		delete(raw, "profiles")
	}
	d.extra = raw
	return nil
}

// Extra returns the raw value of a preserved top-level field.
func (d *Document[T, PT]) Extra(key string) (json.RawMessage, bool) {
	v, ok := d.extra[key]
	return v, ok
}
