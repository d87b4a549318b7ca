// Package profiles holds the data model and the in-memory index shared by
// every profile kind: GUID-keyed records that own an ordered list of
// references to externally managed resources.
package profiles

import (
	"log/slog"
	"slices"
)

// PlaceholderName is the name given to newly created profiles and to
// profiles synthesized for identifiers with no stored record.
const PlaceholderName = "New Profile"

// DefaultSelection is the selection value addressing the default profile of
// kinds backed by a DefaultSource.
const DefaultSelection = -1

// Entry is the constraint satisfied by pointers to a profile record.
type Entry[T any] interface {
	*T
	ID() string
	SetID(id string)
	DisplayName() string
	SetDisplayName(name string)
	Refs() []string
	SetRefs(refs []string)
	// Reset overwrites the record with placeholder values for id.
	Reset(id string)
	// Clone returns a deep copy.
	Clone() *T
}

// Descriptor is the resolved, read-only view of a reference.
type Descriptor struct {
	Name string
	Path string
}

// Resolver looks up the resource behind a reference. The second result is
// false when the resource no longer exists.
type Resolver interface {
	Resolve(ref string) (Descriptor, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ref string) (Descriptor, bool)

// Resolve calls f(ref).
func (f ResolverFunc) Resolve(ref string) (Descriptor, bool) { return f(ref) }

// DefaultSource supplies the authoritative reference list of a default
// profile that is never persisted, such as the build scene list.
type DefaultSource interface {
	DefaultRefs() ([]string, error)
}

// Options parameterize the engine for one profile kind.
type Options struct {
	// Resolver validates references. Nil accepts every non-empty reference.
	Resolver Resolver

	// DefaultSource, when set, materializes a default profile addressed by
	// DefaultSelection.
	DefaultSource DefaultSource

	// DefaultName names the default profile.
	DefaultName string

	// DistinctRefs drops repeated references during validation.
	DistinctRefs bool

	Logger *slog.Logger
}

func (o Options) resolver() Resolver {
	if o.Resolver != nil {
		return o.Resolver
	}
	return ResolverFunc(func(ref string) (Descriptor, bool) {
		return Descriptor{Name: ref}, ref != ""
	})
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// NewEntry returns a placeholder record for id.
func NewEntry[T any, PT Entry[T]](id string) PT {
	p := PT(new(T))
	p.Reset(id)
	return p
}

func clone[T any, PT Entry[T]](p PT) PT {
	if p == nil {
		return nil
	}
	return PT(p.Clone())
}

// distinct returns refs without repeats, keeping first occurrences.
func distinct(refs []string) []string {
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// CopyRefs returns a copy of refs, never nil.
func CopyRefs(refs []string) []string {
	if refs == nil {
		return []string{}
	}
	return slices.Clone(refs)
}
