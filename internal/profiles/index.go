package profiles

import (
	"fmt"
	"slices"

	"github.com/fierclash/profilekit/internal/guid"
)

// Index is the session-local working copy of a settings document: profile
// identifiers in load order, deep copies of each profile keyed by
// identifier, the current selection, and a cache of resolved references.
//
// An Index is not safe for concurrent use. Accessors return copies; the
// stored records are only reachable through the mutators.
type Index[T any, PT Entry[T]] struct {
	opts Options

	selection   int
	ids         []string
	byID        map[string]PT
	descriptors map[string]*Descriptor

	// defaultProfile is nil unless opts.DefaultSource is set.
	defaultProfile PT
}

// NewIndex returns an empty index for one profile kind.
func NewIndex[T any, PT Entry[T]](opts Options) *Index[T, PT] {
	return &Index[T, PT]{
		opts:        opts,
		ids:         []string{},
		byID:        make(map[string]PT),
		descriptors: make(map[string]*Descriptor),
	}
}

// Load appends the document's profiles to the index, materializes the
// default profile, resolves every referenced resource and resets the
// selection. The document should already have been validated.
//
// Profiles whose identifier is invalid or already indexed are not copied
// into the map; their identifiers are still listed.
func (ix *Index[T, PT]) Load(doc *Document[T, PT]) {
	for _, p := range doc.Profiles {
		if p == nil {
			continue
		}
		ix.ids = append(ix.ids, p.ID())
	}
	for _, p := range doc.Profiles {
		if p == nil {
			continue
		}
		id := p.ID()
		if !guid.IsValid(id) {
			continue
		}
		if _, ok := ix.byID[id]; ok {
			continue
		}
		ix.byID[id] = clone[T, PT](p)
	}

	ix.loadDefault()
	ix.repairDescriptors(ix.opts.resolver())
	ix.SelectDefault()
}

func (ix *Index[T, PT]) loadDefault() {
	if ix.opts.DefaultSource == nil {
		return
	}
	refs, err := ix.opts.DefaultSource.DefaultRefs()
	if err != nil {
		ix.opts.logger().Warn("reading default profile source", "error", err)
		refs = nil
	}
	p := NewEntry[T, PT]("")
	name := ix.opts.DefaultName
	if name == "" {
		name = PlaceholderName
	}
	p.SetDisplayName(name)
	p.SetRefs(ix.resolvable(refs, ix.opts.resolver(), nil, true))
	ix.defaultProfile = p
}

// Len returns the number of listed profiles.
func (ix *Index[T, PT]) Len() int {
	return len(ix.ids)
}

// IDs returns the profile identifiers in display order.
func (ix *Index[T, PT]) IDs() []string {
	return CopyRefs(ix.ids)
}

// HasDefault reports whether the kind has a default profile.
func (ix *Index[T, PT]) HasDefault() bool {
	return ix.defaultProfile != nil
}

// Selection returns the current selection.
func (ix *Index[T, PT]) Selection() int {
	return ix.selection
}

func (ix *Index[T, PT]) minSelection() int {
	if ix.HasDefault() {
		return DefaultSelection
	}
	return 0
}

// SetSelection selects profile i, clamped to [min, Len()] where min is
// DefaultSelection for kinds with a default profile and 0 otherwise.
// Len() itself is a legal value meaning nothing is selected.
func (ix *Index[T, PT]) SetSelection(i int) {
	ix.selection = max(ix.minSelection(), min(i, len(ix.ids)))
}

// SelectLast selects the last listed profile.
func (ix *Index[T, PT]) SelectLast() {
	ix.SetSelection(len(ix.ids) - 1)
}

// SelectDefault selects the default profile when there is one, the first
// profile otherwise.
func (ix *Index[T, PT]) SelectDefault() {
	if ix.HasDefault() {
		ix.selection = DefaultSelection
		return
	}
	ix.selection = 0
}

// DefaultSelected reports whether the default profile is selected.
func (ix *Index[T, PT]) DefaultSelected() bool {
	return ix.HasDefault() && ix.selection == DefaultSelection
}

// SelectedID returns the identifier behind the selection, or "" when the
// selection does not address a listed profile.
func (ix *Index[T, PT]) SelectedID() string {
	if ix.selection < 0 || ix.selection >= len(ix.ids) {
		return ""
	}
	return ix.ids[ix.selection]
}

func (ix *Index[T, PT]) selected() (PT, bool) {
	p, ok := ix.byID[ix.SelectedID()]
	return p, ok && p != nil
}

// Selected returns a copy of the selected profile.
func (ix *Index[T, PT]) Selected() (PT, bool) {
	p, ok := ix.selected()
	if !ok {
		return nil, false
	}
	return clone[T, PT](p), true
}

// Profile returns a copy of the profile with the given identifier.
func (ix *Index[T, PT]) Profile(id string) (PT, bool) {
	p, ok := ix.byID[id]
	if !ok || p == nil {
		return nil, false
	}
	return clone[T, PT](p), true
}

// DefaultProfile returns a copy of the default profile.
func (ix *Index[T, PT]) DefaultProfile() (PT, bool) {
	if ix.defaultProfile == nil {
		return nil, false
	}
	return clone[T, PT](ix.defaultProfile), true
}

// Profiles returns copies of the listed profiles in display order, skipping
// identifiers with no stored record.
func (ix *Index[T, PT]) Profiles() []PT {
	out := make([]PT, 0, len(ix.ids))
	for _, id := range ix.ids {
		if p, ok := ix.Profile(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// IndexedNames returns "[i] name" labels in display order.
func (ix *Index[T, PT]) IndexedNames() []string {
	names := make([]string, len(ix.ids))
	for i, id := range ix.ids {
		name := PlaceholderName
		if p, ok := ix.byID[id]; ok && p != nil {
			name = p.DisplayName()
		}
		names[i] = fmt.Sprintf("[%d] %s", i, name)
	}
	return names
}

// Descriptor returns the cached descriptor for ref.
func (ix *Index[T, PT]) Descriptor(ref string) (Descriptor, bool) {
	d := ix.descriptors[ref]
	if d == nil {
		return Descriptor{}, false
	}
	return *d, true
}

// DescriptorCount returns the number of cached descriptors.
func (ix *Index[T, PT]) DescriptorCount() int {
	return len(ix.descriptors)
}

// AddProfile appends a placeholder profile with a fresh identifier and
// returns the identifier. The selection is left unchanged.
func (ix *Index[T, PT]) AddProfile() string {
	id := guid.New()
	ix.ids = append(ix.ids, id)
	ix.byID[id] = NewEntry[T, PT](id)
	return id
}

// RemoveSelected removes the selected profile from the list and the map.
// A selection that addresses no profile is a no-op.
func (ix *Index[T, PT]) RemoveSelected() {
	id := ix.SelectedID()
	if id == "" {
		return
	}
	ix.ids = slices.Delete(ix.ids, ix.selection, ix.selection+1)
	delete(ix.byID, id)
	ix.repairDescriptors(ix.opts.resolver())
}

// RenameSelected sets the name of the selected profile.
func (ix *Index[T, PT]) RenameSelected(name string) {
	if p, ok := ix.selected(); ok {
		p.SetDisplayName(name)
	}
}

// EditSelected applies fn to the selected profile and reports whether a
// profile was selected. fn must not retain p. Reference edits made by fn are
// reflected in the descriptor cache.
func (ix *Index[T, PT]) EditSelected(fn func(p PT)) bool {
	p, ok := ix.selected()
	if !ok {
		return false
	}
	id := p.ID()
	fn(p)
	p.SetID(id)
	if p.Refs() == nil {
		p.SetRefs([]string{})
	}
	ix.repairDescriptors(ix.opts.resolver())
	return true
}

// AddReference appends ref to the selected profile unless it is already
// listed there, and caches its descriptor. It reports whether ref was added.
func (ix *Index[T, PT]) AddReference(ref string) bool {
	p, ok := ix.selected()
	if !ok {
		return false
	}
	refs := p.Refs()
	for _, r := range refs {
		if r == ref {
			return false
		}
	}
	p.SetRefs(append(CopyRefs(refs), ref))

	if d, found := ix.opts.resolver().Resolve(ref); found {
		ix.descriptors[ref] = &d
	} else {
		ix.descriptors[ref] = nil
	}
	return true
}

// RemoveReference removes the reference at refIndex from the profile at
// selection. Out-of-range indices return an *IndexError wrapping
// ErrIndexOutOfRange.
func (ix *Index[T, PT]) RemoveReference(selection, refIndex int) error {
	if selection < 0 || selection >= len(ix.ids) {
		return &IndexError{What: "profile", Index: selection, Len: len(ix.ids)}
	}
	p, ok := ix.byID[ix.ids[selection]]
	if !ok || p == nil {
		return &IndexError{What: "profile", Index: selection, Len: len(ix.ids)}
	}
	refs := p.Refs()
	if refIndex < 0 || refIndex >= len(refs) {
		return &IndexError{What: "reference", Index: refIndex, Len: len(refs)}
	}
	next := make([]string, 0, len(refs)-1)
	next = append(next, refs[:refIndex]...)
	next = append(next, refs[refIndex+1:]...)
	p.SetRefs(next)
	ix.repairDescriptors(ix.opts.resolver())
	return nil
}

// Project rebuilds a persistable profile list from the index: one deep copy
// per listed identifier, with a placeholder for identifiers that lost their
// record.
func (ix *Index[T, PT]) Project() []PT {
	out := make([]PT, len(ix.ids))
	for i, id := range ix.ids {
		if p, ok := ix.byID[id]; ok && p != nil {
			out[i] = clone[T, PT](p)
			continue
		}
		out[i] = NewEntry[T, PT](id)
	}
	return out
}
