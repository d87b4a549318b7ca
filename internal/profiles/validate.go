package profiles

import (
	"github.com/fierclash/profilekit/internal/guid"
)

// ValidateDocument repairs a settings document in place. Null entries are
// dropped, invalid identifiers are regenerated, duplicate identifiers are
// re-keyed (first copy wins), and references that no longer resolve are
// pruned. Running it twice is the same as running it once.
func ValidateDocument[T any, PT Entry[T]](doc *Document[T, PT], opts Options) {
	kept := make([]PT, 0, len(doc.Profiles))
	for _, p := range doc.Profiles {
		if p != nil {
			kept = append(kept, p)
		}
	}
	doc.Profiles = kept

	guid.RepairInvalid(doc.Profiles)
	guid.Deduplicate(doc.Profiles)

	memo := make(map[string]*Descriptor)
	resolver := opts.resolver()
	for _, p := range doc.Profiles {
		p.SetRefs(resolvableRefs(p.Refs(), resolver, memo, opts.DistinctRefs))
	}
}

// Validate repairs the index: identifiers, records, dangling references,
// the default profile and the descriptor cache, in that order. It is
// idempotent.
func (ix *Index[T, PT]) Validate() {
	ix.validateIDs()
	ix.validateRecords()

	memo := make(map[string]*Descriptor)
	resolver := ix.opts.resolver()
	for _, p := range ix.byID {
		p.SetRefs(ix.resolvable(p.Refs(), resolver, memo, ix.opts.DistinctRefs))
	}
	ix.loadDefault()
	ix.repairDescriptorsMemo(resolver, memo)
	ix.SetSelection(ix.selection)
}

// validateIDs removes empty and repeated identifiers from the display list.
func (ix *Index[T, PT]) validateIDs() {
	seen := make(map[string]bool, len(ix.ids))
	ids := make([]string, 0, len(ix.ids))
	for _, id := range ix.ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	ix.ids = ids
}

// validateRecords replaces missing records with placeholders and pins each
// record's identifier to its key.
func (ix *Index[T, PT]) validateRecords() {
	for id, p := range ix.byID {
		if p == nil {
			ix.byID[id] = NewEntry[T, PT](id)
			continue
		}
		if p.ID() != id {
			p.SetID(id)
		}
		if p.Refs() == nil {
			p.SetRefs([]string{})
		}
	}
}

func (ix *Index[T, PT]) resolvable(refs []string, r Resolver, memo map[string]*Descriptor, unique bool) []string {
	if memo == nil {
		memo = make(map[string]*Descriptor)
	}
	kept := resolvableRefs(refs, r, memo, unique)
	if dropped := len(refs) - len(kept); dropped > 0 {
		ix.opts.logger().Debug("pruned references", "count", dropped)
	}
	return kept
}

// resolvableRefs filters refs down to those the resolver still finds. memo
// caches lookups so shared references are resolved once per pass.
func resolvableRefs(refs []string, r Resolver, memo map[string]*Descriptor, unique bool) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if lookup(ref, r, memo) != nil {
			out = append(out, ref)
		}
	}
	if unique {
		out = distinct(out)
	}
	return out
}

func lookup(ref string, r Resolver, memo map[string]*Descriptor) *Descriptor {
	if d, ok := memo[ref]; ok {
		return d
	}
	var d *Descriptor
	if found, ok := r.Resolve(ref); ok {
		d = &found
	}
	memo[ref] = d
	return d
}

func (ix *Index[T, PT]) repairDescriptors(r Resolver) {
	ix.repairDescriptorsMemo(r, make(map[string]*Descriptor))
}

// repairDescriptorsMemo makes the descriptor cache hold exactly the
// references used by some profile. Entries already cached are kept; missing
// or nil entries are resolved again.
func (ix *Index[T, PT]) repairDescriptorsMemo(r Resolver, memo map[string]*Descriptor) {
	used := make(map[string]bool)
	for _, p := range ix.byID {
		if p == nil {
			continue
		}
		for _, ref := range p.Refs() {
			used[ref] = true
		}
	}
	if ix.defaultProfile != nil {
		for _, ref := range ix.defaultProfile.Refs() {
			used[ref] = true
		}
	}

	for ref, d := range ix.descriptors {
		if !used[ref] || d == nil {
			delete(ix.descriptors, ref)
		}
	}
	for ref := range used {
		if _, ok := ix.descriptors[ref]; ok {
			continue
		}
		if d := lookup(ref, r, memo); d != nil {
			cp := *d
			ix.descriptors[ref] = &cp
		}
	}
}

// RefreshDescriptors drops the descriptor cache and resolves every used
// reference again, picking up renamed or moved resources.
func (ix *Index[T, PT]) RefreshDescriptors() {
	clear(ix.descriptors)
	ix.repairDescriptors(ix.opts.resolver())
}
