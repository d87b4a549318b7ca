// Package guid validates, generates and repairs the identifiers that key
// profiles and assets.
package guid

import (
	"strings"

	"github.com/google/uuid"
)

// Keyed is a record carrying a mutable identifier.
type Keyed interface {
	ID() string
	SetID(id string)
}

// IsValid reports whether s parses as a 128-bit UUID.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// New returns a fresh profile identifier in dashed lowercase form.
func New() string {
	return uuid.NewString()
}

// NewAssetGUID returns a fresh asset identifier: 32 lowercase hex digits, the
// form written into .meta files.
func NewAssetGUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// RepairInvalid assigns a fresh identifier to every record whose identifier
// is not a valid UUID. It returns the number of records changed.
//
// Must run before Deduplicate: records sharing an invalid empty identifier
// would otherwise be treated as duplicates of each other.
func RepairInvalid[K Keyed](records []K) int {
	repaired := 0
	for _, r := range records {
		if !IsValid(r.ID()) {
			r.SetID(New())
			repaired++
		}
	}
	return repaired
}

// Deduplicate re-keys records that share an identifier. Within each group the
// first record in input order keeps the identifier; every other copy gets a
// fresh one, so three or more copies are each re-keyed. It returns the number
// of records changed.
func Deduplicate[K Keyed](records []K) int {
	remaining := make(map[string]int, len(records))
	for _, r := range records {
		remaining[r.ID()]++
	}

	// Walk backwards so the copy left standing when the count reaches one is
	// the earliest.
	reassigned := 0
	for i := len(records) - 1; i >= 0; i-- {
		id := records[i].ID()
		if remaining[id] > 1 {
			records[i].SetID(New())
			remaining[id]--
			reassigned++
		}
	}
	return reassigned
}
