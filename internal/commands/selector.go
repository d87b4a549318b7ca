package commands

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fierclash/profilekit/internal/profiles"
)

var (
	// ErrProfileNotFound is returned when a selector matches no profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrAmbiguousProfile is returned when a name matches several profiles.
	ErrAmbiguousProfile = errors.New("profile name is ambiguous")
	// ErrReadOnly is returned when editing the Build Settings profile.
	ErrReadOnly = errors.New("profile is read-only")
)

// selectProfile points the index selection at the profile named by sel: a
// display index ("0", or "-1" for the default profile), a profile GUID, or a
// display name. defaultName additionally selects the default profile.
func selectProfile[T any, PT profiles.Entry[T]](ix *profiles.Index[T, PT], sel, defaultName string) error {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return fmt.Errorf("empty selector: %w", ErrProfileNotFound)
	}

	if ix.HasDefault() && (sel == strconv.Itoa(profiles.DefaultSelection) || strings.EqualFold(sel, defaultName)) {
		ix.SetSelection(profiles.DefaultSelection)
		return nil
	}

	if i, err := strconv.Atoi(sel); err == nil {
		if i < 0 || i >= ix.Len() {
			return fmt.Errorf("profile %d: %w", i, ErrProfileNotFound)
		}
		ix.SetSelection(i)
		return nil
	}

	ids := ix.IDs()
	for i, id := range ids {
		if id == sel {
			ix.SetSelection(i)
			return nil
		}
	}

	match := -1
	for i, id := range ids {
		p, ok := ix.Profile(id)
		if !ok || p.DisplayName() != sel {
			continue
		}
		if match >= 0 {
			return fmt.Errorf("%q: %w; select it by index or GUID", sel, ErrAmbiguousProfile)
		}
		match = i
	}
	if match < 0 {
		return fmt.Errorf("%q: %w", sel, ErrProfileNotFound)
	}
	ix.SetSelection(match)
	return nil
}

// selectEditable is selectProfile for commands that modify the profile.
func selectEditable[T any, PT profiles.Entry[T]](ix *profiles.Index[T, PT], sel, defaultName string) error {
	if err := selectProfile(ix, sel, defaultName); err != nil {
		return err
	}
	if ix.DefaultSelected() {
		return fmt.Errorf("%s: %w", defaultName, ErrReadOnly)
	}
	return nil
}

// refIndex resolves a reference given by value or by position. An exact
// value match wins, so a sheet named "2024" is found by name.
func refIndex(refs []string, arg string) (int, error) {
	if i := slices.Index(refs, arg); i >= 0 {
		return i, nil
	}
	if i, err := strconv.Atoi(arg); err == nil {
		return i, nil
	}
	return -1, fmt.Errorf("%q: %w", arg, profiles.ErrIndexOutOfRange)
}
