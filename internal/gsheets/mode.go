package gsheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects what an import downloads. It is persisted as an integer.
type Mode int

const (
	// ModeNone downloads nothing.
	ModeNone Mode = iota
	// ModeMain downloads the document's first sheet.
	ModeMain
	// ModeBatch downloads each listed sheet.
	ModeBatch
)

var modeNames = [...]string{"None", "ImportMain", "ImportBatch"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeNone && m <= ModeBatch
}

// ParseMode parses a mode by name ("none", "main", "batch", or the
// persisted names "ImportMain" and "ImportBatch"), case-insensitively, or
// by its integer value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ModeNone, nil
	case "main", "importmain":
		return ModeMain, nil
	case "batch", "importbatch":
		return ModeBatch, nil
	}
	if n, err := strconv.Atoi(s); err == nil && Mode(n).Valid() {
		return Mode(n), nil
	}
	return ModeNone, fmt.Errorf("unknown import mode %q", s)
}
