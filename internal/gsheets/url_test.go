package gsheets_test

import (
	"testing"

	"github.com/fierclash/profilekit/internal/gsheets"
	"github.com/stretchr/testify/assert"
)

func TestMainSheetURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/DOC123/export?format=csv", gsheets.MainSheetURL("DOC123"))
}

func TestSheetURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/DOC123/gviz/tq?tqx=out:csv&sheet=Intro", gsheets.SheetURL("DOC123", "Intro"))
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/DOC123/gviz/tq?tqx=out:csv&sheet=Boss+Fight%26Co", gsheets.SheetURL("DOC123", "Boss Fight&Co"))
}

func TestArtifacts(t *testing.T) {
	assert.Equal(t, "Assets/Data/loc_DOC123-Main.txt", gsheets.MainArtifact("Assets/Data/", "loc_", "DOC123"))
	assert.Equal(t, "Assets/Data/loc_Intro.txt", gsheets.SheetArtifact("Assets/Data", "loc_", "Intro"))
	assert.Equal(t, "Intro.txt", gsheets.SheetArtifact("", "", "Intro"))
}

func TestParseMode(t *testing.T) {
	cases := map[string]gsheets.Mode{
		"none":        gsheets.ModeNone,
		"Main":        gsheets.ModeMain,
		"ImportMain":  gsheets.ModeMain,
		"batch":       gsheets.ModeBatch,
		"IMPORTBATCH": gsheets.ModeBatch,
		"2":           gsheets.ModeBatch,
	}
	for in, want := range cases {
		got, err := gsheets.ParseMode(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "both", "3", "-1"} {
		_, err := gsheets.ParseMode(in)
		assert.Error(t, err, in)
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "None", gsheets.ModeNone.String())
	assert.Equal(t, "ImportMain", gsheets.ModeMain.String())
	assert.Equal(t, "ImportBatch", gsheets.ModeBatch.String())
	assert.Equal(t, "Mode(9)", gsheets.Mode(9).String())
}
