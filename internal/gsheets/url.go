// Package gsheets downloads Google Sheets documents as CSV text artifacts.
// Documents must be shared by public link; no credentials are sent.
package gsheets

import (
	"fmt"
	"net/url"
	"path"
)

const docsBase = "https://docs.google.com/spreadsheets/d/"

// MainSheetURL returns the CSV export URL of a document's first sheet.
func MainSheetURL(docID string) string {
	return fmt.Sprintf("%s%s/export?format=csv", docsBase, docID)
}

// SheetURL returns the CSV query URL of a named sheet in a document.
func SheetURL(docID, sheet string) string {
	return fmt.Sprintf("%s%s/gviz/tq?tqx=out:csv&sheet=%s", docsBase, docID, url.QueryEscape(sheet))
}

// MainArtifact returns the path the main sheet of docID is written to.
func MainArtifact(assetPath, prefix, docID string) string {
	return path.Join(assetPath, prefix+docID+"-Main.txt")
}

// SheetArtifact returns the path a named sheet is written to.
func SheetArtifact(assetPath, prefix, sheet string) string {
	return path.Join(assetPath, prefix+sheet+".txt")
}
