package commands

import (
	"context"
	"fmt"

	"github.com/fierclash/profilekit/internal/gsheets"
	"github.com/fierclash/profilekit/internal/importer"
)

// SheetProfile is a read-only view of one import profile.
type SheetProfile struct {
	Index       int
	Label       string
	GUID        string
	Name        string
	DocID       string
	AssetPath   string
	AssetPrefix string
	Sheets      []string
	Mode        gsheets.Mode
}

func sheetView(ix *importer.Index, i int, labels []string) SheetProfile {
	id := ix.IDs()[i]
	p, ok := ix.Profile(id)
	if !ok {
		return SheetProfile{Index: i, Label: labels[i], GUID: id}
	}
	return SheetProfile{
		Index:       i,
		Label:       labels[i],
		GUID:        p.GUID,
		Name:        p.Name,
		DocID:       p.SheetsID,
		AssetPath:   p.AssetPath,
		AssetPrefix: p.AssetPrefix,
		Sheets:      p.Sheets,
		Mode:        p.Mode,
	}
}

func selectedSheetView(ix *importer.Index) SheetProfile {
	return sheetView(ix, ix.Selection(), ix.IndexedNames())
}

// ListSheetProfiles returns every import profile in display order.
func ListSheetProfiles(w *Workspace) ([]SheetProfile, error) {
	ix, err := w.sheetSync().Load()
	if err != nil {
		return nil, err
	}
	labels := ix.IndexedNames()
	out := make([]SheetProfile, ix.Len())
	for i := range out {
		out[i] = sheetView(ix, i, labels)
	}
	return out, nil
}

// ShowSheetProfile returns the import profile named by sel.
func ShowSheetProfile(w *Workspace, sel string) (*SheetProfile, error) {
	ix, err := w.sheetSync().Load()
	if err != nil {
		return nil, err
	}
	if err := selectProfile(ix, sel, ""); err != nil {
		return nil, err
	}
	v := selectedSheetView(ix)
	return &v, nil
}

// AddSheetProfile creates an import profile, naming it when name is set.
func AddSheetProfile(w *Workspace, name string) (*SheetProfile, error) {
	s := w.sheetSync()
	ix, err := s.Load()
	if err != nil {
		return nil, err
	}
	ix.AddProfile()
	ix.SelectLast()
	if name != "" {
		ix.RenameSelected(name)
	}
	if err := s.Save(ix); err != nil {
		return nil, fmt.Errorf("saving import profiles: %w", err)
	}
	v := selectedSheetView(ix)
	return &v, nil
}

// RemoveSheetProfile deletes the import profile named by sel.
func RemoveSheetProfile(w *Workspace, sel string) (*SheetProfile, error) {
	s := w.sheetSync()
	ix, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := selectProfile(ix, sel, ""); err != nil {
		return nil, err
	}
	removed := selectedSheetView(ix)
	ix.RemoveSelected()
	if err := s.Save(ix); err != nil {
		return nil, fmt.Errorf("saving import profiles: %w", err)
	}
	return &removed, nil
}

// RenameSheetProfile renames the import profile named by sel.
func RenameSheetProfile(w *Workspace, sel, name string) (*SheetProfile, error) {
	return editSheetProfile(w, sel, func(ix *importer.Index) error {
		ix.RenameSelected(name)
		return nil
	})
}

// SheetFields are the import profile fields to change. Nil fields are left
// as they are.
type SheetFields struct {
	DocID       *string
	AssetPath   *string
	AssetPrefix *string
	Mode        *gsheets.Mode
	Sheets      []string
}

// SetSheetProfile updates the fields of the import profile named by sel.
func SetSheetProfile(w *Workspace, sel string, f SheetFields) (*SheetProfile, error) {
	return editSheetProfile(w, sel, func(ix *importer.Index) error {
		if f.DocID != nil {
			importer.SetDocID(ix, *f.DocID)
		}
		if f.AssetPath != nil {
			importer.SetAssetPath(ix, w.Settings.Project, *f.AssetPath)
		}
		if f.AssetPrefix != nil {
			importer.SetAssetPrefix(ix, *f.AssetPrefix)
		}
		if f.Mode != nil {
			if !f.Mode.Valid() {
				return fmt.Errorf("invalid import mode %d", int(*f.Mode))
			}
			importer.SetMode(ix, *f.Mode)
		}
		if f.Sheets != nil {
			importer.SetSheets(ix, f.Sheets)
		}
		return nil
	})
}

// AddSheet appends sheet to the import profile named by sel unless the
// profile already lists it.
func AddSheet(w *Workspace, sel, sheet string) (*SheetProfile, error) {
	return editSheetProfile(w, sel, func(ix *importer.Index) error {
		if _, ok := importer.SheetResolver.Resolve(sheet); !ok {
			return fmt.Errorf("sheet name must not be blank")
		}
		ix.AddReference(sheet)
		return nil
	})
}

// RemoveSheet removes a sheet, given by position or by name, from the
// import profile named by sel.
func RemoveSheet(w *Workspace, sel, sheet string) (*SheetProfile, error) {
	return editSheetProfile(w, sel, func(ix *importer.Index) error {
		p, _ := ix.Selected()
		i, err := refIndex(p.Sheets, sheet)
		if err != nil {
			return err
		}
		return ix.RemoveReference(ix.Selection(), i)
	})
}

func editSheetProfile(w *Workspace, sel string, fn func(ix *importer.Index) error) (*SheetProfile, error) {
	s := w.sheetSync()
	ix, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := selectProfile(ix, sel, ""); err != nil {
		return nil, err
	}
	if err := fn(ix); err != nil {
		return nil, err
	}
	if err := s.Save(ix); err != nil {
		return nil, fmt.Errorf("saving import profiles: %w", err)
	}
	v := selectedSheetView(ix)
	return &v, nil
}

// SheetURLs returns the download URL of each sheet the profile named by sel
// would import.
func SheetURLs(w *Workspace, sel string) ([]string, error) {
	p, err := ShowSheetProfile(w, sel)
	if err != nil {
		return nil, err
	}
	switch p.Mode {
	case gsheets.ModeMain:
		return []string{gsheets.MainSheetURL(p.DocID)}, nil
	case gsheets.ModeBatch:
		urls := make([]string, len(p.Sheets))
		for i, sheet := range p.Sheets {
			urls[i] = gsheets.SheetURL(p.DocID, sheet)
		}
		return urls, nil
	}
	return []string{}, nil
}

// ImportSheets downloads the sheets of the profile named by sel into the
// project and registers the artifacts with the asset database.
func ImportSheets(ctx context.Context, w *Workspace, sel string, fetcher gsheets.Fetcher) (*gsheets.Report, error) {
	ix, err := w.sheetSync().Load()
	if err != nil {
		return nil, err
	}
	if err := selectProfile(ix, sel, ""); err != nil {
		return nil, err
	}
	p, _ := ix.Selected()
	job := p.Job()
	if job.Mode != gsheets.ModeNone && job.DocID == "" {
		return nil, fmt.Errorf("profile %q has no Google Sheets ID", p.Name)
	}

	ex := gsheets.NewExecutor(w.FS, fetcher, w.Assets, w.Logger)
	rep, err := ex.Run(ctx, job)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
