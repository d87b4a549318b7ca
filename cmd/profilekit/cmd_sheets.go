package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fierclash/profilekit/internal/commands"
	"github.com/fierclash/profilekit/internal/gsheets"
	"github.com/spf13/cobra"
)

var sheetsCmd = &cobra.Command{
	Use:     "sheets",
	Aliases: []string{"csv"},
	Short:   "Manage spreadsheet import profiles",
	Long: `Import profiles download Google Sheets documents as CSV text assets.

A profile is addressed by its index in 'sheets list', its GUID, or its name.`,
}

func sheetChoices(w *commands.Workspace) func() ([]profileChoice, error) {
	return func() ([]profileChoice, error) {
		list, err := commands.ListSheetProfiles(w)
		if err != nil {
			return nil, err
		}
		out := make([]profileChoice, len(list))
		for i, p := range list {
			out[i] = profileChoice{Label: p.Label, Value: p.GUID}
		}
		return out, nil
	}
}

func printSheetProfile(p *commands.SheetProfile) {
	fmt.Println(titleStyle.Render(p.Label))
	fmt.Printf("  GUID:       %s\n", dimStyle.Render(p.GUID))
	fmt.Printf("  Doc ID:     %s\n", p.DocID)
	fmt.Printf("  Asset path: %s\n", p.AssetPath)
	fmt.Printf("  Prefix:     %s\n", p.AssetPrefix)
	fmt.Printf("  Mode:       %s\n", p.Mode)
	if len(p.Sheets) == 0 {
		fmt.Println("  Sheets:     (none)")
		return
	}
	fmt.Println("  Sheets:")
	for i, s := range p.Sheets {
		fmt.Printf("    [%d] %s\n", i, s)
	}
}

var sheetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List import profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		list, err := commands.ListSheetProfiles(w)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No import profiles configured.")
			return nil
		}
		for _, p := range list {
			fmt.Printf("%s  %s  %s\n", p.Label, dimStyle.Render(p.Mode.String()), dimStyle.Render(fmt.Sprintf("%d sheets", len(p.Sheets))))
		}
		return nil
	},
}

var sheetsShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show an import profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Which profile?", sheetChoices(w))
		if err != nil {
			return err
		}
		p, err := commands.ShowSheetProfile(w, sel)
		if err != nil {
			return err
		}
		printSheetProfile(p)
		return nil
	},
}

var sheetsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create an import profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		p, err := commands.AddSheetProfile(w, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s Created %s\n", okStyle.Render("✓"), p.Label)
		return nil
	},
}

var sheetsRemoveCmd = &cobra.Command{
	Use:     "remove [profile]",
	Aliases: []string{"rm"},
	Short:   "Delete an import profile",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Delete which profile?", sheetChoices(w))
		if err != nil {
			return err
		}
		p, err := commands.RemoveSheetProfile(w, sel)
		if err != nil {
			return err
		}
		fmt.Printf("%s Deleted %s\n", okStyle.Render("✓"), p.Name)
		return nil
	},
}

var sheetsRenameCmd = &cobra.Command{
	Use:   "rename <profile> <name>",
	Short: "Rename an import profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		p, err := commands.RenameSheetProfile(w, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s Renamed to %s\n", okStyle.Render("✓"), p.Label)
		return nil
	},
}

var (
	setDocID     string
	setAssetPath string
	setPrefix    string
	setMode      string
	setSheets    []string
)

var sheetsSetCmd = &cobra.Command{
	Use:   "set [profile]",
	Short: "Change fields of an import profile",
	Example: `  profilekit sheets set Localization --doc-id 1AbC --mode batch --sheets Intro,Combat
  profilekit sheets set 0 --asset-path Assets/Data/ --prefix loc_`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var f commands.SheetFields
		flags := cmd.Flags()
		if flags.Changed("doc-id") {
			f.DocID = &setDocID
		}
		if flags.Changed("asset-path") {
			f.AssetPath = &setAssetPath
		}
		if flags.Changed("prefix") {
			f.AssetPrefix = &setPrefix
		}
		if flags.Changed("mode") {
			m, err := gsheets.ParseMode(setMode)
			if err != nil {
				return err
			}
			f.Mode = &m
		}
		if flags.Changed("sheets") {
			f.Sheets = append([]string{}, setSheets...)
		}

		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Change which profile?", sheetChoices(w))
		if err != nil {
			return err
		}
		p, err := commands.SetSheetProfile(w, sel, f)
		if err != nil {
			return err
		}
		printSheetProfile(p)
		return nil
	},
}

var sheetsSheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Edit the sheet list of an import profile",
}

var sheetsSheetAddCmd = &cobra.Command{
	Use:   "add <profile> <sheet>...",
	Short: "Append sheets to an import profile",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		var p *commands.SheetProfile
		for _, sheet := range args[1:] {
			p, err = commands.AddSheet(w, args[0], sheet)
			if err != nil {
				return err
			}
		}
		printSheetProfile(p)
		return nil
	},
}

var sheetsSheetRemoveCmd = &cobra.Command{
	Use:   "remove <profile> <sheet|index>",
	Short: "Remove a sheet from an import profile",
	Long: `Remove a sheet from an import profile.

The sheet is matched by name first. An argument that names no sheet is
read as a zero-based position in the profile's sheet list.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		p, err := commands.RemoveSheet(w, args[0], args[1])
		if err != nil {
			return err
		}
		printSheetProfile(p)
		return nil
	},
}

var urlCopy bool

var sheetsURLCmd = &cobra.Command{
	Use:   "url [profile]",
	Short: "Print the download URLs of an import profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Which profile?", sheetChoices(w))
		if err != nil {
			return err
		}
		urls, err := commands.SheetURLs(w, sel)
		if err != nil {
			return err
		}
		if len(urls) == 0 {
			fmt.Println("Nothing to download (import mode is None).")
			return nil
		}
		for _, u := range urls {
			fmt.Println(u)
		}
		if urlCopy {
			if err := clipboard.WriteAll(strings.Join(urls, "\n")); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Println(dimStyle.Render("Copied to clipboard."))
		}
		return nil
	},
}

var sheetsImportCmd = &cobra.Command{
	Use:   "import [profile]",
	Short: "Download the sheets of an import profile into the project",
	Long: `Downloads the profile's sheets one at a time and writes each as a text asset.
Sheets that fail to download are reported and skipped. Press Ctrl+C to stop
after the sheet in progress; sheets already written are kept.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Import which profile?", sheetChoices(w))
		if err != nil {
			return err
		}
		fetcher := gsheets.NewHTTPFetcher(settings.HTTPTimeout)
		rep, err := commands.ImportSheets(cmd.Context(), w, sel, fetcher)
		if err != nil {
			return err
		}

		for _, a := range rep.Artifacts {
			fmt.Printf("%s %s\n", okStyle.Render("✓"), a)
		}
		summary := fmt.Sprintf("%d of %d sheets written", rep.Written, rep.Attempted)
		switch {
		case rep.State == gsheets.Cancelled:
			fmt.Println(readOnlyStyle.Render("Cancelled: " + summary))
		case rep.Failed > 0:
			fmt.Println(failureStyle.Render(fmt.Sprintf("%s, %d failed", summary, rep.Failed)))
		case rep.Attempted == 0:
			fmt.Println("Nothing to download (import mode is None).")
		default:
			fmt.Println(summary)
		}
		return nil
	},
}

func init() {
	sheetsSetCmd.Flags().StringVar(&setDocID, "doc-id", "", "Google Sheets document ID")
	sheetsSetCmd.Flags().StringVar(&setAssetPath, "asset-path", "", "output folder, e.g. Assets/Data/")
	sheetsSetCmd.Flags().StringVar(&setPrefix, "prefix", "", "prefix for artifact file names")
	sheetsSetCmd.Flags().StringVar(&setMode, "mode", "", "import mode: none, main or batch")
	sheetsSetCmd.Flags().StringSliceVar(&setSheets, "sheets", nil, "replace the sheet list (comma-separated)")

	sheetsURLCmd.Flags().BoolVar(&urlCopy, "copy", false, "copy the URLs to the clipboard")

	sheetsSheetCmd.AddCommand(sheetsSheetAddCmd)
	sheetsSheetCmd.AddCommand(sheetsSheetRemoveCmd)

	sheetsCmd.AddCommand(sheetsListCmd)
	sheetsCmd.AddCommand(sheetsShowCmd)
	sheetsCmd.AddCommand(sheetsAddCmd)
	sheetsCmd.AddCommand(sheetsRemoveCmd)
	sheetsCmd.AddCommand(sheetsRenameCmd)
	sheetsCmd.AddCommand(sheetsSetCmd)
	sheetsCmd.AddCommand(sheetsSheetCmd)
	sheetsCmd.AddCommand(sheetsURLCmd)
	sheetsCmd.AddCommand(sheetsImportCmd)
}
