package main

import (
	"fmt"
	"strconv"

	"github.com/fierclash/profilekit/internal/commands"
	"github.com/fierclash/profilekit/internal/scenemenu"
	"github.com/spf13/cobra"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "Manage scene profiles",
	Long: `Scene profiles are named lists of scenes. The read-only "Build Settings"
profile (index -1) mirrors the project's build scene list.

A profile is addressed by its index in 'scenes list', its GUID, or its name.`,
}

func sceneChoices(w *commands.Workspace, withBuild bool) func() ([]profileChoice, error) {
	return func() ([]profileChoice, error) {
		list, err := commands.ListSceneProfiles(w)
		if err != nil {
			return nil, err
		}
		var out []profileChoice
		for _, p := range list {
			if p.ReadOnly {
				if withBuild {
					out = append(out, profileChoice{Label: p.Label, Value: strconv.Itoa(p.Index)})
				}
				continue
			}
			out = append(out, profileChoice{Label: p.Label, Value: p.GUID})
		}
		return out, nil
	}
}

func printSceneProfile(p *commands.SceneProfile) {
	label := titleStyle.Render(p.Label)
	if p.ReadOnly {
		label += " " + readOnlyStyle.Render("(read-only)")
	}
	fmt.Println(label)
	if p.GUID != "" {
		fmt.Printf("  GUID: %s\n", dimStyle.Render(p.GUID))
	}
	if len(p.Scenes) == 0 {
		fmt.Println("  (no scenes)")
		return
	}
	for i, s := range p.Scenes {
		fmt.Printf("  [%d] %s  %s\n", i, s.Name, dimStyle.Render(s.Path))
	}
}

var scenesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scene profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		list, err := commands.ListSceneProfiles(w)
		if err != nil {
			return err
		}
		for _, p := range list {
			count := dimStyle.Render(fmt.Sprintf("%d scenes", len(p.Scenes)))
			if p.ReadOnly {
				fmt.Printf("[%d] %s  %s\n", p.Index, readOnlyStyle.Render(p.Name), count)
				continue
			}
			fmt.Printf("%s  %s\n", p.Label, count)
		}
		return nil
	},
}

var scenesShowCmd = &cobra.Command{
	Use:   "show [profile]",
	Short: "Show the scenes of a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Which profile?", sceneChoices(w, true))
		if err != nil {
			return err
		}
		p, err := commands.ShowSceneProfile(w, sel)
		if err != nil {
			return err
		}
		printSceneProfile(p)
		return nil
	},
}

var scenesAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a scene profile",
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
		p, err := commands.AddSceneProfile(w, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s Created %s\n", okStyle.Render("✓"), p.Label)
		return nil
	},
}

var scenesRemoveCmd = &cobra.Command{
	Use:     "remove [profile]",
	Aliases: []string{"rm"},
	Short:   "Delete a scene profile",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		sel, err := profileArg(args, "Delete which profile?", sceneChoices(w, false))
		if err != nil {
			return err
		}
		p, err := commands.RemoveSceneProfile(w, sel)
		if err != nil {
			return err
		}
		fmt.Printf("%s Deleted %s\n", okStyle.Render("✓"), p.Name)
		return nil
	},
}

var scenesRenameCmd = &cobra.Command{
	Use:   "rename <profile> <name>",
	Short: "Rename a scene profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		p, err := commands.RenameSceneProfile(w, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s Renamed to %s\n", okStyle.Render("✓"), p.Label)
		return nil
	},
}

var scenesSceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Edit the scene list of a profile",
}

var scenePick bool

var scenesSceneAddCmd = &cobra.Command{
	Use:   "add <profile> [scene...]",
	Short: "Add scenes to a profile",
	Long: `Adds scenes, given by project path or GUID, to a scene profile.
With --pick, choose scenes from every scene in the project instead.`,
	Example: `  profilekit scenes scene add Combat Assets/Scenes/Arena.unity
  profilekit scenes scene add 0 --pick`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		refs := args[1:]
		if scenePick {
			picked, err := pickScenes(w, args[0])
			if err != nil {
				return err
			}
			refs = append(refs, picked...)
		}
		if len(refs) == 0 {
			return fmt.Errorf("no scenes given; pass scene paths or use --pick")
		}
		p, err := commands.AddScenes(w, args[0], refs...)
		if err != nil {
			return err
		}
		printSceneProfile(p)
		return nil
	},
}

// pickScenes lets the user choose among the project's scenes; scenes the
// profile already lists are shown locked.
func pickScenes(w *commands.Workspace, sel string) ([]string, error) {
	p, err := commands.ShowSceneProfile(w, sel)
	if err != nil {
		return nil, err
	}
	if p.ReadOnly {
		return nil, fmt.Errorf("%s: %w", scenemenu.BuildSettingsName, commands.ErrReadOnly)
	}
	listed := make(map[string]bool, len(p.Scenes))
	for _, s := range p.Scenes {
		listed[s.GUID] = true
	}
	var items []pickItem
	for _, s := range commands.ProjectScenes(w) {
		items = append(items, pickItem{
			Label:  fmt.Sprintf("%s  %s", s.Name, dimStyle.Render(s.Path)),
			Value:  s.GUID,
			Locked: listed[s.GUID],
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("the project has no scenes")
	}
	return runPicker("Add scenes to "+p.Name, items)
}

var scenesSceneRemoveCmd = &cobra.Command{
	Use:   "remove <profile> <scene|index>",
	Short: "Remove a scene from a profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		p, err := commands.RemoveScene(w, args[0], args[1])
		if err != nil {
			return err
		}
		printSceneProfile(p)
		return nil
	},
}

func init() {
	scenesSceneAddCmd.Flags().BoolVar(&scenePick, "pick", false, "choose scenes interactively")

	scenesSceneCmd.AddCommand(scenesSceneAddCmd)
	scenesSceneCmd.AddCommand(scenesSceneRemoveCmd)

	scenesCmd.AddCommand(scenesListCmd)
	scenesCmd.AddCommand(scenesShowCmd)
	scenesCmd.AddCommand(scenesAddCmd)
	scenesCmd.AddCommand(scenesRemoveCmd)
	scenesCmd.AddCommand(scenesRenameCmd)
	scenesCmd.AddCommand(scenesSceneCmd)
}
