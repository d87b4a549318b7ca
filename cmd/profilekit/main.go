package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"

	"github.com/fierclash/profilekit/internal/commands"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("profilekit %s\n", version)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the opened project and where each tool keeps its settings pointer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		info, err := commands.ProjectInfo(w)
		if err != nil {
			return err
		}
		fmt.Println(titleStyle.Render(info.Root))
		if info.EditorVersion != "" {
			fmt.Printf("  Editor:  %s\n", info.EditorVersion)
		}
		fmt.Printf("  Assets:  %d\n", info.Assets)
		for _, tool := range slices.Sorted(maps.Keys(info.Pointers)) {
			fmt.Printf("  %s:  %s\n", tool, dimStyle.Render(info.Pointers[tool]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(sheetsCmd)
	rootCmd.AddCommand(scenesCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
