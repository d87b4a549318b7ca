package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fierclash/profilekit/internal/commands"
	"github.com/fierclash/profilekit/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	v        = config.NewViper()
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "profilekit",
	Short: "Manage spreadsheet import and scene profiles of a Unity project",
	Long: `profilekit edits the profile settings of the Fierclash editor tools from the
command line: spreadsheet import profiles (Google Sheets to CSV text assets)
and scene profiles (named scene lists next to the Build Settings scene list).

Every command loads the settings, repairs anything malformed, applies one
change and saves the result back into the project.`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		setupLogging()
		return loadConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .profilekit.yaml in the project, then $HOME)")
	rootCmd.PersistentFlags().StringP("project", "C", ".", "Unity project root")
	rootCmd.PersistentFlags().Bool("developer", false, "use the in-Assets layout of the tool suite")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	mustBind(config.KeyProject, "project")
	mustBind(config.KeyDeveloper, "developer")
}

func mustBind(key, flag string) {
	if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding --%s: %v", flag, err))
	}
}

// loadConfig reads the config file and decodes the settings every command
// runs with. Flags win over the environment, which wins over the file.
func loadConfig() error {
	projectRoot := v.GetString(config.KeyProject)
	used, err := config.ReadFile(v, cfgFile, projectRoot)
	if err != nil {
		return err
	}
	if used != "" {
		slog.Debug("using config file", "file", used)
	}
	settings, err = config.Load(v)
	if err != nil {
		return err
	}
	slog.Debug("settings", "project", settings.Project, "developer", settings.Developer, "http_timeout", settings.HTTPTimeout)
	return nil
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// openWorkspace opens the configured project.
func openWorkspace() (*commands.Workspace, error) {
	return commands.Open(settings, slog.Default())
}
