package paths

import (
	"os"
	"path"
	"path/filepath"
)

// Tool names one editor tool; its files live under a folder of that name.
type Tool string

const (
	CSVImporter Tool = "CSVImporter"
	SceneMenu   Tool = "SceneMenu"
)

// Suite is the package folder shared by every tool.
const Suite = "Fierclash.Tools"

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// UserConfigDir returns the home directory searched for .profilekit.yaml
// when the project has none.
func UserConfigDir() string {
	return home()
}

// ConfigName is the base name of the tool configuration file.
const ConfigName = ".profilekit"

// PointerFile returns the project-relative path of a tool's pointer
// document. Developer checkouts keep the suite under Assets/; installed
// copies live under Packages/.
func PointerFile(tool Tool, developer bool) string {
	root := "Packages"
	if developer {
		root = "Assets"
	}
	return path.Join(root, Suite, "Editor", string(tool), "config.json")
}

// DefaultSettingsFile returns where a tool's settings document is created
// when the pointer does not resolve.
func DefaultSettingsFile(tool Tool) string {
	return path.Join("Assets", Suite, "Settings", Suite+"."+string(tool)+".Settings.json")
}

// BuildSettingsFile returns the project-relative path of the build scene list.
func BuildSettingsFile() string {
	return "ProjectSettings/EditorBuildSettings.asset"
}

// ProjectFile joins a project-relative asset path onto the project root.
func ProjectFile(projectRoot, rel string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(rel))
}
