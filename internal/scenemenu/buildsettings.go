package scenemenu

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

// BuildScene is one entry of the build scene list.
type BuildScene struct {
	Enabled int    `yaml:"enabled"`
	Path    string `yaml:"path"`
	GUID    string `yaml:"guid"`
}

type editorBuildSettings struct {
	EditorBuildSettings struct {
		Scenes []BuildScene `yaml:"m_Scenes"`
	} `yaml:"EditorBuildSettings"`
}

// ParseBuildSettings parses an EditorBuildSettings.asset document.
func ParseBuildSettings(data []byte) ([]BuildScene, error) {
	var doc editorBuildSettings
	if err := yaml.Unmarshal(stripUnityTags(data), &doc); err != nil {
		return nil, fmt.Errorf("parsing build settings: %w", err)
	}
	return doc.EditorBuildSettings.Scenes, nil
}

// stripUnityTags drops the %YAML/%TAG directives and the "!u!" class tags
// of Unity's serialized YAML, which the decoder does not need.
func stripUnityTags(data []byte) []byte {
	var out bytes.Buffer
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "%"):
			continue
		case strings.HasPrefix(line, "--- !u!"):
			line = "---"
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// BuildSettings reads the build scene list from the project and serves it
// as the default scene profile. Scenes are matched by path; entries whose
// scene no longer exists are skipped.
type BuildSettings struct {
	FS     afero.Fs
	Path   string
	Assets Locator
}

// Scenes returns the parsed build scene list. A missing file is an empty
// list.
func (b BuildSettings) Scenes() ([]BuildScene, error) {
	data, err := afero.ReadFile(b.FS, b.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading build settings: %w", err)
	}
	return ParseBuildSettings(data)
}

// DefaultRefs implements profiles.DefaultSource.
func (b BuildSettings) DefaultRefs() ([]string, error) {
	scenes, err := b.Scenes()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(scenes))
	refs := make([]string, 0, len(scenes))
	for _, s := range scenes {
		g, ok := b.Assets.PathToGUID(s.Path)
		if !ok || seen[g] {
			continue
		}
		seen[g] = true
		refs = append(refs, g)
	}
	return refs, nil
}
