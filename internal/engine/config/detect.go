package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Project is a .NET solution or project file found in the project root.
type Project struct {
	File string
	Kind string // "solution" or "project"
}

// markerExtensions maps file extensions to the kind of build entry point they mark.
var markerExtensions = map[string]string{
	".sln":    "solution",
	".slnx":   "solution",
	".csproj": "project",
	".fsproj": "project",
	".vbproj": "project",
}

// DetectProjects scans file names for MSBuild entry points. Pure function, no I/O.
// Solutions are listed before projects; within a kind, names are sorted.
func DetectProjects(files []string) []Project {
	var projects []Project
	for _, f := range files {
		if kind, ok := markerExtensions[strings.ToLower(filepath.Ext(f))]; ok {
			projects = append(projects, Project{File: f, Kind: kind})
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Kind != projects[j].Kind {
			return projects[i].Kind == "solution"
		}
		return projects[i].File < projects[j].File
	})
	return projects
}

// GenerateLogsYAML produces a logs.yaml configuration string for the detected projects.
// If no projects are provided, a minimal example config with a commented log is returned.
func GenerateLogsYAML(projects []Project) string {
	if len(projects) == 0 {
		return fallbackYAML
	}

	// A solution build covers its projects, so only the first entry point is used.
	entry := projects[0]
	name := strings.TrimSuffix(entry.File, filepath.Ext(entry.File))

	var b strings.Builder
	b.WriteString(yamlHeader)
	fmt.Fprintf(&b, `  # Capture with: dotnet build %s -nologo -clp:NoSummary > artifacts/build.log
  - name: %s
    type: msbuild
    path: artifacts/build.log
    except: ["*.g.cs", "obj/**"]

  # - name: analyzers
  #   type: sarif
  #   path: artifacts/%s.sarif
  #   min_severity: warning
`, entry.File, yamlString(strings.ToLower(name)), name)
	return b.String()
}

// yamlString quotes s when it would not survive as a plain YAML scalar.
func yamlString(s string) string {
	if s == "" || strings.ContainsAny(s, ":#[]{},&*!|>'\"%@`") || strings.TrimSpace(s) != s {
		return fmt.Sprintf("%q", s)
	}
	return s
}

const yamlHeader = `# buildlint configuration — auto-generated
# Customize logs to match your build.
version: 1

defaults:
  base_dir: .
  on_mismatch: skip
  blocking: true

logs:
`

const fallbackYAML = `# buildlint configuration
# No solution or project file detected. Add logs below to get started.
version: 1

defaults:
  base_dir: .
  on_mismatch: abort
  blocking: true

logs:
  # Example log — uncomment and customize:
  # - name: build
  #   type: msbuild
  #   path: artifacts/build.log
`
