package ideas

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DefaultMaxDepth = 4

// ignoredDirs are directory names skipped at any depth. Kept as a fixed set
// rather than reading ignore files: the scan only needs a coarse picture of
// the codebase, not an exact one.
var ignoredDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
	"__pycache__":  true,
	"DerivedData":  true,
	"Pods":         true,
}

// sourceExts are the extensions counted as source files.
var sourceExts = map[string]bool{
	".go":    true,
	".swift": true,
	".kt":    true,
	".java":  true,
	".ts":    true,
	".tsx":   true,
	".js":    true,
	".jsx":   true,
	".dart":  true,
	".m":     true,
	".mm":    true,
}

type scanEntry struct {
	path  string
	depth int
}

// ScanResult is the coarse codebase picture handed to the model: directory
// layout plus source-file names, both capped.
type ScanResult struct {
	Dirs  []string
	Files []string
}

// Scan walks root breadth-first down to maxDepth directory levels. The walk
// is an explicit worklist, not filepath.WalkDir, because the depth bound and
// the ignore set are part of the contract: nothing below maxDepth is even
// statted, and an ignored directory prunes its whole subtree.
func Scan(root string, maxDepth int) (*ScanResult, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("ideas: scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("ideas: scan root %s is not a directory", root)
	}

	result := &ScanResult{}
	work := []scanEntry{{path: root, depth: 0}}

	for len(work) > 0 {
		entry := work[0]
		work = work[1:]

		children, err := os.ReadDir(entry.path)
		if err != nil {
			continue
		}

		for _, child := range children {
			name := child.Name()
			childPath := filepath.Join(entry.path, name)
			rel, err := filepath.Rel(root, childPath)
			if err != nil {
				continue
			}

			if child.IsDir() {
				if ignoredDirs[name] || strings.HasPrefix(name, ".") {
					continue
				}
				result.Dirs = append(result.Dirs, rel)
				if entry.depth+1 <= maxDepth {
					work = append(work, scanEntry{path: childPath, depth: entry.depth + 1})
				}
				continue
			}

			if sourceExts[filepath.Ext(name)] {
				result.Files = append(result.Files, rel)
			}
		}
	}

	sort.Strings(result.Dirs)
	sort.Strings(result.Files)
	return result, nil
}

// Summary renders the scan as the compact text block embedded in the prompt.
func (r *ScanResult) Summary(maxFiles int) string {
	if maxFiles <= 0 {
		maxFiles = 200
	}

	var b strings.Builder
	b.WriteString("Directories:\n")
	for _, d := range r.Dirs {
		fmt.Fprintf(&b, "  %s/\n", d)
	}

	files := r.Files
	truncated := false
	if len(files) > maxFiles {
		files = files[:maxFiles]
		truncated = true
	}
	b.WriteString("Source files:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "  %s\n", f)
	}
	if truncated {
		fmt.Fprintf(&b, "  ... and %d more\n", len(r.Files)-maxFiles)
	}
	return b.String()
}
