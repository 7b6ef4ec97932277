package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FileInfo struct {
	Path  string
	Root  string // directory the file was found under, empty for explicit files
	Mtime int64
	Size  int64
}

// ScanPaths expands each path: directories are walked for transcripts,
// files are taken as given. A missing path is skipped when several are
// given and is an error otherwise.
func ScanPaths(paths ...string) ([]FileInfo, error) {
	var files []FileInfo
	seen := make(map[string]bool)

	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) && len(paths) > 1 {
				continue
			}
			return nil, err
		}

		var found []FileInfo
		if info.IsDir() {
			found, err = scanDir(p)
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", p, err)
			}
		} else {
			found = []FileInfo{{
				Path:  p,
				Mtime: info.ModTime().Unix(),
				Size:  info.Size(),
			}}
		}

		for _, f := range found {
			abs, err := filepath.Abs(f.Path)
			if err != nil {
				abs = f.Path
			}
			if seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, f)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func scanDir(root string) ([]FileInfo, error) {
	var files []FileInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsTranscript(path) {
			return nil
		}
		files = append(files, FileInfo{
			Path:  path,
			Root:  root,
			Mtime: info.ModTime().Unix(),
			Size:  info.Size(),
		})
		return nil
	})
	return files, err
}

// IsTranscript reports whether path looks like an exported chat.
func IsTranscript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// Key derives the stable index key of a transcript: its path relative to
// the root it was found under, or its base name, without the extension.
func Key(f FileInfo) string {
	rel := filepath.Base(f.Path)
	if f.Root != "" {
		if r, err := filepath.Rel(f.Root, f.Path); err == nil {
			rel = r
		}
	}
	return strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
}
