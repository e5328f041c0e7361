// Package discover resolves a folder and filter into the input descriptors
// the pipeline processes: one descriptor per PDF, or all matching images
// merged into a single descriptor.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/scandoc/pkg/types"
)

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	docExts   = map[string]bool{".pdf": true}
)

// Mode is the resolved processing mode.
type Mode string

const (
	ModePDF   Mode = "pdf"
	ModeImage Mode = "image"
)

// Resolve scans cfg.Folder for files matching cfg.Filter and returns the
// input descriptors in processing order, plus the resolved mode. An empty
// result is not an error; a missing folder is.
func Resolve(cfg types.DiscoveryConfig) ([]types.InputDescriptor, Mode, error) {
	folder := cfg.Folder
	if folder == "" {
		folder = "."
	}
	if _, err := os.Stat(folder); err != nil {
		return nil, ModePDF, fmt.Errorf("input folder %s: %w", folder, err)
	}

	mode, exts, nameFilter := resolveFilter(cfg.Filter)

	files, err := listFiles(folder, cfg.Recurse)
	if err != nil {
		return nil, mode, err
	}

	var matched []string
	for _, f := range files {
		if !exts[strings.ToLower(filepath.Ext(f))] {
			continue
		}
		if nameFilter != "" && filepath.Base(f) != nameFilter {
			continue
		}
		matched = append(matched, f)
	}

	sortFiles(matched, cfg.SortBy)

	if mode == ModeImage {
		if len(matched) == 0 {
			return nil, mode, nil
		}
		// All images merge into one output named after the first image.
		return []types.InputDescriptor{types.ImageSetInput(matched)}, mode, nil
	}

	descs := make([]types.InputDescriptor, 0, len(matched))
	for _, f := range matched {
		descs = append(descs, types.PDFInput(f))
	}
	return descs, mode, nil
}

// resolveFilter interprets the filter argument: the keywords "pdf" and
// "image", a supported extension, or an exact file name (whose extension
// picks the mode). Any other name is an exact-name match against PDFs.
func resolveFilter(filter string) (Mode, map[string]bool, string) {
	switch strings.ToLower(filter) {
	case "", "pdf":
		return ModePDF, docExts, ""
	case "image":
		return ModeImage, imageExts, ""
	}

	ext := strings.ToLower(filepath.Ext(filter))
	if strings.HasPrefix(filter, ".") {
		// A bare extension such as ".png".
		ext = strings.ToLower(filter)
		switch {
		case imageExts[ext]:
			return ModeImage, map[string]bool{ext: true}, ""
		case docExts[ext]:
			return ModePDF, map[string]bool{ext: true}, ""
		}
		return ModePDF, docExts, ""
	}

	switch {
	case imageExts[ext]:
		return ModeImage, map[string]bool{ext: true}, filter
	case docExts[ext]:
		return ModePDF, map[string]bool{ext: true}, filter
	default:
		// A name without a supported extension stays an exact-name match:
		// a typo matches nothing instead of every PDF in the folder.
		return ModePDF, docExts, filter
	}
}

// listFiles returns the regular files under folder, walking sub-folders
// only when recurse is set.
func listFiles(folder string, recurse bool) ([]string, error) {
	var files []string

	if !recurse {
		entries, err := os.ReadDir(folder)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", folder, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, filepath.Join(folder, e.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", folder, err)
	}
	return files, nil
}

// sortFiles orders the matches, then applies a secondary sort by path depth
// so files from the same folder stay together when recursing. Creation time
// is not portably observable, so ctime sorts by the best available
// approximation, the modification time.
func sortFiles(files []string, order types.SortOrder) {
	switch order {
	case types.SortNone:
		return
	case types.SortByCTime, types.SortByMTime:
		sort.SliceStable(files, func(i, j int) bool {
			return modTime(files[i]).Before(modTime(files[j]))
		})
	default:
		sort.SliceStable(files, func(i, j int) bool {
			return filepath.Base(files[i]) < filepath.Base(files[j])
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return pathDepth(files[i]) < pathDepth(files[j])
	})
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func pathDepth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}
