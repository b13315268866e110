// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk. The file argument is the zip.File structure for file in archive which
// satisfies match condition, siblings are all other files stored in the same
// archive directory, in archive order. If an error is returned, processing
// stops.
type WalkFunc func(archive string, file *zip.File, siblings []*zip.File) error

// Walk walks the all files in the archive which satisfy match condition,
// calling walkFn for each item. Archives with path traversal components
// ("..") or absolute paths in entry names are rejected to prevent Zip Slip
// attacks.
func Walk(archive, pattern string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	var (
		selected []*zip.File
		dirs     = make(map[string][]*zip.File)
	)
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		dir := path.Dir(name)
		dirs[dir] = append(dirs[dir], f)
		if strings.HasPrefix(name, pattern) {
			selected = append(selected, f)
		}
	}

	for _, f := range selected {
		siblings := slices.DeleteFunc(slices.Clone(dirs[path.Dir(f.FileHeader.Name)]), func(s *zip.File) bool {
			return s == f
		})
		if err := walkFn(archive, f, siblings); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile reads whole content of the archived file.
func ReadFile(f *zip.File) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", f.FileHeader.Name, err)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}
