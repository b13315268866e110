package merge

import (
	"archive/zip"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"hdmerge/archive"
	"hdmerge/mobi"
)

// locator lists sidecar candidates for a single book.
type locator interface {
	// candidates returns names of all files matching pattern.
	candidates(pattern string) ([]string, error)
	// load reads candidate returned earlier.
	load(name string) ([]byte, error)
}

// dirLocator looks for sidecars next to the book on disk.
type dirLocator struct {
	dir string
}

func (l dirLocator) candidates(pattern string) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, filepath.Join(l.dir, e.Name()))
		}
	}
	return res, nil
}

func (l dirLocator) load(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// archiveLocator looks for sidecars stored in the same archive directory as
// the book. Names are already decoded.
type archiveLocator struct {
	files map[string]*zip.File
}

func newArchiveLocator(siblings []*zip.File, name func(*zip.File) string) archiveLocator {
	l := archiveLocator{files: make(map[string]*zip.File, len(siblings))}
	for _, f := range siblings {
		l.files[name(f)] = f
	}
	return l
}

func (l archiveLocator) candidates(pattern string) ([]string, error) {
	var res []string
	for name := range l.files {
		ok, err := path.Match(pattern, path.Base(name))
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, name)
		}
	}
	return res, nil
}

func (l archiveLocator) load(name string) ([]byte, error) {
	f, ok := l.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, os.ErrNotExist)
	}
	return archive.ReadFile(f)
}

// fixedLocator always returns sidecar specified by user ignoring pattern.
type fixedLocator struct {
	name string
}

func (l fixedLocator) candidates(string) ([]string, error) {
	return []string{l.name}, nil
}

func (l fixedLocator) load(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// findSidecar returns content of the only sidecar candidate. When there are
// none or more than one *mobi.MergeError is returned.
func findSidecar(loc locator, pattern string, log *zap.Logger) ([]byte, string, error) {
	names, err := loc.candidates(pattern)
	if err != nil {
		return nil, "", fmt.Errorf("unable to look for sidecar: %w", err)
	}
	sort.Sort(natural.StringSlice(names))

	switch len(names) {
	case 0:
		return nil, "", &mobi.MergeError{Kind: mobi.MergeErrorKindSidecarAbsent}
	case 1:
	default:
		log.Debug("Multiple sidecar candidates", zap.Strings("candidates", names))
		return nil, "", &mobi.MergeError{Kind: mobi.MergeErrorKindSidecarAmbiguous, Candidates: len(names)}
	}

	data, err := loc.load(names[0])
	if err != nil {
		return nil, "", fmt.Errorf("unable to read sidecar: %w", err)
	}
	return data, names[0], nil
}
