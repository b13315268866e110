package merge

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"hdmerge/config"
	"hdmerge/mobi"
	"hdmerge/state"
)

// buildOutputPath returns output file path for the book. Name is either
// source name or expanded name template, which may also introduce
// subdirectories. Extension always comes from the book kind, so source
// ".azw" may become ".azw3" or ".mobi".
func buildOutputPath(book *mobi.Book, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	defaultFile := cleanPathSegment(sourceStem(src), env) + book.Ext()

	if env.Cfg.Merge.OutputNameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName, err := expandTemplate(book, src, config.OutputNameTemplateFieldName, env.Cfg.Merge.OutputNameTemplate)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(outDir, defaultFile)
	}

	segments := splitPath(filepath.FromSlash(expandedName))
	if len(segments) == 0 {
		return filepath.Join(outDir, defaultFile)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+book.Ext())
	return filepath.Join(parts...)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// sourceStem strips directories and known Kindle extensions from src.
func sourceStem(src string) string {
	base := filepath.Base(src)
	for _, ext := range []string{".azw3", ".azw4", ".azw", ".mobi", ".prc", ".pdb"} {
		if len(base) > len(ext) && strings.EqualFold(base[len(base)-len(ext):], ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// splitPath splits path into non empty segments, "." and ".." are dropped
// so template could not escape destination.
func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for _, s := range strings.Split(path, string(os.PathSeparator)) {
		s = strings.TrimSpace(s)
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, s)
	}
	return slices.Clip(segments)
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Merge.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
