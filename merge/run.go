// Package merge implements "merge" command: it finds MOBI books in files,
// directories and zip archives, merges high resolution images from sidecars
// found next to them and writes results under proper extensions.
package merge

import (
	"archive/zip"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"hdmerge/archive"
	"hdmerge/mobi"
	"hdmerge/pdb"
	"hdmerge/state"
	"hdmerge/utils/images"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("merge")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	if sc := cmd.String("sidecar"); len(sc) > 0 {
		if env.Sidecar, err = filepath.Abs(sc); err != nil {
			return err
		}
		if _, err := os.Stat(env.Sidecar); err != nil {
			return fmt.Errorf("unable to access sidecar: %w", err)
		}
	}

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process determines the input type (directory, archive, or single file) and
// processes accordingly. Source may point inside of the archive.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		kind, err := detectFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		switch {
		case kind == InputKindArchive:
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, tail, "", dst, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
		case kind == InputKindBook && len(tail) == 0:
			if err := processFile(ctx, head, filepath.Base(head), dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			}
		case kind == InputKindKfx || kind == InputKindTopaz:
			return fmt.Errorf("input is %s book, only MOBI containers are supported (%s)", kind, head)
		default:
			return fmt.Errorf("input was not recognized as MOBI book (%s)", head)
		}
		break
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding books and archives and processes them.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	out := filepath.Clean(dst)
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		// results are valid input, never pick them up again
		if info.IsDir() && path != dir && filepath.Clean(path) == out {
			log.Debug("Skipping destination directory", zap.String("dir", path))
			return filepath.SkipDir
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		kind, err := detectFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		switch kind {
		case InputKindArchive:
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
		case InputKindBook:
			count++
			if err := processFile(ctx, path, rel, dst, log); err != nil {
				log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			}
		case InputKindKfx, InputKindTopaz:
			log.Info("Skipping unsupported Kindle format", zap.String("file", path), zap.Stringer("kind", kind))
		default:
			log.Debug("Skipping file, not recognized as book or archive", zap.String("file", path))
		}
		return nil
	})
	return err
}

// processFile handles book on disk, sidecar is looked for in the book directory.
func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	var loc locator = dirLocator{dir: filepath.Dir(path)}
	if len(env.Sidecar) > 0 {
		loc = fixedLocator{name: env.Sidecar}
	}
	return processBook(ctx, data, src, dst, loc, log)
}

// processArchive walks all files inside archive, finds books under "pathIn"
// and processes them. Sidecars are looked for among files in the same archive
// directory.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	env := state.EnvFromContext(ctx)
	name := func(f *zip.File) string {
		return decodeName(f, env, log)
	}

	err = archive.Walk(path, pathIn, func(arc string, f *zip.File, siblings []*zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		kind, err := detectInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive", zap.String("archive", arc), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if kind != InputKindBook {
			log.Debug("Skipping file, not recognized as book", zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Stringer("kind", kind))
			return nil
		}

		count++

		data, err := archive.ReadFile(f)
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}

		var loc locator = newArchiveLocator(siblings, name)
		if len(env.Sidecar) > 0 {
			loc = fixedLocator{name: env.Sidecar}
		}
		if err := processBook(ctx, data, filepath.Join(pathOut, filepath.FromSlash(name(f))), dst, loc, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

func detectInArchive(f *zip.File) (InputKind, error) {
	r, err := f.Open()
	if err != nil {
		return InputKindUnknown, err
	}
	defer r.Close()

	header, err := readHeader(r)
	if err != nil {
		return InputKindUnknown, err
	}
	return detectKind(header), nil
}

// decodeName returns archived file name, forcing requested code page on non
// UTF-8 names.
func decodeName(f *zip.File, env *state.LocalEnv, log *zap.Logger) string {
	name := f.FileHeader.Name
	if env.CodePage == nil || !f.FileHeader.NonUTF8 {
		return name
	}
	n, err := env.CodePage.NewDecoder().String(name)
	if err != nil {
		cs, _ := ianaindex.IANA.Name(env.CodePage)
		log.Warn("Unable to convert archive name from specified encoding", zap.String("charset", cs), zap.String("path", name), zap.Error(err))
		return name
	}
	return n
}

// mergeBook attempts to merge book with its sidecar. Returned result is
// always usable.
func mergeBook(book *mobi.Book, loc locator, env *state.LocalEnv, log *zap.Logger) (*mobi.Result, error) {
	if book.Encrypted() {
		// no point looking for sidecar
		return mobi.AttemptMerge(book, nil)
	}
	sidecar, name, err := findSidecar(loc, env.Cfg.Merge.SidecarPattern, log)
	if err != nil {
		return &mobi.Result{Data: book.Payload()}, err
	}
	log.Debug("Using sidecar", zap.String("sidecar", name), zap.String("size", humanize.IBytes(uint64(len(sidecar)))))
	return mobi.AttemptMerge(book, sidecar, env.MergeOptions()...)
}

// processBook merges single book. "src" is part of the source path (always
// including file name) relative to the original path. When actual file was
// specified it will be just base file name without a path. When looking
// inside archive or directory it will be relative path inside archive or
// directory (including base file name). "dst" is the destination directory.
func processBook(ctx context.Context, data []byte, src, dst string, loc locator, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	refID := uuid.NewString()
	log = log.With(zap.String("ref_id", refID))

	var outputName string

	log.Info("Merge starting", zap.String("from", src))
	defer func(start time.Time) {
		// malformed books should never stop processing of others
		if r := recover(); r != nil {
			log.Error("Merge ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("merge panic: %v", r)
		} else {
			log.Info("Merge completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	book, err := mobi.ParseBook(data)
	if err != nil {
		return fmt.Errorf("unable to parse book (%s): %w", src, err)
	}
	log.Debug("Book parsed",
		zap.Stringer("magic", book.Magic),
		zap.Int("version", book.Version),
		zap.Bool("print_replica", book.PrintReplica),
		zap.Int("records", book.Container.Count()),
		zap.String("title", book.Meta.Title))

	res, err := mergeBook(book, loc, env, log)
	if err != nil {
		var (
			me *mobi.MergeError
			fe *pdb.FormatError
		)
		if !errors.As(err, &me) && !errors.As(err, &fe) {
			// not a property of the book, sidecar could not be accessed
			log.Warn("Unable to merge book", zap.Error(err))
		} else {
			log.Warn("Book will not be merged", zap.Error(err))
		}
		if !env.Cfg.Merge.WriteUnmerged {
			log.Info("Skipping unmerged book")
			return nil
		}
	} else {
		for _, r := range res.Plan.Replacements {
			if info, err := images.Probe(r.Data); err == nil {
				log.Debug("Image replaced", zap.Int("record", r.Section), zap.Int("resource", r.Resource), zap.Stringer("image", info))
			} else {
				log.Debug("Image replaced", zap.Int("record", r.Section), zap.Int("resource", r.Resource), zap.String("image", humanize.IBytes(uint64(len(r.Data)))))
			}
		}
		if len(res.Plan.Kept) > 0 {
			log.Debug("Images without high resolution version", zap.Ints("records", res.Plan.Kept))
		}
	}

	outputName = buildOutputPath(book, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, res.Data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	sum := blake3.Sum256(res.Data)
	log.Info("Book written",
		zap.Bool("merged", res.Merged),
		zap.String("size", humanize.IBytes(uint64(len(res.Data)))),
		zap.String("original_size", humanize.IBytes(uint64(len(data)))),
		zap.String("blake3", hex.EncodeToString(sum[:])))

	// Store result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(outputName)), outputName)
		if res.Merged {
			env.Rpt.StoreData(fmt.Sprintf("plan-%s.txt", refID), describePlan(src, res.Plan))
		}
	}
	return nil
}

func describePlan(src string, plan *mobi.Plan) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", src)
	for _, r := range plan.Replacements {
		fmt.Fprintf(&b, "record %d <- resource %d (%s)\n", r.Section, r.Resource, humanize.IBytes(uint64(len(r.Data))))
	}
	for _, k := range plan.Kept {
		fmt.Fprintf(&b, "record %d kept\n", k)
	}
	return []byte(b.String())
}
