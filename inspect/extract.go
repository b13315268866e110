package inspect

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hdmerge/mobi"
)

// resourcesPath returns path of the archive extracted images are written to.
func resourcesPath(src, dst string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(src)
	if dst != "" {
		dir = dst
	}
	return filepath.Join(dir, stem+"-resources.zip")
}

// extract writes every image record (CRES payloads unwrapped) into zip
// archive at outPath. It returns number of images written.
func extract(r *report, outPath string, overwrite bool) (written int, retErr error) {
	if _, err := os.Stat(outPath); err == nil {
		if !overwrite {
			return 0, fmt.Errorf("output file already exists: %s", outPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	defer func() { retErr = errors.Join(retErr, f.Close()) }()

	zw := zip.NewWriter(f)
	defer func() { retErr = errors.Join(retErr, zw.Close()) }()

	c := r.container
	for i := 1; i < c.Count(); i++ {
		data, err := c.Section(i)
		if err != nil {
			return written, err
		}
		kind, payload := mobi.Classify(data)
		if kind != mobi.ResourceKindImage || len(payload) == 0 {
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   fmt.Sprintf("%05d%s", i, extFromFiletype(payload)),
			Method: zip.Store,
		})
		if err != nil {
			return written, err
		}
		if _, err := w.Write(payload); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
