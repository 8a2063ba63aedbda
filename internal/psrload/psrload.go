// Public domain.

// Package psrload reads campaign catalog files, fetching a fresh copy when
// a local file is missing or unreadable.
package psrload

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/soniakeys/psrcat/internal/psrnorm"
)

// Source locates the catalog file of one campaign.
type Source struct {
	Campaign psrnorm.Campaign
	File     string // local path
	URL      string // optional; fetched to File when File cannot be read
	Optional bool   // a missing file with no URL is an empty catalog
}

// ErrFetch marks a failed download.
var ErrFetch = errors.New("catalog download failed")

// ReadFile reads and decodes a catalog file of the given shape.
func ReadFile(shape psrnorm.Shape, fn string) (psrnorm.Payload, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return psrnorm.Payload{}, errors.Wrap(err, "reading catalog")
	}
	p, err := psrnorm.Decode(shape, b)
	if err != nil {
		return p, errors.Wrapf(err, "%s", fn)
	}
	return p, nil
}

// Fetch gets a fresh copy of the data at url and writes it to the file fn.
// The file is replaced only after a complete download.
func Fetch(ctx context.Context, url, fn string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Mark(errors.Wrap(err, url), ErrFetch)
	}
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Mark(errors.Wrap(err, url), ErrFetch)
	}
	defer r.Body.Close()
	if r.StatusCode != http.StatusOK {
		return errors.Mark(errors.Newf("%s: %s", url, r.Status), ErrFetch)
	}
	if dir := filepath.Dir(fn); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := fn + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err = io.Copy(f, r.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Mark(errors.Wrap(err, url), ErrFetch)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, fn)
}

// Load reads the catalog of s.
//
// If the file cannot be read or decoded and s.URL is set, a fresh copy is
// fetched and the read retried.  A missing optional file with no URL
// loads as an empty catalog.
func Load(ctx context.Context, s Source) (psrnorm.Payload, error) {
	shape := s.Campaign.Shape()
	p, readErr := ReadFile(shape, s.File)
	if readErr == nil {
		return p, nil
	}
	if s.URL == "" {
		if s.Optional && errors.Is(readErr, fs.ErrNotExist) {
			return psrnorm.Payload{Shape: shape, Data: []any{}}, nil
		}
		return p, readErr
	}
	// that didn't work.  try getting a fresh copy.
	// the download error is primary; the read error rides along.
	if err := Fetch(ctx, s.URL, s.File); err != nil {
		return p, errors.WithSecondaryError(err, readErr)
	}
	return ReadFile(shape, s.File)
}
