// Package imagestore persists liveness session images on local disk
// Layout is one directory per session holding sessionImage.jpg
package imagestore

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	perr "liveness/internal/platform/errors"
)

// FileName is the name of the image inside a session directory
const FileName = "sessionImage.jpg"

// DefaultMaxBytes bounds a single image
const DefaultMaxBytes = 20 << 20

// FS writes session images under Dir
type FS struct {
	Dir string
	// MaxBytes rejects larger images; zero means DefaultMaxBytes
	MaxBytes int64
}

// New returns a store rooted at dir; an empty dir disables persistence
func New(dir string) *FS {
	return &FS{Dir: strings.TrimSpace(dir), MaxBytes: DefaultMaxBytes}
}

// Enabled reports whether a directory is configured
func (s *FS) Enabled() bool { return s != nil && s.Dir != "" }

// PathFor returns where the image of sessionID lives
func (s *FS) PathFor(sessionID string) (string, error) {
	if err := checkID(sessionID); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, sessionID, FileName), nil
}

// Save streams r into the session's image file, replacing any previous one
// The write goes through a .part file so readers never see a torn image
func (s *FS) Save(sessionID string, r io.Reader) (string, error) {
	if !s.Enabled() {
		return "", perr.Configurationf("image directory is not configured")
	}
	path, err := s.PathFor(sessionID)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeStorage, "create image dir for %s", sessionID)
	}

	tmp := path + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeStorage, "create image file for %s", sessionID)
	}
	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	// one byte past the limit tells a full image from an oversized one
	n, werr := io.Copy(out, io.LimitReader(r, limit+1))
	cerr := out.Close()
	if werr == nil && n > limit {
		_ = os.Remove(tmp)
		return "", perr.Newf(perr.ErrorCodeStorage, "image for %s exceeds %d bytes", sessionID, limit)
	}
	if werr != nil || cerr != nil {
		_ = os.Remove(tmp)
		if werr == nil {
			werr = cerr
		}
		return "", perr.Wrapf(werr, perr.ErrorCodeStorage, "write image for %s", sessionID)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", perr.Wrapf(err, perr.ErrorCodeStorage, "rename image for %s", sessionID)
	}
	return path, nil
}

// checkID keeps session ids inside the store root
func checkID(id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return perr.WithField(perr.InvalidArgf("session id is required"), "sessionId")
	case strings.ContainsAny(id, `/\`), strings.Contains(id, ".."), id == ".":
		return perr.WithField(perr.InvalidArgf("session id %q is not a valid path segment", id), "sessionId")
	}
	return nil
}
