// Package download fetches remote files over HTTP with checksum verification
// and cached-file reuse. Downloads stream to a temporary file and are renamed
// into place only after verification, so a final path never holds a partial
// or corrupt file.
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/boardman/pkg/auth"
	pkgerrors "github.com/glorpus-work/boardman/pkg/errors"
	"github.com/glorpus-work/boardman/pkg/fsutil"
)

// checksumPrefix is the algorithm tag carried by index checksums.
const checksumPrefix = "SHA-256"

// ManagerImpl is a simple HTTP-based download manager with checksum
// verification and reuse of previously downloaded files. Retries, backoff,
// and mirror selection are out of scope; every artifact gets one attempt.
type ManagerImpl struct {
	client    *http.Client
	userAgent string
	auths     map[string]auth.Authenticator
}

// NewManager creates a new download manager with the given timeout and user agent.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if userAgent == "" {
		userAgent = "boardman/1.0"
	}
	return &ManagerImpl{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// SetAuth installs per-host credentials. Requests to a host present in the
// map are decorated with its authenticator; all other requests go out bare.
func (m *ManagerImpl) SetAuth(auths map[string]auth.Authenticator) {
	m.auths = auths
}

// Fetch downloads a single item into opts.Dir and returns the path of the
// downloaded file. An existing file that passes the size and checksum checks
// is reused without touching the network.
func (m *ManagerImpl) Fetch(ctx context.Context, item Item, opts Options) (string, error) {
	if opts.Dir == "" || !filepath.IsAbs(opts.Dir) {
		return "", fmt.Errorf("download dir must be absolute: %s: %w", opts.Dir, pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(opts.Dir, fsutil.DirModeDefault); err != nil {
		return "", pkgerrors.Wrap(err, "could not create download dir")
	}
	if item.URL == nil {
		return "", fmt.Errorf("nil URL: %w", pkgerrors.ErrDownloadFailed)
	}

	filename := selectFilename(item)
	absPath := filepath.Join(opts.Dir, filename)
	if reuse, ok := tryReuseExisting(absPath, item); ok {
		return reuse, nil
	}

	resp, err := m.doRequest(ctx, item)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	tmpPath, err := writeBodyToTemp(resp, absPath)
	if err != nil {
		return "", err
	}
	if item.Checksum != "" {
		ok, err := verifyChecksum(tmpPath, item.Checksum)
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", err
		}
		if !ok {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("checksum mismatch for %s: %w", item.URL, pkgerrors.ErrChecksumMismatch)
		}
	}
	if err := finalizeFile(tmpPath, absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// IsCancellation reports whether the error came from a canceled or expired
// context rather than a transport or verification failure. Pipelines treat
// the two cases differently.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func selectFilename(item Item) string {
	if item.Filename != "" {
		return item.Filename
	}
	if base := path.Base(item.URL.Path); base != "" && base != "." && base != "/" {
		return base
	}
	h := sha256.Sum256([]byte(item.URL.String()))
	return hex.EncodeToString(h[:])
}

func tryReuseExisting(absPath string, item Item) (string, bool) {
	st, err := os.Stat(absPath)
	if err != nil || st.Size() == 0 {
		return "", false
	}
	if item.Size > 0 && st.Size() != item.Size {
		return "", false
	}
	if item.Checksum == "" {
		return absPath, true
	}
	ok, err := verifyChecksum(absPath, item.Checksum)
	if err == nil && ok {
		return absPath, true
	}
	return "", false
}

func (m *ManagerImpl) doRequest(ctx context.Context, item Item) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, item.URL.String(), http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	if a, ok := m.auths[item.URL.Hostname()]; ok {
		if err := a.Apply(req); err != nil {
			return nil, pkgerrors.Wrap(err, "could not apply credentials")
		}
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "download failed")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, pkgerrors.ErrDownloadFailed)
	}
	return resp, nil
}

func writeBodyToTemp(resp *http.Response, absPath string) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(absPath), "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not write file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}

func finalizeFile(tmpPath, absPath string) error {
	if err := fsutil.Move(tmpPath, absPath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize file")
	}
	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return pkgerrors.Wrap(err, "could not set permissions")
	}
	return nil
}

// verifyChecksum checks the file against a checksum of the form
// "SHA-256:<hex>". A bare hex digest is accepted as well; any other algorithm
// tag is an error.
func verifyChecksum(path, checksum string) (bool, error) {
	wantHex, err := parseChecksum(checksum)
	if err != nil {
		return false, err
	}
	f, err := os.Open(path)
	if err != nil {
		return false, pkgerrors.Wrap(err, "open for checksum")
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, pkgerrors.Wrap(err, "hashing")
	}
	got := hex.EncodeToString(h.Sum(nil))
	return got == wantHex, nil
}

func parseChecksum(checksum string) (string, error) {
	checksum = strings.TrimSpace(checksum)
	algo, hexPart, found := strings.Cut(checksum, ":")
	if !found {
		return strings.ToLower(checksum), nil
	}
	if !strings.EqualFold(algo, checksumPrefix) {
		return "", fmt.Errorf("unsupported checksum algorithm %q: %w", algo, pkgerrors.ErrChecksumMismatch)
	}
	return strings.ToLower(strings.TrimSpace(hexPart)), nil
}
