package render

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"rxvar/internal/diag"
	"rxvar/internal/vardata"
	"rxvar/internal/vars"
)

// cacheSchemaVersion must be bumped whenever cachePayload changes shape.
const cacheSchemaVersion uint16 = 1

// ArtifactCache stores rendered artifacts on disk keyed by the expression
// fingerprint. Safe for concurrent use.
type ArtifactCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema   uint16
	Artifact Artifact
	Data     *vardata.VarData
	// ExprLen guards against truncated entries.
	ExprLen uint32
}

// CacheError is a cache failure carrying a diagnostic code.
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string   { return "artifact cache " + e.Op + ": " + e.Err.Error() }
func (e *CacheError) Unwrap() error   { return e.Err }
func (e *CacheError) Code() diag.Code { return diag.RenCacheError }

// OpenCache opens (creating if needed) a cache rooted at dir.
func OpenCache(dir string) (*ArtifactCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &CacheError{Op: "open", Err: err}
	}
	return &ArtifactCache{dir: dir}, nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/<app>, falling back to
// ~/.cache/<app>.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

func (c *ArtifactCache) pathFor(key vars.Digest) string {
	return filepath.Join(c.dir, "artifacts", hex.EncodeToString(key[:])+".mp")
}

// Put writes a through a temporary file and an atomic rename.
func (c *ArtifactCache) Put(key vars.Digest, a Artifact) (err error) {
	if c == nil {
		return nil
	}
	n, err := safecast.Conv[uint32](len(a.Expr))
	if err != nil {
		return &CacheError{Op: "put", Err: fmt.Errorf("expression too large: %w", err)}
	}
	payload := cachePayload{Schema: cacheSchemaVersion, Artifact: a, Data: a.data, ExprLen: n}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return &CacheError{Op: "put", Err: err}
	}
	if err = f.Close(); err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	if err = os.Rename(tmp, p); err != nil {
		return &CacheError{Op: "put", Err: err}
	}
	return nil
}

// Get loads the artifact stored under key. Entries written by another schema
// version or failing the length check are reported as misses.
func (c *ArtifactCache) Get(key vars.Digest) (Artifact, bool, error) {
	if c == nil {
		return Artifact{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, false, nil
		}
		return Artifact{}, false, &CacheError{Op: "get", Err: err}
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return Artifact{}, false, &CacheError{Op: "get", Err: err}
	}
	if payload.Schema != cacheSchemaVersion {
		return Artifact{}, false, nil
	}
	if n, err := safecast.Conv[int](payload.ExprLen); err != nil || n != len(payload.Artifact.Expr) {
		return Artifact{}, false, nil
	}
	a := payload.Artifact
	a.data = payload.Data
	a.Cached = true
	return a, true, nil
}

// Clear removes every cached entry.
func (c *ArtifactCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "artifacts")); err != nil {
		return &CacheError{Op: "clear", Err: err}
	}
	return nil
}
