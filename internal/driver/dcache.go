package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Bump when DiskPayload changes shape; older entries then read as misses.
const diskCacheSchemaVersion uint16 = 1

// DiskPayload is what a successful unit leaves in the cache.
type DiskPayload struct {
	Schema   uint16 `msgpack:"schema"`
	Path     string `msgpack:"path"`
	Text     string `msgpack:"text"`
	Resolved int    `msgpack:"resolved"`
	Renamed  int    `msgpack:"renamed"`
}

// DiskCache is a directory of msgpack entries named after their unit key
// and sharded by the first key byte. It is safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens the cache for app under $XDG_CACHE_HOME, falling back
// to ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if env := os.Getenv("XDG_CACHE_HOME"); env != "" {
		base, err = env, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) entryPath(key Digest) string {
	name := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "units", name[:2], name[2:]+".mp")
}

// Put stores payload under key, replacing any older entry atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeAtomic(c.entryPath(key), data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Get loads the entry for key into out. Missing entries and entries written
// under another schema report a miss without error. Undecodable entries are
// removed and reported.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	path := c.entryPath(key)
	c.mu.RLock()
	data, err := os.ReadFile(path)
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		c.mu.Lock()
		_ = os.Remove(path)
		c.mu.Unlock()
		return false, fmt.Errorf("cache entry %x: %w", key[:4], err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// Len counts the stored entries.
func (c *DiskCache) Len() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	err := filepath.WalkDir(filepath.Join(c.dir, "units"), func(_ string, d fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return filepath.SkipAll
		}
		if err == nil && !d.IsDir() && strings.HasSuffix(d.Name(), ".mp") {
			n++
		}
		return err
	})
	return n, err
}

// DropAll empties the cache. The directory is renamed away first so a
// concurrent reader never sees a half-deleted tree.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	trash := fmt.Sprintf("%s.drop-%d", c.dir, time.Now().UnixNano())
	if err := os.Rename(c.dir, trash); err != nil {
		return err
	}
	if err := os.RemoveAll(trash); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
