package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"qaeval/pkg/core"
)

const defaultTTL = 7 * 24 * time.Hour

// Cache keeps judge responses on disk so identical prompts are not
// re-billed across runs. Each entry is a JSON file named by a digest
// of the model, prompt, and options; freshness comes from the file's
// modification time.
type Cache struct {
	Dir string
	TTL time.Duration
}

func New(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".qaeval", "cache")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{Dir: dir, TTL: ttl}, nil
}

func digest(modelName, prompt string, opts core.GenerateOptions) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(struct {
		Model   string               `json:"model"`
		Prompt  string               `json:"prompt"`
		Options core.GenerateOptions `json:"options"`
	}{modelName, prompt, opts})
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) entryPath(modelName, prompt string, opts core.GenerateOptions) string {
	return filepath.Join(c.Dir, digest(modelName, prompt, opts)+".json")
}

// Lookup returns the cached response for the request, if present and
// fresh. Stale entries are removed on the way out.
func (c *Cache) Lookup(modelName, prompt string, opts core.GenerateOptions) (core.Response, bool) {
	path := c.entryPath(modelName, prompt, opts)
	info, err := os.Stat(path)
	if err != nil {
		return core.Response{}, false
	}
	if c.TTL > 0 && time.Since(info.ModTime()) > c.TTL {
		_ = os.Remove(path)
		return core.Response{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.Response{}, false
	}
	var resp core.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return core.Response{}, false
	}
	return resp, true
}

// Store writes the response for the request, replacing any previous
// entry atomically.
func (c *Cache) Store(modelName, prompt string, opts core.GenerateOptions, resp core.Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.Dir, "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), c.entryPath(modelName, prompt, opts)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
