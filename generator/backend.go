package generator

import (
	"os"
	"sort"
	"sync"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
)

// Config carries the target-independent settings a backend receives for one
// render.
type Config struct {
	// ServerName is the name the generated server identifies itself with.
	// Empty means the specification's API title is used.
	ServerName string
}

// File is one rendered artifact.
type File struct {
	// Name is the artifact file name, always bare with no directory part
	Name string
	// Content is the rendered artifact bytes
	Content []byte
	// Mode is the permission the file is written with
	Mode os.FileMode
}

// Backend renders the artifact set for one target language.
//
// Render must be pure with respect to the specification: read-only, no
// retained references, and deterministic, so the same specification always
// produces byte-identical files.
type Backend interface {
	// Target returns the selector this backend is registered under
	Target() string

	// Artifacts returns the names of the required artifact set, in emission
	// order
	Artifacts() []string

	// Render produces the artifact set plus any non-fatal findings
	Render(spec *apispec.NormalizedAPISpec, cfg Config) ([]File, []Issue, error)
}

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available under its target selector. It panics if
// the backend is nil, its selector is empty, or the selector is already
// taken, mirroring how database/sql drivers register.
func Register(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if b == nil {
		panic("generator: Register backend is nil")
	}
	target := b.Target()
	if target == "" {
		panic("generator: Register backend has empty target")
	}
	if _, dup := backends[target]; dup {
		panic("generator: Register called twice for target " + target)
	}
	backends[target] = b
}

// Get returns the backend registered under the given selector, or an
// UnsupportedTargetError listing the registered selectors.
func Get(target string) (Backend, error) {
	backendsMu.RLock()
	b, ok := backends[target]
	backendsMu.RUnlock()
	if !ok {
		return nil, &adaptererrors.UnsupportedTargetError{
			Target:     target,
			Registered: Targets(),
		}
	}
	return b, nil
}

// Targets returns the registered target selectors in sorted order.
func Targets() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	targets := make([]string, 0, len(backends))
	for target := range backends {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets
}
