package plotting

import (
	"sort"
	"sync"
)

// ArtifactSet collects rendered plot paths keyed by name. Renderers run
// concurrently, so access is serialized.
type ArtifactSet struct {
	paths map[string]string
	mu    sync.RWMutex
}

func NewArtifactSet() *ArtifactSet {
	return &ArtifactSet{
		paths: make(map[string]string),
	}
}

func (a *ArtifactSet) Set(name, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paths[name] = path
}

func (a *ArtifactSet) Get(name string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	path, exists := a.paths[name]
	return path, exists
}

// Paths returns every recorded artifact path, ordered by name.
func (a *ArtifactSet) Paths() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.paths))
	for name := range a.paths {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = a.paths[name]
	}
	return paths
}

func (a *ArtifactSet) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.paths)
}
