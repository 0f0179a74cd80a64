package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Profile bundles the deployment-specific configuration of one file layout:
// header spellings per logical field, the sentinel set for date cells, and
// the defaults applied when a record is materialized. Passing configuration
// in as a value keeps the engine itself a pure function.
type Profile struct {
	Key   string // Unique identifier: "studio"
	Label string // Display name: "Studio (català)"

	Termini FieldSpec
	Content FieldSpec
	DueDate FieldSpec

	Sentinels SentinelSet

	// TerminiFallback is the text a record's deadline condition defaults to
	// when the column is absent or the cell is empty.
	TerminiFallback string

	// DefaultColor is the 6-hex-digit palette entry assigned to new records.
	DefaultColor string
}

var (
	registry   = make(map[string]Profile)
	registryMu sync.RWMutex
)

// Register adds an import profile to the registry.
// Panics if a profile with the same key is already registered.
func Register(p Profile) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[p.Key]; exists {
		panic(fmt.Sprintf("profile already registered: %s", p.Key))
	}
	registry[p.Key] = p
}

// GetProfile returns a profile by key.
// Returns false if not found.
func GetProfile(key string) (Profile, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	p, ok := registry[key]
	return p, ok
}

// Profiles returns all registered profiles, sorted by key for consistent
// ordering.
func Profiles() []Profile {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Profile, 0, len(registry))
	for _, p := range registry {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// ProfileCount returns the number of registered profiles.
func ProfileCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}
