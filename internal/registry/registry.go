// Package registry provides a global registry for solitaire rule-sets.
// Rule-sets register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-patience/internal/engine"
)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID     string // short name used on the command line
	Title  string
	GameID int // numeric id stored in save files
}

// Factory creates a new rule-set instance. Every game gets its own.
type Factory func() engine.Variant

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	byGameID  = make(map[int]string)
	mu        sync.RWMutex
)

// Register adds a rule-set factory to the registry.
// Typically called from a rule-set's init() function.
// Panics if the short name or the numeric id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Get metadata by creating a temporary instance
	info := f().Info()
	if other, exists := byGameID[info.ID]; exists {
		panic(fmt.Sprintf("registry: game id %d of %q already used by %q", info.ID, id, other))
	}

	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: info.Name, GameID: info.ID}
	byGameID[info.ID] = id
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new rule-set by its short name.
// Returns an error if the name is not registered.
func Create(id string) (engine.Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given short name is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Lookup instantiates a rule-set by the numeric id found in save files.
// It satisfies engine.Lookup.
func Lookup(gameID int) (engine.Variant, bool) {
	mu.RLock()
	defer mu.RUnlock()

	id, ok := byGameID[gameID]
	if !ok {
		return nil, false
	}
	return factories[id](), true
}

// Name returns the short name for a numeric id.
func Name(gameID int) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	id, ok := byGameID[gameID]
	return id, ok
}
