package llm

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownProvider is returned by NewProvider for names nobody registered.
var ErrUnknownProvider = errors.New("unknown llm provider")

// Factory builds a provider from its own environment configuration.
type Factory func() (Provider, error)

var (
	registryMu sync.RWMutex
	factories  = map[string]Factory{}
)

// RegisterProvider makes a provider available under name. Provider packages
// call it from init, so a duplicate name is a programming error.
func RegisterProvider(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("llm: nil factory for provider " + name)
	}
	if _, dup := factories[name]; dup {
		panic("llm: provider registered twice: " + name)
	}
	factories[name] = factory
}

// NewProvider builds the provider registered under name.
func NewProvider(name string) (Provider, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownProvider, name, Names())
	}
	provider, err := factory()
	if err != nil {
		return nil, fmt.Errorf("init %s provider: %w", name, err)
	}
	return provider, nil
}

// Names lists registered providers in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unregister(name string) {
	registryMu.Lock()
	delete(factories, name)
	registryMu.Unlock()
}
