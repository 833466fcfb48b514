package asset

import (
	"fmt"
	"sort"
	"strings"
)

// registry tracks the asset types the plugin can resolve
type registry map[string]Type

var (
	defaultRegistry = make(registry)
)

// RegisteredTypes returns a sorted list of all registered asset type names.
func RegisteredTypes() []string {
	names := make([]string, 0, len(defaultRegistry))
	for name := range defaultRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func GetType(name string) (Type, bool) {
	t, ok := defaultRegistry[name]
	return t, ok
}

// RegisterType registers an asset type under its name.
// Note: this is NOT thread safe, and should only be called in init()
func RegisterType(t Type) error {
	if _, ok := defaultRegistry[t.Name()]; ok {
		return fmt.Errorf("failed to register asset type %q: other type already registered", t.Name())
	}

	defaultRegistry[t.Name()] = t

	return nil
}

// TypeForComposerName returns the asset type owning a host package name
// such as "npm-asset/jquery".
func TypeForComposerName(composerName string) (Type, bool) {
	for _, t := range defaultRegistry {
		if strings.HasPrefix(composerName, t.ComposerVendorName()+"/") {
			return t, true
		}
	}
	return nil, false
}
