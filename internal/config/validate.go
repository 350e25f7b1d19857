package config

import (
	"fmt"
	"sort"
	"strings"
)

// BuildConfigError reports keys that differ between a user build and the
// reference dummy build for its archetype.
type BuildConfigError struct {
	Category string
	Missing  []string
	Extra    []string
}

func (e *BuildConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing keys %v", e.Missing))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unrecognized keys %v", e.Extra))
	}
	return fmt.Sprintf("invalid build config in %q: %s", e.Category, strings.Join(parts, ", "))
}

// Validate diffs the build against the dummy build for its archetype.
// Every recognized key must be present and no extra keys are allowed, so
// the simulation core can use unchecked map access.
func (c *BuildConfig) Validate() error {
	dummy, err := DummyBuild(c.Meta.Hunter)
	if err != nil {
		return err
	}

	categories := []struct {
		name        string
		got, want   map[string]int
		gotB, wantB map[string]bool
	}{
		{name: "stats", got: c.Stats, want: dummy.Stats},
		{name: "talents", got: c.Talents, want: dummy.Talents},
		{name: "attributes", got: c.Attributes, want: dummy.Attributes},
		{name: "inscriptions", got: c.Inscriptions, want: dummy.Inscriptions},
		{name: "relics", got: c.Relics, want: dummy.Relics},
		{name: "gems", got: c.Gems, want: dummy.Gems},
		{name: "mods", gotB: c.Mods, wantB: dummy.Mods},
	}

	for _, cat := range categories {
		var missing, extra []string
		if cat.gotB != nil || cat.wantB != nil {
			missing, extra = diffKeys(boolKeys(cat.gotB), boolKeys(cat.wantB))
		} else {
			missing, extra = diffKeys(intKeys(cat.got), intKeys(cat.want))
		}
		if len(missing) > 0 || len(extra) > 0 {
			return &BuildConfigError{Category: cat.name, Missing: missing, Extra: extra}
		}
	}
	return nil
}

func diffKeys(got, want []string) (missing, extra []string) {
	gotSet := make(map[string]bool, len(got))
	for _, k := range got {
		gotSet[k] = true
	}
	wantSet := make(map[string]bool, len(want))
	for _, k := range want {
		wantSet[k] = true
		if !gotSet[k] {
			missing = append(missing, k)
		}
	}
	for _, k := range got {
		if !wantSet[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

func intKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func boolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
