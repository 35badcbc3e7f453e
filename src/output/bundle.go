package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sofmeright/stagepack/src/bundle"
)

// SectionRules renders the loader rules, one block per rule.
func SectionRules(sec *Section, rules []bundle.Rule, color bool) {
	for i, r := range rules {
		if i > 0 {
			sec.Separator()
		}
		sec.Row("%-10s %s", paint(color, colorCyan, r.Test), strings.Join(r.Loaders(), " → "))
		if len(r.Include) > 0 {
			sec.Row("  %s", Dimmed("include "+strings.Join(r.Include, ", "), color))
		}
		if len(r.Exclude) > 0 {
			sec.Row("  %s", Dimmed("exclude "+strings.Join(r.Exclude, ", "), color))
		}
	}
}

// SectionPlugins renders the plugin list in order with the module each one
// is constructed from.
func SectionPlugins(sec *Section, plugins []bundle.Plugin, color bool) {
	for i, p := range plugins {
		src, ok := bundle.SourceOf(p.Kind)
		from := paint(color, colorRed, "unknown plugin")
		if ok {
			from = src.Module
			if src.Constructor != "" {
				from += "." + src.Constructor
			}
		}
		sec.Row("%2d  %-28s %s", i+1, string(p.Kind), Dimmed(from, color))
	}
}

// SectionSettings renders a flat key/value mapping sorted by key.
func SectionSettings(sec *Section, settings map[string]any) {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sec.Row("%-20s %v", k, settings[k])
	}
}

// SectionWarnings renders warnings, or a single ok row when there are none.
func SectionWarnings(sec *Section, warnings []string, color bool) {
	if len(warnings) == 0 {
		sec.Row("%s no warnings", StatusIcon("success", color))
		return
	}
	for _, w := range warnings {
		sec.Row("%s %s", paint(color, colorYellow, "warn"), w)
	}
}

// Count formats n with a singular or plural noun.
func Count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
