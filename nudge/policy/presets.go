package policy

import (
	"fmt"
	"sort"
	"strings"
)

var presets = map[string]Rule{
	"annoying":   {AlertType: OptionAlert, Frequency: Immediately},
	"critical":   {AlertType: ForceAlert, Frequency: Immediately},
	"default":    {AlertType: SkipAlert, Frequency: Immediately},
	"hinting":    {AlertType: OptionAlert, Frequency: Weekly},
	"persistent": {AlertType: OptionAlert, Frequency: Daily},
	"relaxed":    {AlertType: SkipAlert, Frequency: Weekly},
}

// Preset returns the named rule preset.
func Preset(name string) (Rule, error) {
	rule, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Rule{}, fmt.Errorf("unknown rule preset %q (options=%v)", name, PresetNames())
	}
	return rule, nil
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
