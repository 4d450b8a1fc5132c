package interp

import "maps"

// DefaultActions binds menu actions to their stock keyboard shortcuts
var DefaultActions = map[string]string{
	"image-new":   "ctrl+n",
	"file-open":   "ctrl+o",
	"image-close": "ctrl+w",
	"edit-undo":   "ctrl+z",
	"edit-redo":   "ctrl+y",
	"select-all":  "ctrl+a",
	"select-none": "ctrl+shift+a",
}

// DefaultToolbox binds toolbox items to their stock keyboard shortcuts
var DefaultToolbox = map[string]string{
	"crop":           "shift+c",
	"rect-select":    "r",
	"ellipse-select": "e",
	"move":           "m",
	"text":           "t",
	"zoom":           "z",
	"paintbrush":     "p",
	"eraser":         "shift+e",
	"bucket-fill":    "shift+b",
	"gradient":       "g",
}

// mergeShortcuts returns defaults overlaid with overrides; an empty override removes a binding
func mergeShortcuts(defaults, overrides map[string]string) map[string]string {
	merged := maps.Clone(defaults)
	if merged == nil {
		merged = make(map[string]string)
	}
	for name, combo := range overrides {
		if combo == "" {
			delete(merged, name)
			continue
		}
		merged[name] = combo
	}
	return merged
}
