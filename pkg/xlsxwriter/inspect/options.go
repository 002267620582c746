// Package inspect reads an xlsx package back into the JSON friendly shapes
// of the models package.
package inspect

import "fmt"

// Mode represents the inspection mode.
type Mode string

const (
	// ModeLight extracts cells, dimensions and defined names only.
	ModeLight Mode = "light"
	// ModeStandard adds charts, print areas and document properties.
	ModeStandard Mode = "standard"
	// ModeVerbose adds chart sizes, cell formulas and the package part list.
	ModeVerbose Mode = "verbose"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeLight, ModeStandard, ModeVerbose:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode: %s (must be light, standard, or verbose)", s)
}

// Options configures inspection behavior.
type Options struct {
	// Mode specifies the inspection mode (light, standard, verbose).
	Mode Mode
	// IncludeFormulas specifies whether to include cell formulas.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeFormulas *bool
	// IncludePrintAreas specifies whether to include print areas.
	// If nil, defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool
}

// DefaultOptions returns default inspection options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldIncludeFormulas returns whether to include cell formulas.
func (o Options) ShouldIncludeFormulas() bool {
	if o.IncludeFormulas != nil {
		return *o.IncludeFormulas
	}
	return o.Mode == ModeVerbose
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != ModeLight
}
