package filter

import (
	"fmt"
	"sort"
	"strings"
)

// Operation names a single filter step.
type Operation string

// Supported operations.
const (
	OpBrightness Operation = "brightness"
	OpContrast   Operation = "contrast"
	OpSaturation Operation = "saturation"
	OpWarmth     Operation = "warmth"
	OpSharpness  Operation = "sharpness"
	OpBlur       Operation = "blur"
)

// Operations lists every operation a Step can carry, in display order.
func Operations() []Operation {
	return []Operation{OpBrightness, OpContrast, OpSaturation, OpWarmth, OpSharpness, OpBlur}
}

// Step is one operation with its parameter. For OpBlur the parameter is the
// kernel radius; for every other operation it is a factor.
type Step struct {
	Op    Operation `json:"op"`
	Param float64   `json:"param"`
}

// Apply runs the step on img.
func (s Step) Apply(img *Raster) (*Raster, error) {
	switch s.Op {
	case OpBrightness:
		return AdjustBrightness(img, s.Param)
	case OpContrast:
		return AdjustContrast(img, s.Param)
	case OpSaturation:
		return AdjustSaturation(img, s.Param)
	case OpWarmth:
		return AdjustWarmth(img, s.Param)
	case OpSharpness:
		return AdjustSharpness(img, s.Param)
	case OpBlur:
		radius := int(s.Param)
		if float64(radius) != s.Param {
			return nil, fmt.Errorf("%w: blur radius must be an integer, got %v", ErrInvalidParameter, s.Param)
		}
		return ApplyBlur(img, radius)
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidParameter, s.Op)
	}
}

// String formats the step as "op*param".
func (s Step) String() string {
	return fmt.Sprintf("%s*%.2f", s.Op, s.Param)
}

// Preset is a named, ordered chain of steps. Presets are values and the
// built-in table is never modified after init.
type Preset struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Identity is the preset used for unrecognized expressions. It has no steps.
var Identity = Preset{Name: "identity"}

// Built-in expressions.
const (
	Happy      = "happy"
	Sad        = "sad"
	Surprised  = "surprised"
	Excited    = "excited"
	Determined = "determined"
)

var presets = map[string]Preset{
	Happy: {Name: Happy, Steps: []Step{
		{OpBrightness, 1.10},
		{OpSaturation, 1.20},
		{OpWarmth, 1.10},
	}},
	Sad: {Name: Sad, Steps: []Step{
		{OpBrightness, 0.90},
		{OpSaturation, 0.80},
		{OpWarmth, 0.90},
	}},
	Surprised: {Name: Surprised, Steps: []Step{
		{OpBrightness, 1.20},
		{OpContrast, 1.30},
		{OpSaturation, 1.10},
	}},
	Excited: {Name: Excited, Steps: []Step{
		{OpBrightness, 1.15},
		{OpSaturation, 1.40},
		{OpContrast, 1.20},
	}},
	Determined: {Name: Determined, Steps: []Step{
		{OpContrast, 1.25},
		{OpSharpness, 1.10},
	}},
}

// normalizeExpression folds an expression name to its lookup form.
func normalizeExpression(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve returns the preset for an expression name. Matching ignores case
// and surrounding whitespace. Unknown names resolve to Identity.
func Resolve(name string) Preset {
	if p, ok := presets[normalizeExpression(name)]; ok {
		return p
	}
	return Identity
}

// IsKnownExpression reports whether name matches a built-in preset.
func IsKnownExpression(name string) bool {
	_, ok := presets[normalizeExpression(name)]
	return ok
}

// Expressions returns the built-in expression names sorted alphabetically.
func Expressions() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets returns a copy of every built-in preset, sorted by name.
func Presets() []Preset {
	names := Expressions()
	out := make([]Preset, 0, len(names))
	for _, name := range names {
		p := presets[name]
		steps := make([]Step, len(p.Steps))
		copy(steps, p.Steps)
		out = append(out, Preset{Name: p.Name, Steps: steps})
	}
	return out
}

// IsIdentity reports whether the preset performs no steps.
func (p Preset) IsIdentity() bool {
	return len(p.Steps) == 0
}

// Run applies the steps in order, each one consuming the previous result.
// The input is never modified; a preset without steps returns a copy of it.
func (p Preset) Run(img *Raster) (*Raster, error) {
	if err := checkRaster(img); err != nil {
		return nil, err
	}
	if p.IsIdentity() {
		return img.Clone(), nil
	}

	out := img
	for i, step := range p.Steps {
		next, err := step.Apply(out)
		if err != nil {
			return nil, fmt.Errorf("preset %s step %d (%s): %w", p.Name, i+1, step.Op, err)
		}
		out = next
	}
	return out, nil
}
