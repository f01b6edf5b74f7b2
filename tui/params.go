// ABOUTME: Parameter manager for live scroll physics tuning
// ABOUTME: Handles parameter value adjustments with boundary checking

package tui

import "accordion-pager/config"

// Parameter names shown in the tuning panel
const (
	paramWheelStep        = "Wheel Step (pt)"
	paramPointsPerLine    = "Points Per Line"
	paramReleaseDelay     = "Release Delay (ms)"
	paramFrame            = "Frame (ms)"
	paramDecelerationRate = "Deceleration Rate"
	paramMinFling         = "Min Fling (pt/s)"
	paramFlingVelocity    = "Fling Velocity (pt/s)"
	paramBounceResistance = "Bounce Resistance"
)

// floatTolerance absorbs accumulated step error at the bounds
const floatTolerance = 0.0001

// Parameter represents a tunable gesture parameter with constraints
type Parameter struct {
	Name      string
	Value     *float64 // Pointer to actual config field
	IntValue  *int     // For integer parameters
	Min       float64
	Max       float64
	Step      float64
	IsInt     bool
	Precision int // Decimal places shown for float values
}

// gestureParams builds the tuning panel entries pointing into g
func gestureParams(g *config.GestureConfig) []Parameter {
	return []Parameter{
		{Name: paramWheelStep, Value: &g.WheelStep, Min: 1, Max: 50, Step: 1, Precision: 0},
		{Name: paramPointsPerLine, Value: &g.PointsPerLine, Min: 2, Max: 25, Step: 1, Precision: 0},
		{Name: paramReleaseDelay, IntValue: &g.ReleaseDelayMS, Min: 40, Max: 500, Step: 10, IsInt: true},
		{Name: paramFrame, IntValue: &g.FrameMS, Min: 8, Max: 50, Step: 1, IsInt: true},
		{Name: paramDecelerationRate, Value: &g.DecelerationRate, Min: 0.95, Max: 0.999, Step: 0.001, Precision: 3},
		{Name: paramMinFling, Value: &g.MinFlingVelocity, Min: 0, Max: 500, Step: 10, Precision: 0},
		{Name: paramFlingVelocity, Value: &g.FlingVelocity, Min: 500, Max: 6000, Step: 100, Precision: 0},
		{Name: paramBounceResistance, Value: &g.BounceResistance, Min: 0, Max: 1, Step: 0.05, Precision: 2},
	}
}

// ParamManager manages gesture parameter adjustments
type ParamManager struct {
	params        []Parameter
	selectedIndex int
}

// NewParamManager creates a new parameter manager
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{
		params:        params,
		selectedIndex: 0,
	}
}

// Selected returns the index of the currently selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selectedIndex
}

// SetSelected sets the selected parameter index
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selectedIndex = index
	}
}

// SelectNext moves selection to the next parameter
func (pm *ParamManager) SelectNext() {
	if pm.selectedIndex < len(pm.params)-1 {
		pm.selectedIndex++
	}
}

// SelectPrevious moves selection to the previous parameter
func (pm *ParamManager) SelectPrevious() {
	if pm.selectedIndex > 0 {
		pm.selectedIndex--
	}
}

// Increase increases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Increase() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	if param.IsInt {
		newVal := *param.IntValue + int(param.Step)
		if float64(newVal) <= param.Max {
			*param.IntValue = newVal
			return true
		}

		return false
	}

	newVal := *param.Value + param.Step
	// Clamp to max if we're very close (handles floating point precision)
	if newVal > param.Max && newVal <= param.Max+floatTolerance {
		newVal = param.Max
	}

	if newVal <= param.Max {
		*param.Value = newVal
		return true
	}

	return false
}

// Decrease decreases the selected parameter value
// Returns true if the value was changed
func (pm *ParamManager) Decrease() bool {
	param := pm.GetSelected()
	if param == nil {
		return false
	}

	if param.IsInt {
		newVal := *param.IntValue - int(param.Step)
		if float64(newVal) >= param.Min {
			*param.IntValue = newVal
			return true
		}

		return false
	}

	newVal := *param.Value - param.Step
	if newVal < param.Min && newVal >= param.Min-floatTolerance {
		newVal = param.Min
	}

	if newVal >= param.Min {
		*param.Value = newVal
		return true
	}

	return false
}

// ResetToDefaults resets all parameters to their default values
// Uses name-based lookup to avoid fragile array indexing
func (pm *ParamManager) ResetToDefaults(defaults config.GestureConfig) {
	for i := range pm.params {
		p := &pm.params[i]
		switch p.Name {
		case paramWheelStep:
			*p.Value = defaults.WheelStep
		case paramPointsPerLine:
			*p.Value = defaults.PointsPerLine
		case paramReleaseDelay:
			*p.IntValue = defaults.ReleaseDelayMS
		case paramFrame:
			*p.IntValue = defaults.FrameMS
		case paramDecelerationRate:
			*p.Value = defaults.DecelerationRate
		case paramMinFling:
			*p.Value = defaults.MinFlingVelocity
		case paramFlingVelocity:
			*p.Value = defaults.FlingVelocity
		case paramBounceResistance:
			*p.Value = defaults.BounceResistance
		}
	}
}

// Get returns the parameter at the given index
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}
	return nil
}

// GetSelected returns the currently selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selectedIndex)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns all parameters (for rendering)
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
