// ABOUTME: Policies for height transitions that overlap with new scroll decisions
// ABOUTME: Parses the policy names used in the config file

package header

import "fmt"

// Policy controls what happens to an in-flight transition when a new decision arrives
type Policy int

const (
	// PolicyCancel drops in-flight transitions when a new height change is applied
	PolicyCancel Policy = iota
	// PolicyOverlap never cancels; every completion commits its own target
	PolicyOverlap
)

func (p Policy) String() string {
	switch p {
	case PolicyCancel:
		return "cancel"
	case PolicyOverlap:
		return "overlap"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a config value to a Policy. Empty selects PolicyCancel.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "cancel":
		return PolicyCancel, nil
	case "overlap":
		return PolicyOverlap, nil
	default:
		return PolicyCancel, fmt.Errorf("unknown transition policy %q (want \"cancel\" or \"overlap\")", name)
	}
}
