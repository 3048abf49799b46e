package usage

import "fmt"

// Limit presets. Two sets of caps were in use for the same feature; both are
// kept so the deployment picks one explicitly.
const (
	PresetStandard = "standard"
	PresetExtended = "extended"
)

var presets = map[string]Limits{
	PresetStandard: {Guest: 5, User: 10},
	PresetExtended: {Guest: 15, User: 50},
}

// Limits holds the daily cap for each identity class.
type Limits struct {
	Guest int
	User  int
}

// NewLimits resolves a preset and applies positive overrides on top of it.
func NewLimits(preset string, guestOverride, userOverride int) (Limits, error) {
	if preset == "" {
		preset = PresetStandard
	}
	limits, ok := presets[preset]
	if !ok {
		return Limits{}, fmt.Errorf("unknown usage limit preset %q", preset)
	}
	if guestOverride > 0 {
		limits.Guest = guestOverride
	}
	if userOverride > 0 {
		limits.User = userOverride
	}
	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}
	return limits, nil
}

// PresetLimits returns the caps for a named preset.
func PresetLimits(preset string) (Limits, bool) {
	limits, ok := presets[preset]
	return limits, ok
}

func (l Limits) Validate() error {
	if l.Guest <= 0 || l.User <= 0 {
		return fmt.Errorf("%w: guest=%d user=%d", ErrInvalidLimit, l.Guest, l.User)
	}
	return nil
}

// CapFor returns the cap that applies to the identity class.
func (l Limits) CapFor(typ IdentityType) int {
	if typ == IdentityTypeUser {
		return l.User
	}
	return l.Guest
}
