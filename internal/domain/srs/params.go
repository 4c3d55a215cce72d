package srs

// Params defines all configurable parameters for the review scheduler.
type Params struct {
	// MinIntervalDays is the floor for any computed interval. An interval
	// can never drop below this value, whatever the rating.
	MinIntervalDays int

	// HardMultiplier scales the current interval on a "hard" rating.
	// The result is truncated toward zero before the floor is applied.
	HardMultiplier float64

	// OkIncrementDays is added to the current interval on an "ok" rating.
	OkIncrementDays int

	// EasyMultiplier scales the current interval on an "easy" rating.
	// Like HardMultiplier, the result is truncated toward zero.
	EasyMultiplier float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	MinIntervalDays int
	HardMultiplier  float64
	OkIncrementDays int
	EasyMultiplier  float64
}

// NewDefaultParams creates a new Params instance with default values.
//
// The defaults implement the standard growth policy:
//   - hard: interval * 1.2, floored at 1 day
//   - ok:   interval + 1
//   - easy: interval * 2
func NewDefaultParams() *Params {
	return &Params{
		MinIntervalDays: 1,
		HardMultiplier:  1.2,
		OkIncrementDays: 1,
		EasyMultiplier:  2,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Unset (zero) fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinIntervalDays > 0 {
		params.MinIntervalDays = config.MinIntervalDays
	}
	if config.HardMultiplier > 0 {
		params.HardMultiplier = config.HardMultiplier
	}
	if config.OkIncrementDays > 0 {
		params.OkIncrementDays = config.OkIncrementDays
	}
	if config.EasyMultiplier > 0 {
		params.EasyMultiplier = config.EasyMultiplier
	}

	return params
}
