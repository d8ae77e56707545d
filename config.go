package epicycles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
)

// Configuration keys understood by ConfigFrom.
const (
	KeyNumSamples      = "num_samples"
	KeyEnergyThreshold = "energy_threshold"
	KeyMinEpicycles    = "min_epicycles"
	KeyMaxEpicycles    = "max_epicycles"
	KeyScaleFactor     = "scale_factor"
	KeyNormalize       = "normalize"
	KeyOrder           = "order"
	KeyOpenPaths       = "open_paths"
)

// Order determines the order in which selected terms are chained for
// rendering.
type Order int

const (
	// ByFrequency orders terms by descending |frequency|, positive first on ties.
	ByFrequency Order = iota
	// ByMagnitude keeps the energy ranking order, largest circle first.
	ByMagnitude
)

func (o Order) String() string {
	switch o {
	case ByFrequency:
		return "frequency"
	case ByMagnitude:
		return "magnitude"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// ParseOrder maps "frequency" or "magnitude" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "frequency", "":
		return ByFrequency, nil
	case "magnitude":
		return ByMagnitude, nil
	}
	return ByFrequency, Misconfigured(KeyOrder, s, "expected 'frequency' or 'magnitude'")
}

// OpenPathPolicy tells the sampler what to do with a path whose end point
// does not meet its start point.
type OpenPathPolicy int

const (
	// OpenPeriodic samples the path as is; the transform treats the jump
	// from end to start as part of the periodic signal.
	OpenPeriodic OpenPathPolicy = iota
	// OpenClose appends a straight segment from end to start.
	OpenClose
	// OpenReject fails with an InvalidPathError.
	OpenReject
)

func (p OpenPathPolicy) String() string {
	switch p {
	case OpenPeriodic:
		return "periodic"
	case OpenClose:
		return "close"
	case OpenReject:
		return "reject"
	}
	return fmt.Sprintf("OpenPathPolicy(%d)", int(p))
}

// ParseOpenPathPolicy maps "periodic", "close" or "reject" to a policy.
func ParseOpenPathPolicy(s string) (OpenPathPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "periodic", "":
		return OpenPeriodic, nil
	case "close":
		return OpenClose, nil
	case "reject":
		return OpenReject, nil
	}
	return OpenPeriodic, Misconfigured(KeyOpenPaths, s, "expected 'periodic', 'close' or 'reject'")
}

// Config holds the parameters of one decomposition run. Values are passed
// explicitly to each stage; there is no package level configuration.
type Config struct {
	NumSamples      int            // number of arc-length samples N
	EnergyThreshold float64        // fraction of total energy to retain, in (0,1]
	MinEpicycles    int            // lower bound for the number of terms
	MaxEpicycles    int            // upper bound for the number of terms
	ScaleFactor     float64        // scale applied at sampling time
	Normalize       bool           // center and normalize extent before scaling
	Order           Order          // chaining order of selected terms
	OpenPaths       OpenPathPolicy // handling of open contours
}

// DefaultConfig returns the standard parameter set.
func DefaultConfig() Config {
	return Config{
		NumSamples:      5000,
		EnergyThreshold: 0.999,
		MinEpicycles:    100,
		MaxEpicycles:    2000,
		ScaleFactor:     8.0,
		Normalize:       true,
		Order:           ByFrequency,
		OpenPaths:       OpenPeriodic,
	}
}

// Validate checks every parameter against its domain and returns a
// ConfigurationError for the first violation found.
func (c Config) Validate() error {
	if c.NumSamples < 2 {
		return Misconfigured(KeyNumSamples, c.NumSamples, "need at least 2 samples")
	}
	if math.IsNaN(c.EnergyThreshold) || c.EnergyThreshold <= 0 || c.EnergyThreshold > 1 {
		return Misconfigured(KeyEnergyThreshold, c.EnergyThreshold, "must lie in (0,1]")
	}
	if c.MaxEpicycles < 1 {
		return Misconfigured(KeyMaxEpicycles, c.MaxEpicycles, "must be at least 1")
	}
	if c.MinEpicycles < 1 {
		return Misconfigured(KeyMinEpicycles, c.MinEpicycles, "must be at least 1")
	}
	if c.MinEpicycles > c.MaxEpicycles {
		return Misconfigured(KeyMinEpicycles, c.MinEpicycles,
			fmt.Sprintf("exceeds %s = %d", KeyMaxEpicycles, c.MaxEpicycles))
	}
	if !IsFinite(c.ScaleFactor) || c.ScaleFactor <= 0 {
		return Misconfigured(KeyScaleFactor, c.ScaleFactor, "must be a positive finite number")
	}
	if c.Order != ByFrequency && c.Order != ByMagnitude {
		return Misconfigured(KeyOrder, c.Order, "unknown order")
	}
	if c.OpenPaths < OpenPeriodic || c.OpenPaths > OpenReject {
		return Misconfigured(KeyOpenPaths, c.OpenPaths, "unknown policy")
	}
	return nil
}

// ConfigFrom reads a Config from a schuko configuration. Keys not set in
// conf keep their default values. The result is validated.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	c := DefaultConfig()
	if conf == nil {
		return c, nil
	}
	if conf.IsSet(KeyNumSamples) {
		c.NumSamples = conf.GetInt(KeyNumSamples)
	}
	if conf.IsSet(KeyMinEpicycles) {
		c.MinEpicycles = conf.GetInt(KeyMinEpicycles)
	}
	if conf.IsSet(KeyMaxEpicycles) {
		c.MaxEpicycles = conf.GetInt(KeyMaxEpicycles)
	}
	var err error
	if c.EnergyThreshold, err = getFloat(conf, KeyEnergyThreshold, c.EnergyThreshold); err != nil {
		return c, err
	}
	if c.ScaleFactor, err = getFloat(conf, KeyScaleFactor, c.ScaleFactor); err != nil {
		return c, err
	}
	if conf.IsSet(KeyNormalize) {
		c.Normalize = conf.GetBool(KeyNormalize)
	}
	if conf.IsSet(KeyOrder) {
		if c.Order, err = ParseOrder(conf.GetString(KeyOrder)); err != nil {
			return c, err
		}
	}
	if conf.IsSet(KeyOpenPaths) {
		if c.OpenPaths, err = ParseOpenPathPolicy(conf.GetString(KeyOpenPaths)); err != nil {
			return c, err
		}
	}
	tracer().Debugf("configuration: %+v", c)
	return c, c.Validate()
}

// schuko.Configuration has no float getter, floats are read as strings.
func getFloat(conf schuko.Configuration, key string, deflt float64) (float64, error) {
	if !conf.IsSet(key) {
		return deflt, nil
	}
	s := strings.TrimSpace(conf.GetString(key))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return deflt, Misconfigured(key, s, "not a number")
	}
	return f, nil
}
