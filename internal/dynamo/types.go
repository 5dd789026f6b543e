package dynamo

import "fmt"

// Config controls a batch simulation run. Dt and Duration are in seconds.
type Config struct {
	Dt            float64
	Duration      float64
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            86400,
		Duration:      365 * 86400,
		SampleEvery:   1,
		ValidateState: true,
	}
}

// Steps is the number of whole steps that fit in Duration.
func (c Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(c.Duration / c.Dt)
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrParameterBounds, c.Duration)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrParameterBounds, c.SampleEvery)
	}
	return nil
}

// SimError is a non-fatal record of something that went wrong during a run.
type SimError struct {
	Time    float64
	Step    int
	Message string
	Err     error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return e.Err }
