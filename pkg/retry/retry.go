package retry

import (
	"context"
	"errors"
	"time"

	"retrykit/pkg/logger"
)

// Config configuration for retrying operations
type Config struct {
	// MaxAttempts is the total number of executions allowed, including the first.
	MaxAttempts int

	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration

	// BackoffMultiplier is applied to the delay after each failed attempt.
	BackoffMultiplier float64

	// RetryOn lists the error kinds eligible for retry, matched with errors.Is.
	RetryOn []error

	// RetryIf, when set, additionally marks errors it accepts as retryable.
	RetryIf func(error) bool

	// LogEnabled controls whether attempt and outcome events are logged.
	LogEnabled bool
}

// DefaultConfig returns the default retry configuration: three attempts,
// one second initial delay doubling after each failure, any error retryable.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		InitialDelay:      time.Second,
		BackoffMultiplier: 2.0,
		RetryIf:           func(error) bool { return true },
		LogEnabled:        true,
	}
}

// Policy wraps operations with retry and exponential backoff behavior.
//
// Attempts for a single call run strictly sequentially. Only errors the
// configuration classifies as retryable are ever suppressed; the final
// failure is always returned to the caller unchanged.
type Policy struct {
	cfg     Config
	log     logger.Logger
	metrics *Metrics
}

// New creates a policy recording into the shared default metrics.
// MaxAttempts below 1 is clamped to 1, BackoffMultiplier below 1 to 1.
func New(log logger.Logger, cfg Config) *Policy {
	return NewWithMetrics(log, cfg, Default())
}

// NewWithMetrics creates a policy recording into a caller-provided metrics
// instance, for callers that need isolated accounting.
func NewWithMetrics(log logger.Logger, cfg Config, m *Metrics) *Policy {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.BackoffMultiplier < 1 {
		cfg.BackoffMultiplier = 1
	}
	return &Policy{
		cfg:     cfg,
		log:     log.WithComponent("retry"),
		metrics: m,
	}
}

// Config returns the effective configuration after clamping.
func (p *Policy) Config() Config {
	return p.cfg
}

func (p *Policy) retryable(err error) bool {
	if p.cfg.RetryIf != nil && p.cfg.RetryIf(err) {
		return true
	}
	for _, kind := range p.cfg.RetryOn {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Run executes an error-only operation under the policy.
func (p *Policy) Run(ctx context.Context, op func() error) error {
	_, err := Do(ctx, p, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}

// Do executes op under the policy until it succeeds, a non-retryable error
// occurs, the attempt budget is exhausted, or ctx is cancelled.
//
// Retryable failures are retried after a delay that starts at InitialDelay
// and grows by BackoffMultiplier after every failed attempt. The delay is
// never reset within a single call. On exhaustion or a non-retryable failure
// the operation's own error is returned, never a wrapped substitute;
// cancellation returns ctx.Err().
func Do[T any](ctx context.Context, p *Policy, op func() (T, error)) (T, error) {
	var zero T

	p.metrics.recordCall()
	delay := p.cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op()
		if err == nil {
			if attempt > 1 {
				p.metrics.recordSuccessAfterRetry()
				if p.cfg.LogEnabled {
					p.log.Info("operation succeeded after retry", map[string]interface{}{
						"attempt":      attempt,
						"max_attempts": p.cfg.MaxAttempts,
					})
				}
			}
			return result, nil
		}

		if !p.retryable(err) {
			// Not ours to handle, propagate untouched
			return zero, err
		}

		if attempt == p.cfg.MaxAttempts {
			if p.cfg.LogEnabled {
				p.log.Error("giving up after exhausting attempts", err, map[string]interface{}{
					"attempts": p.cfg.MaxAttempts,
				})
			}
			return zero, err
		}

		p.metrics.recordRetry()
		if p.cfg.LogEnabled {
			p.log.Warn("attempt failed, retrying", err, map[string]interface{}{
				"attempt":      attempt,
				"max_attempts": p.cfg.MaxAttempts,
				"delay":        delay.String(),
			})
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * p.cfg.BackoffMultiplier)
	}
}
