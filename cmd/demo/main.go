package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retrykit/pkg/config"
	"retrykit/pkg/flaky"
	"retrykit/pkg/logger"
	"retrykit/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	log := logger.NewLogger(logger.Config{
		Level:  cfg.Logger.Level,
		Pretty: cfg.Logger.Pretty,
	})
	log = log.WithComponent("demo")

	if err != nil {
		log.Fatal("failed to load config", err, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Signal processing
	go func() {
		sig := <-sigChan
		log.Info("received signal", map[string]interface{}{
			"signal": sig.String(),
		})
		cancel()
	}()

	runBasicRetry(ctx, cfg, log)
	runMetricsDemo(ctx, cfg, log)
	runExhaustionDemo(ctx, cfg, log)
}

// runBasicRetry calls a flaky endpoint until it recovers
func runBasicRetry(ctx context.Context, cfg *config.Config, log logger.Logger) {
	log.Info("demo: basic retry with exponential backoff", nil)

	sim := flaky.NewSimulator(log, cfg.Demo.FailureRate, cfg.Demo.Latency)
	policy := retry.New(log, retry.Config{
		MaxAttempts:       cfg.Retry.MaxAttempts,
		InitialDelay:      cfg.Retry.InitialDelay,
		BackoffMultiplier: cfg.Retry.BackoffMultiplier,
		RetryOn:           []error{flaky.ErrConnection},
		LogEnabled:        cfg.Retry.LogEnabled,
	})

	start := time.Now()
	resp, err := retry.Do(ctx, policy, func() (*flaky.Response, error) {
		return sim.NetworkCall("user_data")
	})
	if err != nil {
		log.Error("flaky call did not recover", err, nil)
		return
	}

	log.Info("flaky call recovered", map[string]interface{}{
		"data":     resp.Data,
		"attempt":  resp.Attempt,
		"duration": time.Since(start).String(),
	})
}

// runMetricsDemo drives mixed stable and flaky traffic and reports the counters
func runMetricsDemo(ctx context.Context, cfg *config.Config, log logger.Logger) {
	log.Info("demo: retry metrics tracking", nil)

	retry.ResetMetrics()

	stableSim := flaky.NewSimulator(log, 0, cfg.Demo.Latency)
	flakySim := flaky.NewSimulator(log, cfg.Demo.FailureRate, cfg.Demo.Latency)

	policyCfg := retry.Config{
		MaxAttempts:       cfg.Retry.MaxAttempts,
		InitialDelay:      100 * time.Millisecond,
		BackoffMultiplier: cfg.Retry.BackoffMultiplier,
		RetryOn:           []error{flaky.ErrConnection},
		LogEnabled:        cfg.Retry.LogEnabled,
	}
	stable := retry.New(log, policyCfg)
	unstable := retry.New(log, policyCfg)

	for i := 0; i < cfg.Demo.StableCalls; i++ {
		if _, err := retry.Do(ctx, stable, func() (*flaky.Response, error) {
			return stableSim.NetworkCall("stable")
		}); err != nil {
			log.Error("stable call failed", err, nil)
		}
		stableSim.Reset()
	}

	for i := 0; i < cfg.Demo.FlakyCalls; i++ {
		if _, err := retry.Do(ctx, unstable, func() (*flaky.Response, error) {
			return flakySim.NetworkCall("flaky")
		}); err != nil {
			log.Error("flaky call failed", err, nil)
		}
		flakySim.Reset()
	}

	stats := retry.GetMetrics()
	log.Info("retry metrics", map[string]interface{}{
		"total_calls":              stats.TotalCalls,
		"retries_performed":        stats.RetriesPerformed,
		"successes_after_retry":    stats.SuccessesAfterRetry,
		"retry_rate":               stats.RetryRate,
		"success_after_retry_rate": stats.SuccessAfterRetryRate,
		"avg_retries_per_call":     stats.AvgRetriesPerCall,
	})
}

// runExhaustionDemo shows the policy giving up on a failure that never clears
func runExhaustionDemo(ctx context.Context, cfg *config.Config, log logger.Logger) {
	log.Info("demo: giving up after max attempts", nil)

	sim := flaky.NewSimulator(log, 0, 0)
	policy := retry.New(log, retry.Config{
		MaxAttempts:       cfg.Retry.MaxAttempts,
		InitialDelay:      200 * time.Millisecond,
		BackoffMultiplier: cfg.Retry.BackoffMultiplier,
		RetryOn:           []error{flaky.ErrPersistent},
		LogEnabled:        cfg.Retry.LogEnabled,
	})

	err := policy.Run(ctx, sim.AlwaysFails)
	log.Info("persistent failure surfaced to caller", map[string]interface{}{
		"error":      err.Error(),
		"call_count": sim.CallCount(),
	})
}
