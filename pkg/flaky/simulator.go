package flaky

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"retrykit/pkg/logger"
)

// Failure kinds produced by the simulator, matchable with errors.Is.
var (
	ErrConnection = errors.New("connection timeout")
	ErrTimeout    = errors.New("connection pool exhausted")
	ErrPersistent = errors.New("persistent failure")
)

// Response is the payload of a successful simulated network call.
type Response struct {
	Status  string
	Data    string
	Attempt int
}

// Row is a single result of a simulated database query.
type Row struct {
	ID      int
	Query   string
	Attempt int
}

// Simulator produces failure modes common in production systems: transient
// connection errors that clear after a few calls, slow queries that time out,
// and failures that never recover.
//
// Failures are random per failureRate but bounded: a network call always
// succeeds from the third call on, a query from the second. With a failure
// rate of 1.0 the sequence is fully deterministic.
type Simulator struct {
	failureRate float64
	latency     time.Duration
	calls       int
	rng         *rand.Rand
	log         logger.Logger
}

// NewSimulator creates a simulator failing with the given probability.
// latency is the simulated I/O time added to every call, zero for none.
func NewSimulator(log logger.Logger, failureRate float64, latency time.Duration) *Simulator {
	return &Simulator{
		failureRate: failureRate,
		latency:     latency,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		log:         log.WithComponent("flaky"),
	}
}

// NetworkCall simulates a network request that fails transiently.
func (s *Simulator) NetworkCall(data string) (*Response, error) {
	s.calls++
	s.sleep()

	if s.calls < 3 && s.rng.Float64() < s.failureRate {
		s.log.Debug("simulating connection failure", map[string]interface{}{
			"call": s.calls,
		})
		return nil, fmt.Errorf("%w (call %d)", ErrConnection, s.calls)
	}

	return &Response{
		Status:  "success",
		Data:    data,
		Attempt: s.calls,
	}, nil
}

// DatabaseQuery simulates a query that occasionally times out.
func (s *Simulator) DatabaseQuery(query string) ([]Row, error) {
	s.calls++
	s.sleep()

	if s.calls < 2 && s.rng.Float64() < s.failureRate {
		s.log.Debug("simulating query timeout", map[string]interface{}{
			"call": s.calls,
		})
		return nil, fmt.Errorf("%w (call %d)", ErrTimeout, s.calls)
	}

	return []Row{{ID: 1, Query: query, Attempt: s.calls}}, nil
}

// AlwaysFails never recovers, for exercising retry exhaustion.
func (s *Simulator) AlwaysFails() error {
	s.calls++
	return fmt.Errorf("%w (call %d)", ErrPersistent, s.calls)
}

// CallCount returns how many times any operation has been invoked.
func (s *Simulator) CallCount() int {
	return s.calls
}

// Reset zeroes the call counter so failure sequences start over.
func (s *Simulator) Reset() {
	s.calls = 0
}

func (s *Simulator) sleep() {
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
}
