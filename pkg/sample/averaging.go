package sample

import (
	"fmt"
	"log"
)

// collect performs the reads and sums the successful ones. A single read
// returns its own error, otherwise failures are skipped as long as one read
// succeeds.
func collect(s Sampler, read func() (float64, error)) (float64, int, error) {
	n := s.Samples
	if n <= 1 {
		v, err := read()
		if err != nil {
			return 0, 0, err
		}
		return v, 1, nil
	}

	var (
		sum     float64
		ok      int
		lastErr error
	)
	for i := range n {
		v, err := read()
		if err != nil {
			lastErr = err
			log.Printf("Discarding sample %d/%d: %v", i+1, n, err)
		} else {
			sum += v
			ok++
		}
		if i < n-1 {
			s.sleep(s.Delay)
		}
	}

	if ok == 0 {
		return 0, 0, fmt.Errorf("%w: all %d reads failed: %w", ErrNoSamples, n, lastErr)
	}
	return sum, ok, nil
}
