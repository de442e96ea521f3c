//go:build !tinygo

package adc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	"github.com/itohio/gontc/pkg/config"
)

const (
	// DefaultBaudRate matches the firmware UART.
	DefaultBaudRate = 115200
	// DefaultTimeout bounds how long a read waits for a fresh sample.
	DefaultTimeout = 500 * time.Millisecond
)

var _ ADC = (*Serial)(nil)

// Sample is a single averaged conversion reported by the ADC board.
type Sample struct {
	Timestamp time.Time
	Channel   uint8
	Count     uint32
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial is an ADC board streaming samples over a serial port, one line per
// conversion: unix_micros,channel,count.
type Serial struct {
	cfg config.ADCConfig

	mu      sync.RWMutex
	conn    io.ReadCloser
	latest  []chan Sample
	ctx     context.Context
	cancel  context.CancelFunc
	open    func(port string, mode *serial.Mode) (io.ReadCloser, error)
	running bool
}

// NewSerial creates a serial-backed ADC. Nothing is opened until EnsureInitialized.
func NewSerial(cfg config.ADCConfig) *Serial {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	latest := make([]chan Sample, cfg.Channels)
	for i := range latest {
		latest[i] = make(chan Sample, 1)
	}

	return &Serial{
		cfg:    cfg,
		latest: latest,
		open: func(port string, mode *serial.Mode) (io.ReadCloser, error) {
			return serial.Open(port, mode)
		},
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{Name: name, Description: name})
	}
	return result, nil
}

func (s *Serial) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// EnsureInitialized opens the port and starts the reader if it is not running.
func (s *Serial) EnsureInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return true
	}

	conn, err := s.open(s.cfg.Port, &serial.Mode{BaudRate: s.cfg.BaudRate})
	if err != nil {
		log.Printf("Failed to open serial port %s: %v", s.cfg.Port, err)
		return false
	}
	s.start(conn)
	return true
}

// start must be called with s.mu held.
func (s *Serial) start(conn io.ReadCloser) {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.conn = conn
	s.running = true
	go s.readSamples(s.ctx, conn)
}

// Close stops the reader and closes the port.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.cancel()
	s.running = false

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			return fmt.Errorf("failed to close serial port: %w", err)
		}
		s.conn = nil
	}
	return nil
}

func (s *Serial) IsChannelAvailable(ch uint8) bool {
	return int(ch) < len(s.latest)
}

// ReadChannelCount waits for the next sample on ch.
func (s *Serial) ReadChannelCount(ch uint8) (uint32, error) {
	s.mu.RLock()
	running, ctx := s.running, s.ctx
	s.mu.RUnlock()

	if !running {
		return 0, ErrNotInitialized
	}
	if !s.IsChannelAvailable(ch) {
		return 0, ErrInvalidChannel
	}

	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()

	select {
	case sample := <-s.latest[ch]:
		return sample.Count, nil
	case <-ctx.Done():
		return 0, ErrNotInitialized
	case <-timer.C:
		return 0, fmt.Errorf("%w: no sample on channel %d within %v", ErrTimeout, ch, s.cfg.Timeout)
	}
}

func (s *Serial) ReadChannelVoltage(ch uint8) (float32, error) {
	count, err := s.ReadChannelCount(ch)
	if err != nil {
		return 0, err
	}
	return CountToVoltage(count, s.ReferenceVoltage(), s.cfg.ResolutionBits), nil
}

func (s *Serial) ReferenceVoltage() float32 {
	return float32(s.cfg.ReferenceVoltage)
}

func (s *Serial) ResolutionBits() uint8 {
	return s.cfg.ResolutionBits
}

// readSamples parses lines from the port and keeps the newest sample per channel.
func (s *Serial) readSamples(ctx context.Context, r io.Reader) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Panic in readSamples: %v", rec)
		}
	}()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sample, err := parseLine(line, MaxCount(s.cfg.ResolutionBits))
		if err != nil {
			log.Printf("Failed to parse line '%s': %v", line, err)
			continue
		}
		if !s.IsChannelAvailable(sample.Channel) {
			continue
		}
		s.publish(sample)
	}

	if ctx.Err() != nil {
		return
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Error reading from serial port: %v", err)
	} else {
		log.Printf("Serial port %s closed", s.cfg.Port)
	}
	s.stop(ctx)
}

// stop marks the reader started with ctx as gone so EnsureInitialized can reopen the port.
func (s *Serial) stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.ctx != ctx {
		return
	}

	s.cancel()
	s.running = false
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			log.Printf("Failed to close serial port: %v", err)
		}
		s.conn = nil
	}
}

// publish replaces any unread sample on the channel.
func (s *Serial) publish(sample Sample) {
	ch := s.latest[sample.Channel]
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- sample:
	default:
		log.Printf("Channel %d busy, dropping sample", sample.Channel)
	}
}

// parseLine parses a line from the board into a Sample.
// Format: unix_micros,channel,count
// Example: 1234567890123,0,2048
func parseLine(line string, maxCount uint32) (Sample, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return Sample{}, fmt.Errorf("invalid line format: expected 3 comma-separated values, got %d", len(parts))
	}

	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	channel, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid channel: %w", err)
	}

	count, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return Sample{}, fmt.Errorf("invalid count: %w", err)
	}
	if uint32(count) > maxCount {
		return Sample{}, fmt.Errorf("count out of range: %d (max %d)", count, maxCount)
	}

	return Sample{
		Timestamp: time.UnixMicro(timestampMicros),
		Channel:   uint8(channel),
		Count:     uint32(count),
	}, nil
}
