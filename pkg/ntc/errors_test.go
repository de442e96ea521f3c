package ntc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeString(t *testing.T) {
	assert.Equal(t, "Success", Success.String())
	assert.Equal(t, "ADC read failed", AdcReadFailed.String())
	assert.Equal(t, "Hardware fault", HardwareFault.String())
	assert.Equal(t, "Unknown error", Code(200).String())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	cause := errors.New("bus stuck")
	err := fmt.Errorf("read: %w", Wrap(Timeout, "read voltage", cause))

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrHardwareFault)
	assert.Equal(t, Timeout, CodeOf(err))
	assert.Contains(t, err.Error(), "read voltage: Operation timeout: bus stuck")
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, Success, CodeOf(nil))
	assert.Equal(t, Failure, CodeOf(errors.New("plain")))
	assert.Equal(t, InvalidResistance, CodeOf(NewError(InvalidResistance, "x")))
}
