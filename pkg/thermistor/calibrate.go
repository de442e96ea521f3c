package thermistor

import "github.com/itohio/gontc/pkg/ntc"

// Calibrate sets the offset so that the current reading equals reference (°C).
// The offset is computed from the uncalibrated, unfiltered temperature, so
// calibrating twice against the same reference gives the same offset.
func (d *Driver[A]) Calibrate(reference float64) error {
	const op = "calibrate"
	if err := d.requireInitialized(op); err != nil {
		return err
	}
	if !ntc.ValidateTemperature(reference, ntc.MinTemperature, ntc.MaxTemperature) {
		return ntc.NewError(ntc.InvalidParameter, op)
	}

	t, err := d.rawTemperature()
	if err != nil {
		return ntc.Wrap(ntc.CalibrationFailed, op, err)
	}

	d.cfg.CalibrationOffset = reference - t
	d.resetFilter()
	return nil
}

// SetCalibrationOffset sets the offset added to every temperature, in °C.
func (d *Driver[A]) SetCalibrationOffset(offset float64) {
	d.cfg.CalibrationOffset = offset
	d.resetFilter()
}

// CalibrationOffset returns the current offset in °C.
func (d *Driver[A]) CalibrationOffset() float64 {
	return d.cfg.CalibrationOffset
}

// ResetCalibration clears the offset.
func (d *Driver[A]) ResetCalibration() {
	d.SetCalibrationOffset(0)
}
