package sensor

import (
	"errors"
	"fmt"
)

type errInvalidDataPin int

func (e errInvalidDataPin) Error() string {
	return fmt.Sprintf("data_pin %d cannot be mapped to a GPIO line", int(e))
}

type errExhaustedRetries int

func (e errExhaustedRetries) Error() string {
	return fmt.Sprintf("no valid sensor data after %d attempts", int(e))
}

// IsConfigError returns true when the error comes from missing or unusable sensor
// addressing configuration
func IsConfigError(err error) bool {
	var target errInvalidDataPin
	return errors.As(err, &target)
}

// IsAcquisitionError returns true when the error means the sensor stayed unreachable or
// invalid for the whole retry budget
func IsAcquisitionError(err error) bool {
	var target errExhaustedRetries
	return errors.As(err, &target)
}
