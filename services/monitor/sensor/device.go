package sensor

import (
	"github.com/d2r2/go-dht"
)

// highest BCM GPIO line usable for the data pin on supported boards
const maxGPIOPin = 27

// Device is one acquired sensor handle. It never outlives a single Acquire call.
type Device interface {
	// Sample performs one raw read of temperature and humidity
	Sample() (temperature float64, humidity float64, err error)
	// Close releases the underlying handle
	Close()
}

// DeviceOpener resolves a configured data pin into an open sensor handle
type DeviceOpener func(pin int) (Device, error)

type dht22Device struct {
	pin int
}

// OpenDHT22 maps the configured data pin to a DHT22 device on that GPIO line
func OpenDHT22(pin int) (Device, error) {
	if pin <= 0 || pin > maxGPIOPin {
		return nil, errInvalidDataPin(pin)
	}

	return &dht22Device{
		pin: pin,
	}, nil
}

// Sample performs one raw read of temperature and humidity
func (d *dht22Device) Sample() (float64, float64, error) {
	temperature, humidity, err := dht.ReadDHTxx(dht.DHT22, d.pin, false)
	if err != nil {
		return 0, 0, err
	}

	return float64(temperature), float64(humidity), nil
}

// Close releases the underlying handle. The driver holds no state between reads, so the
// GPIO line is already free.
func (d *dht22Device) Close() {
}
