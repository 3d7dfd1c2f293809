package settings

import "fmt"

// Bounds limits accepted by the dashboard and enforced during alert evaluation
const (
	TemperatureFloor   = -40.0
	TemperatureCeiling = 80.0
	HumidityFloor      = 0.0
	HumidityCeiling    = 100.0
)

// Settings maps the shared settings.json resource. The monitor service treats it as a
// read-mostly snapshot refreshed once per cycle; only the dashboard writes it.
type Settings struct {
	MinTemp   float64 `json:"min_temp"`
	MaxTemp   float64 `json:"max_temp"`
	MinHum    float64 `json:"min_hum"`
	MaxHum    float64 `json:"max_hum"`
	DataPin   int     `json:"data_pin"`
	EmailUser string  `json:"email_user"`
	EmailPass string  `json:"email_pass"`
	EmailTo   string  `json:"email_to"`
	SMTPHost  string  `json:"smtp_host"`
	SMTPPort  int     `json:"smtp_port"`
}

// Bounds holds the four live-reconfigurable threshold values
type Bounds struct {
	MinTemp float64
	MaxTemp float64
	MinHum  float64
	MaxHum  float64
}

// Default returns a safe settings snapshot, without real mail credentials
func Default() Settings {
	return Settings{
		MinTemp:  18.0,
		MaxTemp:  22.0,
		MinHum:   40.0,
		MaxHum:   70.0,
		DataPin:  4,
		SMTPHost: "smtp.gmail.com",
		SMTPPort: 465,
	}
}

// ValidateBounds applies the numeric range and logical checks on the threshold pairs and
// returns one human readable message per violated rule
func ValidateBounds(b Bounds) []string {
	var errors []string

	if b.MinTemp < TemperatureFloor || b.MinTemp > TemperatureCeiling {
		errors = append(errors, fmt.Sprintf("Minimum Temperature out of range (%v to %v)", TemperatureFloor, TemperatureCeiling))
	}
	if b.MaxTemp < TemperatureFloor || b.MaxTemp > TemperatureCeiling {
		errors = append(errors, fmt.Sprintf("Maximum Temperature out of range (%v to %v)", TemperatureFloor, TemperatureCeiling))
	}
	if b.MinHum < HumidityFloor || b.MinHum > HumidityCeiling {
		errors = append(errors, fmt.Sprintf("Minimum Humidity out of range (%v to %v)", HumidityFloor, HumidityCeiling))
	}
	if b.MaxHum < HumidityFloor || b.MaxHum > HumidityCeiling {
		errors = append(errors, fmt.Sprintf("Maximum Humidity out of range (%v to %v)", HumidityFloor, HumidityCeiling))
	}
	if b.MinTemp >= b.MaxTemp {
		errors = append(errors, "Minimum Temperature must be less than Maximum Temperature")
	}
	if b.MinHum >= b.MaxHum {
		errors = append(errors, "Minimum Humidity must be less than Maximum Humidity")
	}

	return errors
}
