package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LocalTime é um horário de parede em minutos desde 00:00, sem timezone.
// A aritmética de intervalos acontece sempre sobre minutos, nunca sobre
// strings; "HH:MM" só existe na borda (HTTP e SQL).
type LocalTime int

func NewLocalTime(hour, minute int) LocalTime {
	return LocalTime(hour*60 + minute)
}

// ParseLocalTime aceita "HH:MM" e "HH:MM:SS" (segundos são descartados).
func ParseLocalTime(s string) (LocalTime, error) {
	layout := "15:04"
	if len(s) == len("15:04:05") {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}

	return NewLocalTime(t.Hour(), t.Minute()), nil
}

func (t LocalTime) Hour() int   { return int(t) / 60 }
func (t LocalTime) Minute() int { return int(t) % 60 }

func (t LocalTime) Add(minutes int) LocalTime {
	return t + LocalTime(minutes)
}

func (t LocalTime) Before(o LocalTime) bool { return t < o }
func (t LocalTime) After(o LocalTime) bool  { return t > o }

func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// Value grava como TIME ("HH:MM:SS").
func (t LocalTime) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", t.Hour(), t.Minute()), nil
}

func (t *LocalTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewLocalTime(v.Hour(), v.Minute())
		return nil
	case string:
		parsed, err := ParseLocalTime(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", src)
	}
}
