package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// LocalDate é um dia de calendário ("YYYY-MM-DD"), sem timezone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return LocalDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) LocalDate {
	return LocalDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d LocalDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// At ancora o dia + horário num timezone concreto (o da unidade).
func (d LocalDate) At(t LocalTime, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, loc)
}

func (d LocalDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Value grava como DATE.
func (d LocalDate) Value() (driver.Value, error) {
	return d.At(0, time.UTC), nil
}

func (d *LocalDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseLocalDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into LocalDate", src)
	}
}
