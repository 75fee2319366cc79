package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a point in time that also accepts bare calendar dates on input, as
// sent by HTML date pickers. Date-only values decode to midnight UTC.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date { return Date{Time: t} }

func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date %s: %w", data, err)
	}
	return d.parse(s)
}

func (d *Date) parse(s string) error {
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC3339", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(time.RFC3339))
}

// UnmarshalText lets form bindings decode the same two layouts.
func (d *Date) UnmarshalText(text []byte) error {
	return d.parse(string(bytes.TrimSpace(text)))
}
