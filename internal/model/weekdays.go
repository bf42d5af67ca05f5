package model

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Weekday numbers days ISO-style: 1 is Monday, 7 is Sunday.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays is a set of weekdays stored as a comma-separated column
// ("1,3,5"). The column format matches what external consumers of the
// regular_tasks table expect.
type Weekdays []Weekday

// Contains reports whether d is in the set.
func (w Weekdays) Contains(d Weekday) bool {
	for _, v := range w {
		if v == d {
			return true
		}
	}
	return false
}

// Normalize returns the set sorted with duplicates removed.
func (w Weekdays) Normalize() Weekdays {
	seen := make(map[Weekday]struct{}, len(w))
	out := make(Weekdays, 0, len(w))
	for _, d := range w {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (w Weekdays) String() string {
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

// Value implements driver.Valuer.
func (w Weekdays) Value() (driver.Value, error) {
	if len(w) == 0 {
		return nil, fmt.Errorf("weekday set must not be empty")
	}
	for _, d := range w {
		if d < Monday || d > Sunday {
			return nil, fmt.Errorf("weekday %d out of range 1..7", d)
		}
	}
	return w.Normalize().String(), nil
}

// Scan implements sql.Scanner.
func (w *Weekdays) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Weekdays", src)
	}

	if raw == "" {
		*w = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(Weekdays, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("invalid weekday %q: %w", p, err)
		}
		out = append(out, Weekday(n))
	}
	*w = out
	return nil
}
