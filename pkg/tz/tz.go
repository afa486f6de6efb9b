package tz

import (
	"fmt"
	"time"
)

// Load returns the named IANA location, or the local zone when name is empty.
func Load(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %s: %w", name, err)
	}
	return loc, nil
}
