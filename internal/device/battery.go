package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/distatus/battery"
)

// SysBattery reads the charge level through the distatus/battery library,
// which abstracts sysfs, IOKit and WMI. Desktops without a battery report
// an error, which the builder degrades to "Unknown".
type SysBattery struct{}

// Level implements BatteryProvider
func (SysBattery) Level(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	batteries, err := battery.GetAll()
	if err != nil && len(batteries) == 0 {
		return 0, fmt.Errorf("failed to read batteries: %w", err)
	}
	if len(batteries) == 0 {
		return 0, errors.New("no battery present")
	}

	// Partial read errors can leave individual entries unusable; take
	// the first one with a sane capacity.
	for _, b := range batteries {
		if b == nil || b.Full <= 0 {
			continue
		}
		level := b.Current / b.Full
		if level < 0 {
			level = 0
		}
		if level > 1 {
			level = 1
		}
		return level, nil
	}

	return 0, errors.New("no battery reports a usable capacity")
}
