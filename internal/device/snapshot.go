package device

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Unknown is the displayable placeholder for degraded string fields
// (battery level, OS version, network type).
const Unknown = "Unknown"

// DeviceType classifies the hardware form factor.
type DeviceType int

const (
	// TypeUnknown means the form factor could not be determined
	TypeUnknown DeviceType = iota
	// TypePhone is a handheld device
	TypePhone
	// TypeTablet is a tablet or convertible
	TypeTablet
	// TypeDesktop covers desktops, laptops and servers
	TypeDesktop
	// TypeTV is a television or set-top device
	TypeTV
)

// String returns a human-readable name for the device type
func (d DeviceType) String() string {
	switch d {
	case TypePhone:
		return "Phone"
	case TypeTablet:
		return "Tablet"
	case TypeDesktop:
		return "Desktop"
	case TypeTV:
		return "TV"
	case TypeUnknown:
		return Unknown
	default:
		return fmt.Sprintf("DeviceType(%d)", d)
	}
}

// MarshalJSON encodes the type as its display name
func (d DeviceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a display name back into a type; unrecognized
// names map to TypeUnknown
func (d *DeviceType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "Phone":
		*d = TypePhone
	case "Tablet":
		*d = TypeTablet
	case "Desktop":
		*d = TypeDesktop
	case "TV":
		*d = TypeTV
	default:
		*d = TypeUnknown
	}
	return nil
}

// Snapshot is the flat device record shown on the card. It is immutable
// once Build returns it; a reload produces a fresh one.
type Snapshot struct {
	// Model is the product name, e.g. "ThinkPad X1 Carbon Gen 9"
	Model Optional[string] `json:"model"`

	// Brand is the system vendor, e.g. "LENOVO"
	Brand Optional[string] `json:"brand"`

	// Manufacturer is the board vendor, which may differ from Brand
	Manufacturer Optional[string] `json:"manufacturer"`

	// DeviceName is the host name
	DeviceName Optional[string] `json:"deviceName"`

	// OSName is the platform identifier, never empty
	OSName string `json:"osName"`

	// OSVersion is the platform release, "Unknown" when unreadable
	OSVersion string `json:"osVersion"`

	// BatteryLevel is a rounded percentage ("87%") or "Unknown"
	BatteryLevel string `json:"batteryLevel"`

	// DeviceType is the coarse form factor
	DeviceType DeviceType `json:"deviceType"`

	// IsTablet is derived from DeviceType, never stored independently
	IsTablet bool `json:"isTablet"`

	// Resolution is "<width>x<height>" in character cells or pixels
	Resolution string `json:"resolution"`

	// FontScale is the user's text scaling factor, 1.0 when unset
	FontScale float64 `json:"fontScale"`

	// LocalIP is the address on the local network segment
	LocalIP Optional[string] `json:"localIp"`

	// NetworkType is WIFI/ETHERNET/CELLULAR/... or "Unknown"
	NetworkType string `json:"networkType"`

	// Connected reports whether a default route exists
	Connected bool `json:"connected"`

	// YearClass is a coarse performance-tier classification by release era
	YearClass Optional[int] `json:"yearClass"`

	// TotalMemory is physical memory in bytes
	TotalMemory Optional[uint64] `json:"totalMemory"`

	// ModelID is the vendor's SKU or product identifier
	ModelID Optional[string] `json:"modelId"`

	// TakenAt is when the snapshot was assembled
	TakenAt time.Time `json:"takenAt"`
}

// TotalMemoryGB formats TotalMemory for display; absent stays absent so
// the renderer can omit the row entirely.
func (s *Snapshot) TotalMemoryGB() Optional[string] {
	if bytes, ok := s.TotalMemory.Get(); ok {
		return Some(FormatGB(bytes))
	}
	return None[string]()
}

// FormatGB renders a byte count as gigabytes with two decimal places:
// 2147483648 -> "2.00 GB".
func FormatGB(bytes uint64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/(1<<30))
}

// FormatBatteryLevel renders a charge fraction in [0,1] as a rounded
// percentage string: 0.87 -> "87%".
func FormatBatteryLevel(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(fraction*100)))
}
