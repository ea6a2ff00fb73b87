package device

import (
	"encoding/json"
	"testing"
)

func TestFormatGB(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  string
	}{
		{"two gigabytes exactly", 2147483648, "2.00 GB"},
		{"one gigabyte", 1 << 30, "1.00 GB"},
		{"half a gigabyte", 1 << 29, "0.50 GB"},
		{"sixteen gigabytes", 16 << 30, "16.00 GB"},
		{"fractional", 3 << 29, "1.50 GB"},
		{"zero", 0, "0.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatGB(tt.bytes); got != tt.want {
				t.Errorf("FormatGB(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBatteryLevel(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     string
	}{
		{"typical", 0.87, "87%"},
		{"full", 1.0, "100%"},
		{"empty", 0.0, "0%"},
		{"rounds up", 0.876, "88%"},
		{"rounds down", 0.874, "87%"},
		{"rounds half up", 0.005, "1%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBatteryLevel(tt.fraction); got != tt.want {
				t.Errorf("FormatBatteryLevel(%v) = %q, want %q", tt.fraction, got, tt.want)
			}
		})
	}
}

func TestDeviceType_String(t *testing.T) {
	tests := []struct {
		deviceType DeviceType
		want       string
	}{
		{TypeUnknown, "Unknown"},
		{TypePhone, "Phone"},
		{TypeTablet, "Tablet"},
		{TypeDesktop, "Desktop"},
		{TypeTV, "TV"},
		{DeviceType(42), "DeviceType(42)"},
	}

	for _, tt := range tests {
		if got := tt.deviceType.String(); got != tt.want {
			t.Errorf("DeviceType(%d).String() = %q, want %q", int(tt.deviceType), got, tt.want)
		}
	}
}

func TestDeviceType_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(TypeTablet)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"Tablet"` {
		t.Errorf("Marshal(TypeTablet) = %s, want %q", data, `"Tablet"`)
	}

	var back DeviceType
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != TypeTablet {
		t.Errorf("round trip = %v, want TypeTablet", back)
	}

	var unknown DeviceType
	if err := json.Unmarshal([]byte(`"Spaceship"`), &unknown); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if unknown != TypeUnknown {
		t.Errorf("Unmarshal unrecognized name = %v, want TypeUnknown", unknown)
	}
}

func TestSnapshot_TotalMemoryGB(t *testing.T) {
	withMemory := &Snapshot{TotalMemory: Some(uint64(2147483648))}
	if got, ok := withMemory.TotalMemoryGB().Get(); !ok || got != "2.00 GB" {
		t.Errorf("TotalMemoryGB() = %q, %v, want %q, true", got, ok, "2.00 GB")
	}

	withoutMemory := &Snapshot{}
	if withoutMemory.TotalMemoryGB().Present() {
		t.Error("TotalMemoryGB() should be absent when TotalMemory is absent")
	}
}

func TestSnapshot_JSONNullsForAbsentFields(t *testing.T) {
	snap := &Snapshot{
		OSName:       "linux",
		OSVersion:    "6.8",
		BatteryLevel: Unknown,
		DeviceType:   TypeDesktop,
		Model:        Some("XPS 13"),
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["model"] != "XPS 13" {
		t.Errorf("model = %v, want XPS 13", decoded["model"])
	}

	// Absent optionals serialize as explicit nulls
	for _, field := range []string{"brand", "localIp", "yearClass", "totalMemory", "modelId"} {
		value, exists := decoded[field]
		if !exists {
			t.Errorf("field %s missing from JSON", field)
			continue
		}
		if value != nil {
			t.Errorf("field %s = %v, want null", field, value)
		}
	}

	if decoded["deviceType"] != "Desktop" {
		t.Errorf("deviceType = %v, want Desktop", decoded["deviceType"])
	}
}
