package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/haldis/devcard/internal/device"
)

// fullSnapshot returns a snapshot with every optional field present
func fullSnapshot() *device.Snapshot {
	return &device.Snapshot{
		Model:        device.Some("XPS 13 9310"),
		Brand:        device.Some("Dell"),
		Manufacturer: device.Some("Dell Inc."),
		DeviceName:   device.Some("workbench"),
		OSName:       "linux",
		OSVersion:    "6.8.0",
		BatteryLevel: "87%",
		DeviceType:   device.TypeDesktop,
		IsTablet:     false,
		Resolution:   "240x67",
		FontScale:    1.0,
		LocalIP:      device.Some("192.168.1.7"),
		NetworkType:  "WIFI",
		Connected:    true,
		YearClass:    device.Some(2020),
		TotalMemory:  device.Some(uint64(2147483648)),
		ModelID:      device.Some("0A3E"),
		TakenAt:      time.Now(),
	}
}

// findRow returns the value of the row with the given label, if present
func findRow(section Section, label string) (string, bool) {
	for _, row := range section.Rows {
		if row.Label == label {
			return row.Value, true
		}
	}
	return "", false
}

func TestBuildSections_FullSnapshot(t *testing.T) {
	sections := BuildSections(fullSnapshot(), "1.2.3.4")

	if len(sections) != 2 {
		t.Fatalf("BuildSections() returned %d sections, want 2", len(sections))
	}

	deviceSection, networkSection := sections[0], sections[1]

	if deviceSection.Title != SectionDevice {
		t.Errorf("sections[0].Title = %v, want %v", deviceSection.Title, SectionDevice)
	}
	if networkSection.Title != SectionNetwork {
		t.Errorf("sections[1].Title = %v, want %v", networkSection.Title, SectionNetwork)
	}

	wantDevice := map[string]string{
		"Model":        "XPS 13 9310",
		"Model ID":     "0A3E",
		"Brand":        "Dell",
		"Manufacturer": "Dell Inc.",
		"Device Name":  "workbench",
		"OS":           "linux",
		"OS Version":   "6.8.0",
		"Device Type":  "Desktop",
		"Tablet":       "No",
		"Resolution":   "240x67",
		"Font Scale":   "1.00",
		"Battery":      "87%",
		"Year Class":   "2020",
		"Total Memory": "2.00 GB",
	}
	if len(deviceSection.Rows) != len(wantDevice) {
		t.Errorf("device section has %d rows, want %d", len(deviceSection.Rows), len(wantDevice))
	}
	for label, want := range wantDevice {
		got, ok := findRow(deviceSection, label)
		if !ok {
			t.Errorf("device section missing row %q", label)
			continue
		}
		if got != want {
			t.Errorf("row %q = %q, want %q", label, got, want)
		}
	}

	wantNetwork := map[string]string{
		"Public IP":    "1.2.3.4",
		"Local IP":     "192.168.1.7",
		"Network Type": "WIFI",
		"Connected":    "Yes",
	}
	if len(networkSection.Rows) != len(wantNetwork) {
		t.Errorf("network section has %d rows, want %d", len(networkSection.Rows), len(wantNetwork))
	}
	for label, want := range wantNetwork {
		got, ok := findRow(networkSection, label)
		if !ok {
			t.Errorf("network section missing row %q", label)
			continue
		}
		if got != want {
			t.Errorf("row %q = %q, want %q", label, got, want)
		}
	}

	// Public IP leads the network section
	if networkSection.Rows[0].Label != "Public IP" {
		t.Errorf("first network row = %v, want Public IP", networkSection.Rows[0].Label)
	}
}

func TestBuildSections_NilSnapshot(t *testing.T) {
	sections := BuildSections(nil, "5.6.7.8")

	if len(sections) != 2 {
		t.Fatalf("BuildSections() returned %d sections, want 2", len(sections))
	}

	// Device section keeps its title but renders no rows
	if sections[0].Title != SectionDevice {
		t.Errorf("sections[0].Title = %v, want %v", sections[0].Title, SectionDevice)
	}
	if len(sections[0].Rows) != 0 {
		t.Errorf("device section has %d rows, want 0", len(sections[0].Rows))
	}

	// Network section still renders with the public IP
	if len(sections[1].Rows) != 1 {
		t.Fatalf("network section has %d rows, want 1", len(sections[1].Rows))
	}
	if sections[1].Rows[0].Label != "Public IP" || sections[1].Rows[0].Value != "5.6.7.8" {
		t.Errorf("network row = %+v, want Public IP / 5.6.7.8", sections[1].Rows[0])
	}
}

func TestBuildSections_SkippedLookupOmitsPublicIP(t *testing.T) {
	sections := BuildSections(fullSnapshot(), "")

	if _, ok := findRow(sections[1], "Public IP"); ok {
		t.Error("network section has a Public IP row, want it omitted when the lookup was skipped")
	}
	if _, ok := findRow(sections[1], "Network Type"); !ok {
		t.Error("network section lost its Network Type row")
	}
}

func TestBuildSections_SentinelPublicIP(t *testing.T) {
	sections := BuildSections(nil, "Unable to fetch IP")

	got, ok := findRow(sections[1], "Public IP")
	if !ok {
		t.Fatal("network section missing Public IP row")
	}
	if got != "Unable to fetch IP" {
		t.Errorf("Public IP row = %q, want sentinel", got)
	}
}

func TestBuildSections_AbsentOptionalsOmitted(t *testing.T) {
	snap := &device.Snapshot{
		OSName:       "linux",
		OSVersion:    "Unknown",
		BatteryLevel: "Unknown",
		DeviceType:   device.TypeUnknown,
		Resolution:   "0x0",
		FontScale:    1.0,
		NetworkType:  "Unknown",
		Connected:    false,
	}

	sections := BuildSections(snap, "1.2.3.4")
	deviceSection, networkSection := sections[0], sections[1]

	for _, label := range []string{"Model", "Model ID", "Brand", "Manufacturer", "Device Name", "Year Class", "Total Memory"} {
		if _, ok := findRow(deviceSection, label); ok {
			t.Errorf("device section should omit absent row %q", label)
		}
	}
	if _, ok := findRow(networkSection, "Local IP"); ok {
		t.Error("network section should omit absent Local IP row")
	}

	// Always-present rows render their degraded values
	for _, label := range []string{"OS", "OS Version", "Device Type", "Tablet", "Resolution", "Font Scale", "Battery"} {
		if _, ok := findRow(deviceSection, label); !ok {
			t.Errorf("device section missing always-present row %q", label)
		}
	}
	if got, _ := findRow(deviceSection, "Battery"); got != "Unknown" {
		t.Errorf("Battery row = %q, want Unknown", got)
	}
	if got, _ := findRow(networkSection, "Connected"); got != "No" {
		t.Errorf("Connected row = %q, want No", got)
	}
}

func TestBuildSections_TabletFlag(t *testing.T) {
	snap := fullSnapshot()
	snap.DeviceType = device.TypeTablet
	snap.IsTablet = true

	sections := BuildSections(snap, "1.2.3.4")

	if got, _ := findRow(sections[0], "Tablet"); got != "Yes" {
		t.Errorf("Tablet row = %q, want Yes", got)
	}
	if got, _ := findRow(sections[0], "Device Type"); got != "Tablet" {
		t.Errorf("Device Type row = %q, want Tablet", got)
	}
}

func TestFilterSections(t *testing.T) {
	sections := BuildSections(fullSnapshot(), "1.2.3.4")

	tests := []struct {
		name        string
		query       string
		wantDevice  int
		wantNetwork int
	}{
		{
			name:        "empty query keeps everything",
			query:       "",
			wantDevice:  14,
			wantNetwork: 4,
		},
		{
			name:        "whitespace query keeps everything",
			query:       "   ",
			wantDevice:  14,
			wantNetwork: 4,
		},
		{
			name:        "label match is case-insensitive",
			query:       "BATTERY",
			wantDevice:  1,
			wantNetwork: 0,
		},
		{
			name:        "value match",
			query:       "1.2.3.4",
			wantDevice:  0,
			wantNetwork: 1,
		},
		{
			name:        "substring matches both sections",
			query:       "ip",
			wantDevice:  0,
			wantNetwork: 2, // Public IP, Local IP
		},
		{
			name:        "no match leaves titles only",
			query:       "zzz",
			wantDevice:  0,
			wantNetwork: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterSections(sections, tt.query)

			if len(filtered) != 2 {
				t.Fatalf("FilterSections() returned %d sections, want 2", len(filtered))
			}
			if got := len(filtered[0].Rows); got != tt.wantDevice {
				t.Errorf("device rows = %d, want %d", got, tt.wantDevice)
			}
			if got := len(filtered[1].Rows); got != tt.wantNetwork {
				t.Errorf("network rows = %d, want %d", got, tt.wantNetwork)
			}
			if filtered[0].Title != SectionDevice || filtered[1].Title != SectionNetwork {
				t.Error("FilterSections() must keep section titles")
			}
		})
	}
}

func TestFilterSections_DoesNotMutateInput(t *testing.T) {
	sections := BuildSections(fullSnapshot(), "1.2.3.4")
	before := len(sections[0].Rows)

	FilterSections(sections, "battery")

	if len(sections[0].Rows) != before {
		t.Errorf("FilterSections() mutated its input: %d rows, want %d", len(sections[0].Rows), before)
	}
}

func TestPlainText(t *testing.T) {
	sections := []Section{
		{
			Title: "Device Specifications",
			Rows: []Row{
				{"OS", "linux"},
				{"Total Memory", "2.00 GB"},
			},
		},
		{
			Title: "Network Information",
			Rows: []Row{
				{"Public IP", "1.2.3.4"},
			},
		},
	}

	got := PlainText(sections)

	// Labels are padded so values align per section
	want := strings.Join([]string{
		"Device Specifications",
		strings.Repeat("-", 21),
		"OS:" + strings.Repeat(" ", 11) + "linux",
		"Total Memory: 2.00 GB",
		"",
		"Network Information",
		strings.Repeat("-", 19),
		"Public IP: 1.2.3.4",
		"",
	}, "\n")

	if got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestPlainText_NilSnapshotCard(t *testing.T) {
	got := PlainText(BuildSections(nil, "Unable to fetch IP"))

	if !strings.Contains(got, "Device Specifications") {
		t.Error("PlainText() should keep the device section title for a nil snapshot")
	}
	if !strings.Contains(got, "Public IP: Unable to fetch IP") {
		t.Errorf("PlainText() missing public IP line:\n%s", got)
	}
}
