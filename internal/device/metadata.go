package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"

	"github.com/haldis/devcard/internal/logging"
)

// defaultDMIPath is where the kernel exposes SMBIOS identity on Linux.
// Other platforms simply lack the directory and the fields stay absent.
const defaultDMIPath = "/sys/class/dmi/id"

// HostMetadata reads device identity from gopsutil and the DMI tree.
//
// The host.Info call is the fatal gate: if the platform cannot even say
// what it is, the snapshot is not worth assembling. Everything after it
// (DMI strings, memory size, CPU clocks) degrades to absent fields.
type HostMetadata struct {
	// DMIPath overrides the DMI root, for tests
	DMIPath string
}

// Metadata implements MetadataProvider
func (p *HostMetadata) Metadata() (Metadata, error) {
	info, err := host.Info()
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read host info: %w", err)
	}

	meta := Metadata{
		OSName:    info.Platform,
		OSVersion: info.PlatformVersion,
	}
	if info.Hostname != "" {
		meta.DeviceName = Some(info.Hostname)
	}

	if v := p.dmi("product_name"); v != "" {
		meta.Model = Some(v)
	}
	if v := p.dmi("sys_vendor"); v != "" {
		meta.Brand = Some(v)
	}
	if v := p.dmi("board_vendor"); v != "" {
		meta.Manufacturer = Some(v)
	}
	if v := p.dmi("product_sku"); v != "" {
		meta.ModelID = Some(v)
	}
	meta.DeviceType = chassisDeviceType(p.dmi("chassis_type"))

	var totalMem uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMem = vm.Total
		meta.TotalMemory = Some(vm.Total)
	} else {
		logging.Debug("Memory read failed", zap.Error(err))
	}

	meta.YearClass = yearClass(totalMem, maxClockMHz())

	return meta, nil
}

// dmi reads one attribute from the DMI tree, returning "" when the file
// is missing, unreadable or a placeholder.
func (p *HostMetadata) dmi(name string) string {
	root := p.DMIPath
	if root == "" {
		root = defaultDMIPath
	}

	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return ""
	}

	value := strings.TrimSpace(string(data))
	switch value {
	case "", "None", "Not Specified", "To be filled by O.E.M.", "Default string":
		// Vendors ship these instead of leaving the field empty
		return ""
	}
	return value
}

// chassisDeviceType maps an SMBIOS chassis type code to a form factor.
// Codes are defined in the SMBIOS spec, table "System Enclosure or
// Chassis Types".
func chassisDeviceType(raw string) DeviceType {
	code, err := strconv.Atoi(raw)
	if err != nil {
		return TypeUnknown
	}

	switch code {
	case 11, 12: // Handheld
		return TypePhone
	case 30, 31, 32: // Tablet, Convertible, Detachable
		return TypeTablet
	case 3, 4, 5, 6, 7, 13, 15, 16, 24, 35, 36: // Desktop towers, all-in-ones, minis
		return TypeDesktop
	case 8, 9, 10, 14: // Portable, Laptop, Notebook, Sub Notebook
		return TypeDesktop
	case 34: // Stick PC, typically an HDMI TV dongle
		return TypeTV
	default:
		return TypeUnknown
	}
}

// maxClockMHz returns the highest advertised core clock, or 0 when the
// CPU table is unreadable.
func maxClockMHz() float64 {
	infos, err := cpu.Info()
	if err != nil {
		logging.Debug("CPU info read failed", zap.Error(err))
		return 0
	}
	var maxMHz float64
	for _, info := range infos {
		if info.Mhz > maxMHz {
			maxMHz = info.Mhz
		}
	}
	return maxMHz
}

// yearClass buckets the hardware into a coarse release-era tier from its
// memory size and peak clock, in the manner of mobile device-year-class
// heuristics. When both signals are present the earlier (weaker) tier
// wins; with neither, the classification is absent.
func yearClass(totalMem uint64, clockMHz float64) Optional[int] {
	memYear, memOK := yearByMemory(totalMem)
	clockYear, clockOK := yearByClock(clockMHz)

	switch {
	case memOK && clockOK:
		if clockYear < memYear {
			return Some(clockYear)
		}
		return Some(memYear)
	case memOK:
		return Some(memYear)
	case clockOK:
		return Some(clockYear)
	default:
		return None[int]()
	}
}

func yearByMemory(totalMem uint64) (int, bool) {
	if totalMem == 0 {
		return 0, false
	}
	const gb = uint64(1) << 30
	switch {
	case totalMem <= 1*gb:
		return 2009, true
	case totalMem <= 2*gb:
		return 2012, true
	case totalMem <= 3*gb:
		return 2014, true
	case totalMem <= 4*gb:
		return 2015, true
	case totalMem <= 6*gb:
		return 2016, true
	case totalMem <= 8*gb:
		return 2017, true
	case totalMem <= 12*gb:
		return 2019, true
	case totalMem <= 16*gb:
		return 2020, true
	default:
		return 2022, true
	}
}

func yearByClock(clockMHz float64) (int, bool) {
	if clockMHz <= 0 {
		return 0, false
	}
	switch {
	case clockMHz <= 1000:
		return 2008, true
	case clockMHz <= 1300:
		return 2011, true
	case clockMHz <= 1800:
		return 2012, true
	case clockMHz <= 2100:
		return 2013, true
	case clockMHz <= 2500:
		return 2015, true
	case clockMHz <= 2800:
		return 2016, true
	case clockMHz <= 3200:
		return 2018, true
	case clockMHz <= 3500:
		return 2020, true
	default:
		return 2022, true
	}
}
