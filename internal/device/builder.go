package device

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/haldis/devcard/internal/logging"
)

// DefaultProbeTimeout bounds the asynchronous probes (network status,
// local IP, battery) as a group. A probe overrunning it degrades its
// field the same way a failed probe does.
const DefaultProbeTimeout = 3 * time.Second

// Metadata is the synchronous identity block read in one shot. Fields the
// platform cannot supply stay absent; they are passed through to the
// snapshot untouched.
type Metadata struct {
	Model        Optional[string]
	Brand        Optional[string]
	Manufacturer Optional[string]
	DeviceName   Optional[string]
	OSName       string
	OSVersion    string
	DeviceType   DeviceType
	YearClass    Optional[int]
	TotalMemory  Optional[uint64]
	ModelID      Optional[string]
}

// DisplayMetrics is the synchronous display state.
type DisplayMetrics struct {
	Width     int
	Height    int
	FontScale float64
}

// NetworkStatus is the result of the network probe. Absent fields mean
// the probe could not tell; the builder maps an absent Type to "Unknown"
// and an absent Connected to false.
type NetworkStatus struct {
	Type      Optional[string]
	Connected Optional[bool]
}

// MetadataProvider reads device identity. An error here is fatal to the
// whole snapshot; it is the only fatal path in Build.
type MetadataProvider interface {
	Metadata() (Metadata, error)
}

// DisplayProvider reads display metrics synchronously. It cannot fail;
// unknown dimensions are zero.
type DisplayProvider interface {
	Metrics() DisplayMetrics
}

// NetworkProvider reads local network state. Both methods degrade on
// error rather than failing the snapshot.
type NetworkProvider interface {
	Status(ctx context.Context) (NetworkStatus, error)
	LocalIP(ctx context.Context) (string, error)
}

// BatteryProvider reads the charge level as a fraction in [0,1]. An error
// (including "no battery on this form factor") degrades the field to
// "Unknown".
type BatteryProvider interface {
	Level(ctx context.Context) (float64, error)
}

// Builder assembles Snapshots from a set of providers. Zero-value fields
// are treated as unsupported and degrade per the provider's rules, except
// Metadata, which is required.
type Builder struct {
	Metadata MetadataProvider
	Display  DisplayProvider
	Network  NetworkProvider
	Battery  BatteryProvider

	// ProbeTimeout bounds the async probes (default DefaultProbeTimeout)
	ProbeTimeout time.Duration
}

// NewBuilder wires the real system providers
func NewBuilder() *Builder {
	return &Builder{
		Metadata:     &HostMetadata{},
		Display:      TermDisplay{},
		Network:      &SysNetwork{},
		Battery:      SysBattery{},
		ProbeTimeout: DefaultProbeTimeout,
	}
}

// Build assembles a snapshot. It returns a nil snapshot if and only if
// the metadata read fails; every other acquisition failure degrades the
// affected field and is reported only through debug logging.
func (b *Builder) Build(ctx context.Context) (*Snapshot, error) {
	if b.Metadata == nil {
		return nil, errors.New("no metadata provider configured")
	}

	meta, err := b.Metadata.Metadata()
	if err != nil {
		return nil, fmt.Errorf("failed to read device metadata: %w", err)
	}

	snap := &Snapshot{
		Model:        meta.Model,
		Brand:        meta.Brand,
		Manufacturer: meta.Manufacturer,
		DeviceName:   meta.DeviceName,
		OSName:       meta.OSName,
		OSVersion:    meta.OSVersion,
		DeviceType:   meta.DeviceType,
		IsTablet:     meta.DeviceType == TypeTablet,
		YearClass:    meta.YearClass,
		TotalMemory:  meta.TotalMemory,
		ModelID:      meta.ModelID,
		NetworkType:  Unknown,
		BatteryLevel: Unknown,
		FontScale:    1.0,
		TakenAt:      time.Now(),
	}

	if snap.OSName == "" {
		snap.OSName = runtime.GOOS
	}
	if snap.OSVersion == "" {
		snap.OSVersion = Unknown
	}

	if b.Display != nil {
		metrics := b.Display.Metrics()
		snap.Resolution = fmt.Sprintf("%dx%d", metrics.Width, metrics.Height)
		if metrics.FontScale > 0 {
			snap.FontScale = metrics.FontScale
		}
	} else {
		snap.Resolution = "0x0"
	}

	b.probe(ctx, snap)

	return snap, nil
}

// probe runs the asynchronous acquisitions concurrently under a bounded
// context and merges their results. Each probe writes to its own slot;
// nothing is shared until the join.
func (b *Builder) probe(ctx context.Context, snap *Snapshot) {
	ctx, cancel := context.WithTimeout(ctx, b.probeTimeout())
	defer cancel()

	var (
		wg sync.WaitGroup

		status    NetworkStatus
		statusErr error

		localIP    string
		localIPErr error

		level      float64
		batteryErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		if b.Network == nil {
			statusErr = errors.New("no network provider")
			return
		}
		status, statusErr = b.Network.Status(ctx)
	}()

	go func() {
		defer wg.Done()
		if b.Network == nil {
			localIPErr = errors.New("no network provider")
			return
		}
		localIP, localIPErr = b.Network.LocalIP(ctx)
	}()

	go func() {
		defer wg.Done()
		if b.Battery == nil {
			batteryErr = errors.New("no battery provider")
			return
		}
		level, batteryErr = b.Battery.Level(ctx)
	}()

	wg.Wait()

	if statusErr == nil {
		snap.NetworkType = status.Type.Or(Unknown)
		snap.Connected = status.Connected.Or(false)
	} else {
		logging.Debug("Network status probe failed", zap.Error(statusErr))
	}

	if localIPErr == nil && localIP != "" {
		snap.LocalIP = Some(localIP)
	} else if localIPErr != nil {
		logging.Debug("Local IP probe failed", zap.Error(localIPErr))
	}

	if batteryErr == nil {
		snap.BatteryLevel = FormatBatteryLevel(level)
	} else {
		logging.Debug("Battery probe failed", zap.Error(batteryErr))
	}
}

func (b *Builder) probeTimeout() time.Duration {
	if b.ProbeTimeout > 0 {
		return b.ProbeTimeout
	}
	return DefaultProbeTimeout
}
