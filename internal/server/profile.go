package server

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/haldis/devcard/internal/device"
	"github.com/haldis/devcard/internal/logging"
	"github.com/haldis/devcard/internal/publicip"
	"go.uber.org/zap"
)

// Profile is the document the share server hands out: the device snapshot
// plus the public IP, stamped with the serving host and assembly time.
type Profile struct {
	// Device is the full snapshot, or nil when the hardware metadata
	// could not be read. It serializes as JSON null in that case.
	Device *device.Snapshot `json:"device"`

	// PublicIP is the externally visible address, or the lookup sentinel.
	PublicIP string `json:"publicIp"`

	// Host is the hostname of the machine serving the profile.
	Host string `json:"host"`

	// TakenAt is when this profile was assembled (UTC).
	TakenAt time.Time `json:"takenAt"`
}

// BuildProfile assembles a fresh profile. The snapshot and the public IP
// lookup run concurrently; a snapshot failure leaves Device nil while the
// public IP (or its sentinel) is still reported.
func BuildProfile(ctx context.Context, builder *device.Builder, resolver *publicip.Resolver) *Profile {
	var (
		wg       sync.WaitGroup
		snapshot *device.Snapshot
		publicIP string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snap, err := builder.Build(ctx)
		if err != nil {
			logging.Warn("Device snapshot unavailable for profile",
				zap.Error(err),
			)
			return
		}
		snapshot = snap
	}()
	go func() {
		defer wg.Done()
		publicIP = resolver.Resolve(ctx)
	}()
	wg.Wait()

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	return &Profile{
		Device:   snapshot,
		PublicIP: publicIP,
		Host:     host,
		TakenAt:  time.Now().UTC(),
	}
}
