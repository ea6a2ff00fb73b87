package device

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestInterfaceType(t *testing.T) {
	tests := []struct {
		iface string
		want  string
	}{
		{"wlan0", "WIFI"},
		{"wlp3s0", "WIFI"},
		{"wlx00c0ca", "WIFI"},
		{"eth0", "ETHERNET"},
		{"enp0s31f6", "ETHERNET"},
		{"eno1", "ETHERNET"},
		{"wwan0", "CELLULAR"},
		{"ppp0", "CELLULAR"},
		{"rmnet_data0", "CELLULAR"},
		{"tun0", "VPN"},
		{"wg0", "VPN"},
		{"docker0", "BRIDGE"},
		{"virbr0", "BRIDGE"},
		{"mystery7", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.iface, func(t *testing.T) {
			if got := InterfaceType(tt.iface); got != tt.want {
				t.Errorf("InterfaceType(%q) = %q, want %q", tt.iface, got, tt.want)
			}
		})
	}
}

const routeTableWithDefault = `Iface	Destination	Gateway 	Flags	RefCnt	Use	Metric	Mask		MTU	Window	IRTT
wlp3s0	00000000	0102A8C0	0003	0	0	600	00000000	0	0	0
wlp3s0	0002A8C0	00000000	0001	0	0	600	00FFFFFF	0	0	0
`

const routeTableNoDefault = `Iface	Destination	Gateway 	Flags	RefCnt	Use	Metric	Mask		MTU	Window	IRTT
eth0	0002A8C0	00000000	0001	0	0	100	00FFFFFF	0	0	0
`

func writeRouteTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "route")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultRouteInterface(t *testing.T) {
	p := &SysNetwork{RoutePath: writeRouteTable(t, routeTableWithDefault)}

	iface, err := p.defaultRouteInterface()
	if err != nil {
		t.Fatalf("defaultRouteInterface() error = %v", err)
	}
	if iface != "wlp3s0" {
		t.Errorf("defaultRouteInterface() = %q, want wlp3s0", iface)
	}
}

func TestDefaultRouteInterface_NoDefaultRoute(t *testing.T) {
	p := &SysNetwork{RoutePath: writeRouteTable(t, routeTableNoDefault)}

	iface, err := p.defaultRouteInterface()
	if err != nil {
		t.Fatalf("defaultRouteInterface() error = %v", err)
	}
	if iface != "" {
		t.Errorf("defaultRouteInterface() = %q, want empty when no default route", iface)
	}
}

func TestDefaultRouteInterface_MissingTable(t *testing.T) {
	p := &SysNetwork{RoutePath: filepath.Join(t.TempDir(), "does-not-exist")}

	if _, err := p.defaultRouteInterface(); err == nil {
		t.Error("defaultRouteInterface() should error when the table is unreadable")
	}
}

func TestStatus_ConnectedViaWifi(t *testing.T) {
	p := &SysNetwork{RoutePath: writeRouteTable(t, routeTableWithDefault)}

	status, err := p.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	if netType, _ := status.Type.Get(); netType != "WIFI" {
		t.Errorf("Type = %q, want WIFI", netType)
	}
	if connected, _ := status.Connected.Get(); !connected {
		t.Error("Connected = false, want true with a default route present")
	}
}

func TestStatus_OfflineWithoutDefaultRoute(t *testing.T) {
	p := &SysNetwork{RoutePath: writeRouteTable(t, routeTableNoDefault)}

	status, err := p.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	if status.Type.Present() {
		t.Error("Type should be absent without a default route")
	}
	if connected, ok := status.Connected.Get(); !ok || connected {
		t.Errorf("Connected = %v, %v, want a present false", connected, ok)
	}
}

func TestStatus_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &SysNetwork{}
	if _, err := p.Status(ctx); err == nil {
		t.Error("Status() with canceled context should error")
	}
}
