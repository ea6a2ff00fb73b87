package device

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// FontScaleEnvVar lets users declare their terminal's text scaling, since
// no portable API exposes it. Unset or invalid values mean 1.0.
const FontScaleEnvVar = "DEVCARD_FONT_SCALE"

// TermDisplay reports the controlling terminal's dimensions as the
// card's "screen". When stdout is not a terminal (piped output), the
// dimensions are zero and the resolution row reads "0x0".
type TermDisplay struct{}

// Metrics implements DisplayProvider
func (TermDisplay) Metrics() DisplayMetrics {
	m := DisplayMetrics{FontScale: 1.0}

	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.Width = width
		m.Height = height
	}

	if raw := os.Getenv(FontScaleEnvVar); raw != "" {
		if scale, err := strconv.ParseFloat(raw, 64); err == nil && scale > 0 {
			m.FontScale = scale
		}
	}

	return m
}
