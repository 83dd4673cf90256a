package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantWarn: true},
		{name: "warn", level: "warn", wantDebug: false, wantWarn: true},
		{name: "error", level: "error", wantDebug: false, wantWarn: false},
		{name: "unset", level: "", wantDebug: true, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&buf, tt.level)

			logger.Debug().Msg("debug-line")
			logger.Warn().Msg("warn-line")

			if got := strings.Contains(buf.String(), "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(buf.String(), "warn-line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}
