package cli

import (
	"testing"

	"github.com/ardnew/lamb/log"
)

func TestLogConfigScan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			name: "separate values",
			args: []string{"check", "--log-level", "debug", "--log-format", "json"},
			want: logConfig{Level: "debug", Format: "json", Pretty: true},
		},
		{
			name: "assigned values",
			args: []string{"--log-level=warn", "--log-pretty=false", "--log-caller"},
			want: logConfig{Level: "warn", Caller: true},
		},
		{
			name: "negated",
			args: []string{"--no-log-pretty", "--no-log-caller=false"},
			want: logConfig{Caller: true},
		},
		{
			name: "missing value",
			args: []string{"--log-level", "--log-format"},
			want: logConfig{Pretty: true},
		},
		{
			name: "after terminator",
			args: []string{"--", "--log-level=error"},
			want: logConfig{Pretty: true},
		},
	}

	saved := log.Default()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { log.SetDefault(saved) })

			got := logConfig{Pretty: true}
			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestLogConfigScan_AppliesLevel(t *testing.T) {
	saved := log.Default()
	t.Cleanup(func() { log.SetDefault(saved) })

	var f logConfig
	f.scan([]string{"--log-level=trace"})

	if got := log.Default().Level(); got != log.LevelTrace {
		t.Errorf("level = %v, want %v", got, log.LevelTrace)
	}
}
