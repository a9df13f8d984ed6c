package cli

import (
	"slices"
	"strings"
	"testing"
)

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
		init logConfig
	}{
		{
			name: "assigned",
			args: []string{"--log-level=debug", "--log-format=json"},
			want: logConfig{Level: "debug", Format: "json"},
		},
		{
			name: "separate value",
			args: []string{"process", "--log-level", "info", "a.config"},
			want: logConfig{Level: "info"},
		},
		{
			name: "missing value",
			args: []string{"--log-level", "--strip-history"},
			want: logConfig{Level: ""},
		},
		{
			name: "booleans",
			args: []string{"--log-caller", "--no-log-pretty"},
			init: logConfig{Pretty: true},
			want: logConfig{Caller: true, Pretty: false},
		},
		{
			name: "boolean values",
			args: []string{"--log-caller=false", "--no-log-pretty=false"},
			init: logConfig{Caller: true},
			want: logConfig{Caller: false, Pretty: true},
		},
		{
			name: "invalid boolean ignored",
			args: []string{"--log-pretty=maybe"},
			init: logConfig{Pretty: true},
			want: logConfig{Pretty: true},
		},
		{
			name: "unrelated flags",
			args: []string{"--output", "x", "--logging"},
			want: logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.init
			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestLogConfig_Vars(t *testing.T) {
	vars := (&logConfig{}).vars()

	levels := strings.Split(vars["logLevelEnum"], ",")
	if !slices.Contains(levels, "fatal") || !slices.Contains(levels, "trace") {
		t.Errorf("logLevelEnum = %q, want trace and fatal", vars["logLevelEnum"])
	}
}
