package main

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBuildVersion(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commitSHA string
		want      string
	}{
		{name: "unset", want: "dev"},
		{name: "release", version: "1.2.0", want: "1.2.0"},
		{name: "with commit", version: "1.2.0", commitSHA: "abc1234", want: "1.2.0 (abc1234)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, CommitSHA = tt.version, tt.commitSHA
			t.Cleanup(func() { Version, CommitSHA = "", "" })

			assert.Equal(t, tt.want, buildVersion())
		})
	}
}
