package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfile_Merge(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	yes, no := true, false
	base := &Profile{
		Log:    LogSettings{Level: "info", Format: "json"},
		Input:  InputSettings{HeaderLines: 3},
		Output: OutputSettings{ResultsDir: "results", Summary: &yes},
	}
	overlay := &Profile{
		Log:    LogSettings{Level: "debug"},
		Output: OutputSettings{MetadataFile: "meta.yml", Summary: &no},
	}

	// --- Act ---
	base.Merge(overlay)
	base.Merge(nil)

	// --- Assert ---
	require.Equal(t, "debug", base.Log.Level)
	require.Equal(t, "json", base.Log.Format, "unset settings must not override")
	require.Equal(t, 3, base.Input.HeaderLines)
	require.Equal(t, "meta.yml", base.Output.MetadataFile)
	require.Equal(t, "results", base.Output.ResultsDir)
	require.NotNil(t, base.Output.Summary)
	require.False(t, *base.Output.Summary)
}

func TestProfile_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&Profile{}).Validate())
	require.NoError(t, (&Profile{Log: LogSettings{Level: "warn", Format: "text"}}).Validate())
	require.Error(t, (&Profile{Log: LogSettings{Level: "loud"}}).Validate())
	require.Error(t, (&Profile{Log: LogSettings{Format: "xml"}}).Validate())
	require.Error(t, (&Profile{Input: InputSettings{HeaderLines: -1}}).Validate())
}
