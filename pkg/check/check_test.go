package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mib = 1024 * 1024

func TestEvaluateStatusSelection(t *testing.T) {
	thresholds := Thresholds{WarnPercent: 75, CritPercent: 85}

	testCases := []struct {
		name        string
		usedBytes   uint64
		status      Status
		usedPercent int
	}{
		{name: "well below warning", usedBytes: 500 * mib, status: OK, usedPercent: 50},
		{name: "exactly warning", usedBytes: 750 * mib, status: OK, usedPercent: 75},
		{name: "above warning", usedBytes: 800 * mib, status: Warning, usedPercent: 80},
		{name: "exactly critical", usedBytes: 850 * mib, status: Warning, usedPercent: 85},
		{name: "above critical", usedBytes: 900 * mib, status: Critical, usedPercent: 90},
		{name: "over limit", usedBytes: 1100 * mib, status: Critical, usedPercent: 110},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := Evaluate(Input{
				Path:      "/mnt/data/proj",
				UsedBytes: testCase.usedBytes,
				SoftBytes: 1000 * mib,
				HardBytes: 1200 * mib,
			}, thresholds)

			assert.Equal(t, testCase.status, result.Status)
			assert.Equal(t, testCase.usedPercent, result.UsedPercent)
			assert.True(t, result.QuotaConfigured)
		})
	}
}

func TestEvaluateMessageAndPerfData(t *testing.T) {
	result := Evaluate(Input{
		Path:      "/mnt/data/proj",
		UsedBytes: 850 * mib,
		SoftBytes: 1000 * mib,
	}, Thresholds{WarnPercent: 75, CritPercent: 85})

	assert.Equal(t, Warning, result.Status)
	assert.Equal(t, "Quota used 85% (850.0MiB/1000.0MiB) for path /mnt/data/proj is above warning 75% limit", result.Message)
	require.Len(t, result.PerfData, 2)
	assert.Equal(t, "used_percent=85%;75;85;0;100", result.PerfData[0])
	assert.Equal(t, "used_bytes=891289600B;786432000;891289600;0;1048576000", result.PerfData[1])
	assert.Equal(t, "WARNING: Quota used 85% (850.0MiB/1000.0MiB) for path /mnt/data/proj is above warning 75% limit|used_percent=85%;75;85;0;100 used_bytes=891289600B;786432000;891289600;0;1048576000", result.Render())
}

func TestEvaluateHardLimitFallback(t *testing.T) {
	result := Evaluate(Input{
		Path:      "/mnt/data/proj",
		UsedBytes: 500 * mib,
		HardBytes: 1000 * mib,
	}, Thresholds{WarnPercent: 75, CritPercent: 85})

	assert.Equal(t, OK, result.Status)
	assert.Equal(t, 50, result.UsedPercent)
	assert.True(t, result.QuotaConfigured)
}

func TestEvaluateNoQuotaConfigured(t *testing.T) {
	result := Evaluate(Input{
		Path:             "/mnt/data/proj",
		UsedBytes:        100 * mib,
		VolumeTotalBytes: 1000 * mib,
	}, Thresholds{WarnPercent: 75, CritPercent: 85})

	assert.Equal(t, OK, result.Status)
	assert.Equal(t, 10, result.UsedPercent)
	assert.False(t, result.QuotaConfigured)
	assert.Contains(t, result.Message, "(WARNING: No quota configured)")
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, Thresholds{WarnPercent: 75, CritPercent: 85}.Validate())
	assert.NoError(t, Thresholds{WarnPercent: 0, CritPercent: 100}.Validate())
	assert.Error(t, Thresholds{WarnPercent: 90, CritPercent: 80}.Validate())
	assert.Error(t, Thresholds{WarnPercent: -1, CritPercent: 85}.Validate())
	assert.Error(t, Thresholds{WarnPercent: 75, CritPercent: 101}.Validate())
}

func TestStatusExitCodes(t *testing.T) {
	assert.Equal(t, 0, OK.ExitCode())
	assert.Equal(t, 1, Warning.ExitCode())
	assert.Equal(t, 2, Critical.ExitCode())
	assert.Equal(t, 3, Unknown.ExitCode())
}

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0.0B"},
		{123, "123.0B"},
		{1024, "1.0KiB"},
		{1536, "1.5KiB"},
		{1048576, "1.0MiB"},
		{891289600, "850.0MiB"},
		{1073741824, "1.0GiB"},
		{1649267441664, "1.5TiB"},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, FormatBytes(testCase.bytes), "bytes=%d", testCase.bytes)
	}
}
