// Package check turns quota usage into a monitoring verdict: a tri-state
// status with a human message and Nagios performance data.
package check

import (
	"fmt"
	"math"
	"strings"
)

// Status is the monitoring verdict. The integer values double as process
// exit codes.
type Status int

const (
	OK Status = iota
	Warning
	Critical
	Unknown
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case Warning:
		return "WARNING"
	case Critical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps the status to its Nagios exit code.
func (s Status) ExitCode() int { return int(s) }

// Thresholds are usage percentages above which the status degrades. A value
// exactly equal to a threshold is still the lower status.
type Thresholds struct {
	WarnPercent int
	CritPercent int
}

// Validate rejects thresholds outside [0,100] or a warning above critical.
func (t Thresholds) Validate() error {
	if t.WarnPercent < 0 || t.WarnPercent > 100 || t.CritPercent < 0 || t.CritPercent > 100 {
		return fmt.Errorf("warning/critical thresholds must be a percentage between 0 and 100")
	}
	if t.WarnPercent > t.CritPercent {
		return fmt.Errorf("warning threshold cannot be greater than critical one")
	}
	return nil
}

// Input is one usage/limit pair to evaluate. VolumeTotalBytes is the
// fallback limit when the project has no quota configured at all.
type Input struct {
	Path             string
	UsedBytes        uint64
	SoftBytes        uint64
	HardBytes        uint64
	VolumeTotalBytes uint64
}

// Result is derived, not persisted: one verdict per check invocation.
type Result struct {
	Status          Status
	UsedPercent     int
	QuotaConfigured bool
	Message         string
	PerfData        []string
}

// Render produces the single monitoring output line:
// <STATUS>: <message>|<metric1> <metric2>
func (r Result) Render() string {
	return fmt.Sprintf("%s: %s|%s", r.Status, r.Message, strings.Join(r.PerfData, " "))
}

// Evaluate computes the usage percentage against the effective limit (soft
// if set, else hard, else the volume's total capacity) and selects a status
// by strict threshold comparison.
func Evaluate(in Input, t Thresholds) Result {
	limit := in.SoftBytes
	if limit == 0 {
		limit = in.HardBytes
	}

	quotaConfigured := true
	if limit == 0 {
		limit = in.VolumeTotalBytes
		quotaConfigured = false
	}

	var usedPercent int
	if limit > 0 {
		usedPercent = int(math.Round(float64(in.UsedBytes) * 100 / float64(limit)))
	}

	warnBytes := uint64(t.WarnPercent) * limit / 100
	critBytes := uint64(t.CritPercent) * limit / 100
	perfData := []string{
		fmt.Sprintf("used_percent=%d%%;%d;%d;0;100", usedPercent, t.WarnPercent, t.CritPercent),
		fmt.Sprintf("used_bytes=%dB;%d;%d;0;%d", in.UsedBytes, warnBytes, critBytes, limit),
	}

	suffix := ""
	if !quotaConfigured {
		suffix = " (WARNING: No quota configured)"
	}

	usedHuman := FormatBytes(in.UsedBytes)
	limitHuman := FormatBytes(limit)

	var status Status
	var message string
	switch {
	case usedPercent > t.CritPercent:
		status = Critical
		message = fmt.Sprintf("Quota used %d%% (%s/%s) for path %s is above critical %d%% limit%s",
			usedPercent, usedHuman, limitHuman, in.Path, t.CritPercent, suffix)
	case usedPercent > t.WarnPercent:
		status = Warning
		message = fmt.Sprintf("Quota used %d%% (%s/%s) for path %s is above warning %d%% limit%s",
			usedPercent, usedHuman, limitHuman, in.Path, t.WarnPercent, suffix)
	default:
		status = OK
		message = fmt.Sprintf("Quota used %d%% (%s/%s) for path %s is below warning %d%% limit%s",
			usedPercent, usedHuman, limitHuman, in.Path, t.WarnPercent, suffix)
	}

	return Result{
		Status:          status,
		UsedPercent:     usedPercent,
		QuotaConfigured: quotaConfigured,
		Message:         message,
		PerfData:        perfData,
	}
}

// FormatBytes renders a byte count with binary unit steps and one decimal
// place, e.g. 1536 -> "1.5KiB".
func FormatBytes(n uint64) string {
	value := float64(n)
	for _, unit := range []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f%s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1fYiB", value)
}
