package quota

import "fmt"

// ReportInvocationError reports a failed xfs_quota invocation: binary not
// found or non-zero exit.
type ReportInvocationError struct {
	MountPoint string
	Output     string
	Err        error
}

func (e *ReportInvocationError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("xfs_quota failed for %s: %v, out: %s", e.MountPoint, e.Err, e.Output)
	}
	return fmt.Sprintf("xfs_quota failed for %s: %v", e.MountPoint, e.Err)
}

func (e *ReportInvocationError) Unwrap() error { return e.Err }

// MalformedReportError reports a quota report line that does not match the
// expected row grammar.
type MalformedReportError struct {
	Line string
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("unable to parse xfs_quota report line: %q", e.Line)
}

// InsufficientSpaceError reports a reservation request exceeding the
// non-reserved free space of the volume. MaxAvailableBytes is the computed
// ceiling and may be negative when existing reservations already exceed
// free space.
type InsufficientSpaceError struct {
	RequestedBytes    uint64
	MaxAvailableBytes int64
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("cannot reserve %d bytes, max available is %d bytes", e.RequestedBytes, e.MaxAvailableBytes)
}

// NoQuotaFoundError reports a project id with no record in the snapshot at
// all, as opposed to a record with zero limits.
type NoQuotaFoundError struct {
	ProjectID  uint32
	MountPoint string
}

func (e *NoQuotaFoundError) Error() string {
	return fmt.Sprintf("no quota found for project id %d on %s", e.ProjectID, e.MountPoint)
}
