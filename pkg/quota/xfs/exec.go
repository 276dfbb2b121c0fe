// Package xfs shells out to the xfs_quota binary from xfsprogs. It is the
// production quota.Administrator; it is not safe under concurrent
// invocation against the same mount point.
package xfs

import (
	"errors"
	"fmt"
	"os/exec"

	"k8s.io/klog/v2"

	"github.com/xfsops/prjquota/pkg/quota"
)

// CLI invokes xfs_quota in expert mode with commands scoped to a mount
// point.
type CLI struct {
	binary string
}

// NewCLI resolves the xfs_quota binary from PATH. A missing binary is a
// hard failure; quota administration is impossible without xfsprogs.
func NewCLI() (*CLI, error) {
	binary, err := exec.LookPath("xfs_quota")
	if err != nil {
		return nil, &quota.ReportInvocationError{Err: fmt.Errorf("xfs_quota command not found, install xfsprogs: %w", err)}
	}
	return &CLI{binary: binary}, nil
}

// Report runs the project quota report for mountPoint and returns the raw
// output: numeric project ids, no header.
func (c *CLI) Report(mountPoint string) ([]byte, error) {
	args := reportArgs(mountPoint)
	klog.V(4).InfoS("Exec: xfs_quota report", "mountPoint", mountPoint)

	out, err := exec.Command(c.binary, args...).Output()
	if err != nil {
		return nil, &quota.ReportInvocationError{MountPoint: mountPoint, Output: stderrOf(err), Err: err}
	}
	return out, nil
}

// SetLimit sets block limits for a project id on mountPoint. xfs_quota
// accepts limits in bytes even though it reports usage in KiB.
func (c *CLI) SetLimit(mountPoint string, projectID uint32, softBytes, hardBytes uint64) error {
	args := limitArgs(mountPoint, projectID, softBytes, hardBytes)
	klog.V(4).InfoS("Exec: xfs_quota limit", "mountPoint", mountPoint, "projectID", projectID, "soft", softBytes, "hard", hardBytes)

	if out, err := exec.Command(c.binary, args...).CombinedOutput(); err != nil {
		return &quota.ReportInvocationError{MountPoint: mountPoint, Output: string(out), Err: err}
	}
	return nil
}

// -p project quota, -n numeric project ids, -N hide header.
func reportArgs(mountPoint string) []string {
	return []string{"-x", "-c", "report -p -n -N", mountPoint}
}

func limitArgs(mountPoint string, projectID uint32, softBytes, hardBytes uint64) []string {
	return []string{"-x", "-c", fmt.Sprintf("limit -p bsoft=%d bhard=%d %d", softBytes, hardBytes, projectID), mountPoint}
}

func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(exitErr.Stderr)
	}
	return ""
}
