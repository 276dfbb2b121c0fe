// Package mount answers mount-table questions for quota handling: which
// mount point a path belongs to, and whether that mount point can carry XFS
// project quotas.
package mount

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/moby/sys/mountinfo"
	"k8s.io/klog/v2"
)

// ValidationError reports a mount point that cannot carry project quotas:
// not mounted, not xfs, or missing the prjquota option.
type ValidationError struct {
	MountPoint string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("mount point %s: %s", e.MountPoint, e.Reason)
}

const (
	fsTypeXFS      = "xfs"
	prjQuotaOption = "prjquota"
)

// FindMountPoint walks parent directories of path until it hits a mount
// boundary and returns it, i.e. the root of the volume the path belongs to.
func FindMountPoint(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	p := filepath.Clean(abs)
	for p != "/" {
		mounted, err := mountinfo.Mounted(p)
		if err != nil {
			return "", fmt.Errorf("unable to check mount state of %s: %w", p, err)
		}
		if mounted {
			return p, nil
		}
		p = filepath.Dir(p)
	}
	return "/", nil
}

// ValidateProjectQuota verifies mountPoint is an actual xfs mount carrying
// the prjquota option. Any failed check returns ValidationError.
func ValidateProjectQuota(mountPoint string) error {
	infos, err := mountinfo.GetMounts(mountinfo.SingleEntryFilter(filepath.Clean(mountPoint)))
	if err != nil {
		return &ValidationError{MountPoint: mountPoint, Reason: fmt.Sprintf("unable to read mount table: %v", err)}
	}
	if len(infos) == 0 {
		return &ValidationError{MountPoint: mountPoint, Reason: "does not seem to be mounted"}
	}

	info := infos[len(infos)-1]
	klog.V(4).InfoS("Resolved mount entry", "mountPoint", mountPoint, "fstype", info.FSType, "source", info.Source)

	if info.FSType != fsTypeXFS {
		return &ValidationError{MountPoint: mountPoint, Reason: fmt.Sprintf("not an XFS partition (fstype %s)", info.FSType)}
	}
	if !hasOption(info, prjQuotaOption) {
		return &ValidationError{MountPoint: mountPoint, Reason: "not mounted with prjquota option"}
	}
	return nil
}

// hasOption checks both the per-mount and superblock option lists; prjquota
// shows up in the latter.
func hasOption(info *mountinfo.Info, option string) bool {
	for _, opts := range []string{info.Options, info.VFSOptions} {
		for _, opt := range strings.Split(opts, ",") {
			if opt == option {
				return true
			}
		}
	}
	return false
}
