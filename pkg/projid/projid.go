// Package projid maps directories to XFS project ids through the
// FS_IOC_FSGETXATTR/FS_IOC_FSSETXATTR ioctls. xfs_quota has no command for
// reading a directory's project id, so the extended attribute structure is
// queried directly.
package projid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"
)

// FlagProjectInherit marks a directory so newly created children inherit
// its project id (FS_XFLAG_PROJINHERIT in linux/fs.h).
const FlagProjectInherit = 0x00000200

// FSXAttr mirrors struct fsxattr from linux/fs.h. The project id occupies
// the fourth word.
type FSXAttr struct {
	XFlags     uint32
	ExtSize    uint32
	NExtents   uint32
	ProjectID  uint32
	CowExtSize uint32
	Pad        [8]byte
}

// AttrPort is the extended-attribute primitive: reading and writing the
// fsxattr structure of a directory. The production port issues ioctls on an
// O_DIRECTORY handle; tests substitute a fake.
type AttrPort interface {
	Get(path string) (FSXAttr, error)
	Set(path string, attr FSXAttr) error
}

// PathValidationError reports a path that is outside the mount point or not
// an existing directory. It is raised before any attribute access.
type PathValidationError struct {
	Path       string
	MountPoint string
	Reason     string
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("path %s: %s", e.Path, e.Reason)
}

// Resolver resolves and assigns project ids for directories under one mount
// point.
type Resolver struct {
	mountPoint string
	port       AttrPort
}

// NewResolver returns a Resolver scoped to mountPoint, backed by the ioctl
// attribute port.
func NewResolver(mountPoint string) *Resolver {
	return &Resolver{mountPoint: filepath.Clean(mountPoint), port: ioctlPort{}}
}

// ProjectID returns the project id assigned to path; 0 means no project.
func (r *Resolver) ProjectID(path string) (uint32, error) {
	abs, err := r.validate(path)
	if err != nil {
		return 0, err
	}

	attr, err := r.port.Get(abs)
	if err != nil {
		return 0, err
	}
	return attr.ProjectID, nil
}

// SetProjectID assigns projectID to path and enables inheritance so
// children created afterwards receive it too. The attribute structure is
// read, modified and written back; other flags are preserved, not cleared.
func (r *Resolver) SetProjectID(path string, projectID uint32) error {
	abs, err := r.validate(path)
	if err != nil {
		return err
	}

	attr, err := r.port.Get(abs)
	if err != nil {
		return err
	}

	attr.XFlags |= FlagProjectInherit
	attr.ProjectID = projectID
	if err := r.port.Set(abs, attr); err != nil {
		return err
	}

	klog.V(2).InfoS("Assigned project id", "path", abs, "projectID", projectID)
	return nil
}

// validate enforces the preconditions: path is an existing directory equal
// to the mount point or a descendant of it. It returns the cleaned absolute
// path.
func (r *Resolver) validate(path string) (string, error) {
	if path == "" {
		return "", &PathValidationError{Path: path, MountPoint: r.mountPoint, Reason: "path must be non-empty"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &PathValidationError{Path: path, MountPoint: r.mountPoint, Reason: err.Error()}
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(r.mountPoint, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", &PathValidationError{Path: path, MountPoint: r.mountPoint, Reason: fmt.Sprintf("not a sub path of %s", r.mountPoint)}
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", &PathValidationError{Path: path, MountPoint: r.mountPoint, Reason: "not an existing directory"}
	}
	return abs, nil
}
