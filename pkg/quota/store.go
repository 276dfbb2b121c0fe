package quota

import (
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/xfsops/prjquota/pkg/mount"
	"github.com/xfsops/prjquota/pkg/utils"
)

// Store owns the authoritative quota view for one mount point. Every query
// takes a fresh snapshot; nothing is cached. Listing a snapshot and mutating
// later is a read-then-write race if another actor changes quotas in
// between, so callers needing safety must serialize externally.
type Store struct {
	mountPoint string
	admin      Administrator
	diskUsage  func(string) (utils.DiskStatus, error)
}

// StoreOption mutates a Store during construction.
type StoreOption func(*Store)

// WithDiskUsage overrides the free-space probe used by the space accountant.
func WithDiskUsage(fn func(string) (utils.DiskStatus, error)) StoreOption {
	return func(s *Store) { s.diskUsage = fn }
}

// NewStore validates the mount point (mounted, xfs, prjquota option) once,
// at construction. The state can go stale if the volume is unmounted later;
// calls after that fail through the administration primitive instead.
func NewStore(mountPoint string, admin Administrator, opts ...StoreOption) (*Store, error) {
	if !strings.HasPrefix(mountPoint, "/") {
		return nil, fmt.Errorf("mount point must be an absolute path, got %q", mountPoint)
	}
	if err := mount.ValidateProjectQuota(mountPoint); err != nil {
		return nil, err
	}

	s := &Store{
		mountPoint: mountPoint,
		admin:      admin,
		diskUsage:  utils.GetDiskUsage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MountPoint returns the mount point this store is scoped to.
func (s *Store) MountPoint() string { return s.mountPoint }

// Quotas lists all project quotas of the mount point as a point-in-time
// snapshot.
func (s *Store) Quotas() (Snapshot, error) {
	out, err := s.admin.Report(s.mountPoint)
	if err != nil {
		return nil, err
	}
	return ParseReport(out)
}

// NextProjectID returns the next free project id, 1 + the highest id in the
// current snapshot. With no quotas present it returns 1; id 0 is the
// reserved "no project" value and never handed out.
func (s *Store) NextProjectID() (uint32, error) {
	snapshot, err := s.Quotas()
	if err != nil {
		return 0, err
	}

	var highest uint32
	for id := range snapshot {
		if id > highest {
			highest = id
		}
	}
	return highest + 1, nil
}

// SetQuota sets block limits for a project id. A value of 0 means "no
// limit"; setting both to 0 releases the quota (the directory's project id
// must separately be reset to 0 for the id to become reusable). With
// safeSpace, each positive candidate is validated against the space
// accountant before any mutation is issued.
func (s *Store) SetQuota(projectID uint32, softBytes, hardBytes uint64, safeSpace bool) error {
	if safeSpace {
		for _, candidate := range []uint64{softBytes, hardBytes} {
			if candidate == 0 {
				continue
			}
			if err := s.AssertReservable(candidate); err != nil {
				return err
			}
		}
	}

	klog.V(4).InfoS("Setting project quota", "mountPoint", s.mountPoint, "projectID", projectID, "soft", softBytes, "hard", hardBytes)
	return s.admin.SetLimit(s.mountPoint, projectID, softBytes, hardBytes)
}
