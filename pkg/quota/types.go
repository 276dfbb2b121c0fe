package quota

import "sort"

// ProjectQuota is one row of quota state for a project id. All byte fields
// are normalized to bytes at parse time; xfs_quota reports them in KiB.
type ProjectQuota struct {
	ProjectID uint32 `json:"project_id"`
	UsedBytes uint64 `json:"used_bytes"`
	SoftBytes uint64 `json:"soft_limit_bytes"`
	HardBytes uint64 `json:"hard_limit_bytes"`
	WarnCount uint64 `json:"warn_count"`
	Grace     string `json:"grace"`
}

// MaxLimit returns the larger of the soft and hard limits, the project's
// maximum possible claim on the volume.
func (q ProjectQuota) MaxLimit() uint64 {
	if q.SoftBytes > q.HardBytes {
		return q.SoftBytes
	}
	return q.HardBytes
}

// Snapshot maps project ids to their quota records for one mount point at
// one point in time. It is never merged with a later snapshot.
type Snapshot map[uint32]ProjectQuota

// ProjectIDs returns the project ids of the snapshot in ascending order.
func (s Snapshot) ProjectIDs() []uint32 {
	ids := make([]uint32, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Administrator is the quota administration primitive: listing raw report
// output and setting block limits for a project id, both scoped to a mount
// point. The production implementation shells out to xfs_quota; tests
// substitute a fake.
type Administrator interface {
	Report(mountPoint string) ([]byte, error)
	SetLimit(mountPoint string, projectID uint32, softBytes, hardBytes uint64) error
}
