package quota

import (
	"k8s.io/klog/v2"
)

// MaxAvailable computes the non-reserved free space of the volume: free
// bytes minus the sum of every project's largest configured limit. Each
// existing project is counted at its maximum possible claim, so a grant
// validated against this figure cannot exceed physical free space even once
// every project grows to its cap. The result is negative when reservations
// already exceed free space.
func (s *Store) MaxAvailable() (int64, error) {
	ds, err := s.diskUsage(s.mountPoint)
	if err != nil {
		return 0, err
	}

	snapshot, err := s.Quotas()
	if err != nil {
		return 0, err
	}

	var reserved uint64
	for _, q := range snapshot {
		reserved += q.MaxLimit()
	}
	return int64(ds.Free) - int64(reserved), nil
}

// AssertReservable fails with InsufficientSpaceError when candidateBytes
// exceeds the computed available space. The comparison is strictly greater
// than: a request exactly exhausting the available space succeeds.
func (s *Store) AssertReservable(candidateBytes uint64) error {
	available, err := s.MaxAvailable()
	if err != nil {
		return err
	}

	if available < 0 || candidateBytes > uint64(available) {
		klog.ErrorS(nil, "Requested quota exceeds available space", "mountPoint", s.mountPoint, "requested", candidateBytes, "maxAvailable", available)
		return &InsufficientSpaceError{RequestedBytes: candidateBytes, MaxAvailableBytes: available}
	}
	return nil
}
