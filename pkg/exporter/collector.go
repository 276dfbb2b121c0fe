package exporter

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"

	"github.com/xfsops/prjquota/pkg/quota"
)

var (
	descUsedBytes = prometheus.NewDesc(
		"xfs_project_quota_used_bytes",
		"Block usage in bytes per project id",
		[]string{"mount_point", "project_id"}, nil,
	)
	descSoftLimitBytes = prometheus.NewDesc(
		"xfs_project_quota_soft_limit_bytes",
		"Soft block limit in bytes per project id, 0 when unset",
		[]string{"mount_point", "project_id"}, nil,
	)
	descHardLimitBytes = prometheus.NewDesc(
		"xfs_project_quota_hard_limit_bytes",
		"Hard block limit in bytes per project id, 0 when unset",
		[]string{"mount_point", "project_id"}, nil,
	)
	descWarnCount = prometheus.NewDesc(
		"xfs_project_quota_warn_count",
		"Warnings issued per project id",
		[]string{"mount_point", "project_id"}, nil,
	)
	descReservableBytes = prometheus.NewDesc(
		"xfs_project_quota_reservable_bytes",
		"Free space not yet promised to any project quota, may be negative",
		[]string{"mount_point"}, nil,
	)
)

// QuotaCollector exposes project quota snapshots of one or more mount
// points as Prometheus metrics. Every scrape takes fresh snapshots.
type QuotaCollector struct {
	stores []*quota.Store
}

func NewQuotaCollector(stores []*quota.Store) *QuotaCollector {
	return &QuotaCollector{stores: stores}
}

func (c *QuotaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descUsedBytes
	ch <- descSoftLimitBytes
	ch <- descHardLimitBytes
	ch <- descWarnCount
	ch <- descReservableBytes
}

func (c *QuotaCollector) Collect(ch chan<- prometheus.Metric) {
	for _, store := range c.stores {
		mountPoint := store.MountPoint()

		snapshot, err := store.Quotas()
		if err != nil {
			klog.ErrorS(err, "Failed to collect quota snapshot", "mountPoint", mountPoint)
			continue
		}

		for _, id := range snapshot.ProjectIDs() {
			q := snapshot[id]
			idStr := strconv.FormatUint(uint64(id), 10)
			ch <- prometheus.MustNewConstMetric(descUsedBytes, prometheus.GaugeValue, float64(q.UsedBytes), mountPoint, idStr)
			ch <- prometheus.MustNewConstMetric(descSoftLimitBytes, prometheus.GaugeValue, float64(q.SoftBytes), mountPoint, idStr)
			ch <- prometheus.MustNewConstMetric(descHardLimitBytes, prometheus.GaugeValue, float64(q.HardBytes), mountPoint, idStr)
			ch <- prometheus.MustNewConstMetric(descWarnCount, prometheus.GaugeValue, float64(q.WarnCount), mountPoint, idStr)
		}

		available, err := store.MaxAvailable()
		if err != nil {
			klog.ErrorS(err, "Failed to compute reservable space", "mountPoint", mountPoint)
			continue
		}
		ch <- prometheus.MustNewConstMetric(descReservableBytes, prometheus.GaugeValue, float64(available), mountPoint)
	}
}
