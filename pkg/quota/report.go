package quota

import (
	"regexp"
	"strconv"
	"strings"
)

// Row grammar of `xfs_quota -x -c "report -p -n -N"` output:
// #<projectId> <used> <soft> <hard> <warn> [<grace>]
// with used/soft/hard in KiB and the grace column bracketed verbatim.
var reportRow = regexp.MustCompile(`^#([0-9]+)\s+([0-9]+)\s+([0-9]+)\s+([0-9]+)\s+([0-9]+)\s+\[([^\[\]]+)\]$`)

// ParseReport parses raw xfs_quota project report output into a Snapshot.
// Blank lines are skipped; any other line that does not match the row
// grammar fails with MalformedReportError. KiB columns are converted to
// bytes here, exactly once. A repeated project id keeps the last row.
func ParseReport(out []byte) (Snapshot, error) {
	snapshot := make(Snapshot)

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := reportRow.FindStringSubmatch(line)
		if m == nil {
			return nil, &MalformedReportError{Line: line}
		}

		projectID, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return nil, &MalformedReportError{Line: line}
		}
		used, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return nil, &MalformedReportError{Line: line}
		}
		soft, err := strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			return nil, &MalformedReportError{Line: line}
		}
		hard, err := strconv.ParseUint(m[4], 10, 64)
		if err != nil {
			return nil, &MalformedReportError{Line: line}
		}
		warn, err := strconv.ParseUint(m[5], 10, 64)
		if err != nil {
			return nil, &MalformedReportError{Line: line}
		}

		snapshot[uint32(projectID)] = ProjectQuota{
			ProjectID: uint32(projectID),
			UsedBytes: used * 1024,
			SoftBytes: soft * 1024,
			HardBytes: hard * 1024,
			WarnCount: warn,
			Grace:     m[6],
		}
	}

	return snapshot, nil
}
