package xfs

import (
	"reflect"
	"testing"
)

func TestReportArgs(t *testing.T) {
	expected := []string{"-x", "-c", "report -p -n -N", "/mnt/data"}
	if args := reportArgs("/mnt/data"); !reflect.DeepEqual(args, expected) {
		t.Fatalf("expected %v, got %v", expected, args)
	}
}

func TestLimitArgs(t *testing.T) {
	testCases := []struct {
		name      string
		projectID uint32
		softBytes uint64
		hardBytes uint64
		command   string
	}{
		{name: "both limits", projectID: 42, softBytes: 1073741824, hardBytes: 2147483648, command: "limit -p bsoft=1073741824 bhard=2147483648 42"},
		{name: "release", projectID: 7, softBytes: 0, hardBytes: 0, command: "limit -p bsoft=0 bhard=0 7"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			expected := []string{"-x", "-c", testCase.command, "/mnt/data"}
			args := limitArgs("/mnt/data", testCase.projectID, testCase.softBytes, testCase.hardBytes)
			if !reflect.DeepEqual(args, expected) {
				t.Fatalf("expected %v, got %v", expected, args)
			}
		})
	}
}
