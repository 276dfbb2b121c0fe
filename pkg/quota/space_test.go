package quota

import (
	"errors"
	"testing"
)

func TestMaxAvailable(t *testing.T) {
	// Each project counts at max(soft, hard): #1 reserves 3 GiB (hard wins),
	// #2 reserves 2 GiB (soft wins since hard is unset).
	report := "#1 1048576 2097152 3145728 0 [--------]\n" +
		"#2 0 2097152 0 0 [--------]\n"
	store := newTestStore(&fakeAdmin{report: report}, 10*gib)

	available, err := store.MaxAvailable()
	if err != nil {
		t.Fatal(err)
	}
	if available != 5*gib {
		t.Fatalf("expected %d available, got %d", 5*gib, available)
	}
}

func TestMaxAvailableNegative(t *testing.T) {
	// 20 GiB hard limit against 1 GiB free: oversubscribed.
	store := newTestStore(&fakeAdmin{report: "#1 0 0 20971520 0 [--------]\n"}, 1*gib)

	available, err := store.MaxAvailable()
	if err != nil {
		t.Fatal(err)
	}
	if available != 1*gib-20*gib {
		t.Fatalf("expected %d available, got %d", 1*gib-20*gib, available)
	}
}

func TestAssertReservable(t *testing.T) {
	// 7 GiB available after the existing 3 GiB reservation.
	report := "#1 0 2097152 3145728 0 [--------]\n"

	testCases := []struct {
		name        string
		candidate   uint64
		expectError bool
	}{
		{name: "one byte below", candidate: 7*gib - 1, expectError: false},
		{name: "exactly available", candidate: 7 * gib, expectError: false},
		{name: "one byte above", candidate: 7*gib + 1, expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			store := newTestStore(&fakeAdmin{report: report}, 10*gib)
			err := store.AssertReservable(testCase.candidate)
			if testCase.expectError {
				var insufficient *InsufficientSpaceError
				if !errors.As(err, &insufficient) {
					t.Fatalf("expected InsufficientSpaceError, got %v", err)
				}
				if insufficient.RequestedBytes != testCase.candidate || insufficient.MaxAvailableBytes != 7*gib {
					t.Fatalf("unexpected error detail: %+v", insufficient)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestAssertReservableNegativeAvailable(t *testing.T) {
	store := newTestStore(&fakeAdmin{report: "#1 0 0 20971520 0 [--------]\n"}, 1*gib)

	// Any positive request must fail once reservations exceed free space.
	err := store.AssertReservable(1)
	var insufficient *InsufficientSpaceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientSpaceError, got %v", err)
	}
	if insufficient.MaxAvailableBytes >= 0 {
		t.Fatalf("expected negative max available, got %d", insufficient.MaxAvailableBytes)
	}
}
