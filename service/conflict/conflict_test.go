package conflict

import (
	"testing"
	"time"

	"github.com/umer212dot/Vehicle-Rental-System/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestRentalOverlapsMaintenance_InclusiveBounds(t *testing.T) {
	records := []model.MaintenanceRecord{
		{ID: 1, Status: model.MaintenanceScheduled, MaintenanceDate: day(2026, 5, 18)},
		{ID: 2, Status: model.MaintenanceScheduled, MaintenanceDate: day(2026, 5, 20)},
		{ID: 3, Status: model.MaintenanceScheduled, MaintenanceDate: day(2026, 5, 22)},
		{ID: 4, Status: model.MaintenanceScheduled, MaintenanceDate: day(2026, 5, 23)},
	}

	got := RentalOverlapsMaintenance(records, day(2026, 5, 18), day(2026, 5, 22))
	if len(got) != 3 {
		t.Fatalf("want 3 conflicts (both bounds inclusive), got %d", len(got))
	}
	for _, m := range got {
		if m.ID == 4 {
			t.Fatal("record after range must not conflict")
		}
	}
}

func TestRentalOverlapsMaintenance_IgnoresNonScheduled(t *testing.T) {
	records := []model.MaintenanceRecord{
		{ID: 1, Status: model.MaintenanceCancelled, MaintenanceDate: day(2026, 5, 20)},
		{ID: 2, Status: model.MaintenanceCompleted, MaintenanceDate: day(2026, 5, 20)},
		{ID: 3, Status: model.MaintenanceOngoing, MaintenanceDate: day(2026, 5, 20)},
	}
	if got := RentalOverlapsMaintenance(records, day(2026, 5, 18), day(2026, 5, 22)); len(got) != 0 {
		t.Fatalf("only Scheduled records block a rental, got %d", len(got))
	}
}

func TestMaintenanceOverlapsRental(t *testing.T) {
	rentals := []model.Rental{
		{ID: 1, Status: model.RentalOngoing, RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
		{ID: 2, Status: model.RentalCancelled, RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
		{ID: 3, Status: model.RentalCompleted, RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
		{ID: 4, Status: model.RentalAwaitingApproval, RentalDate: day(2026, 6, 1), ReturnDate: day(2026, 6, 3)},
	}

	got := MaintenanceOverlapsRental(rentals, day(2026, 5, 20))
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("want only the Ongoing rental, got %v", got)
	}

	// Boundary days count.
	if len(MaintenanceOverlapsRental(rentals, day(2026, 5, 18))) != 1 {
		t.Fatal("rental start date must conflict")
	}
	if len(MaintenanceOverlapsRental(rentals, day(2026, 5, 22))) != 1 {
		t.Fatal("rental return date must conflict")
	}
}

func TestMaintenanceOverlapsRental_TruncatesTimeOfDay(t *testing.T) {
	rentals := []model.Rental{
		{ID: 1, Status: model.RentalPending, RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
	}
	noon := time.Date(2026, 5, 22, 12, 15, 0, 0, time.Local)
	if len(MaintenanceOverlapsRental(rentals, noon)) != 1 {
		t.Fatal("time-of-day must not push the check past the return date")
	}
}

func TestDateHasActiveBooking(t *testing.T) {
	rentals := []model.Rental{
		{ID: 1, Status: model.RentalAwaitingApproval, RentalDate: day(2026, 5, 18), ReturnDate: day(2026, 5, 22)},
	}
	if !DateHasActiveBooking(rentals, day(2026, 5, 19)) {
		t.Fatal("awaiting-approval rental still claims its dates")
	}
	if DateHasActiveBooking(rentals, day(2026, 5, 23)) {
		t.Fatal("day outside every range must be free")
	}
}
