// Package conflict holds the pure overlap checks shared by the rental and
// maintenance lifecycles. The functions only look at the rows they are
// handed; loading the vehicle's rows and committing the resulting write
// belong to the calling service's transaction.
package conflict

import (
	"time"

	"github.com/umer212dot/Vehicle-Rental-System/model"
	"github.com/umer212dot/Vehicle-Rental-System/util/dateutil"
)

// RentalOverlapsMaintenance returns the Scheduled maintenance records whose
// date falls inside [start, end], inclusive on both ends. Run at rental
// creation and again at approval, since the vehicle's schedule may have
// changed in between.
func RentalOverlapsMaintenance(records []model.MaintenanceRecord, start, end time.Time) []model.MaintenanceRecord {
	var out []model.MaintenanceRecord
	for _, m := range records {
		if m.Status != model.MaintenanceScheduled {
			continue
		}
		if dateutil.InRange(m.MaintenanceDate, start, end) {
			out = append(out, m)
		}
	}
	return out
}

// MaintenanceOverlapsRental returns the rentals still claiming their date
// range (status outside Cancelled/Completed) that cover day.
func MaintenanceOverlapsRental(rentals []model.Rental, day time.Time) []model.Rental {
	d := dateutil.Truncate(day)
	var out []model.Rental
	for _, r := range rentals {
		if !r.Active() {
			continue
		}
		if dateutil.InRange(d, r.RentalDate, r.ReturnDate) {
			out = append(out, r)
		}
	}
	return out
}

// DateHasActiveBooking is the advisory form of MaintenanceOverlapsRental,
// used to steer the scheduler UI away from taken dates. The authoritative
// check still runs inside Schedule.
func DateHasActiveBooking(rentals []model.Rental, day time.Time) bool {
	return len(MaintenanceOverlapsRental(rentals, day)) > 0
}
