// model/rentalModel.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalAwaitingApproval RentalStatus = "Awaiting Approval"
	RentalPending          RentalStatus = "Pending"
	RentalOngoing          RentalStatus = "Ongoing"
	RentalCompleted        RentalStatus = "Completed"
	RentalCancelled        RentalStatus = "Cancelled"
)

// Terminal reports whether no further transition can leave s.
func (s RentalStatus) Terminal() bool {
	return s == RentalCompleted || s == RentalCancelled
}

// Rental is a booking of one vehicle for a contiguous date range.
// RentalDate and ReturnDate are date-only (truncated to midnight); the
// range is inclusive on both ends. Rentals are never deleted.
type Rental struct {
	ID         int64           `json:"rental_id"`
	CustomerID int64           `json:"customer_id"`
	VehicleID  int64           `json:"vehicle_id"`
	RentalDate time.Time       `json:"rental_date"`
	ReturnDate time.Time       `json:"return_date"`
	TotalFee   decimal.Decimal `json:"total_fee"`
	Status     RentalStatus    `json:"status"`

	// Populated by listing queries that join the related rows.
	Vehicle  *Vehicle  `json:"vehicle,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}

// Active reports whether the rental still claims its date range for
// overlap purposes (Cancelled and Completed bookings release the vehicle).
func (r Rental) Active() bool {
	return r.Status != RentalCancelled && r.Status != RentalCompleted
}

type Customer struct {
	ID     int64  `json:"customer_id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}
