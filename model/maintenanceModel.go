// model/maintenanceModel.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceStatus string

const (
	MaintenanceScheduled MaintenanceStatus = "Scheduled"
	MaintenanceOngoing   MaintenanceStatus = "Ongoing"
	MaintenanceCompleted MaintenanceStatus = "Completed"
	MaintenanceCancelled MaintenanceStatus = "Cancelled"
)

// MaintenanceRecord is an out-of-service event for one vehicle on a single
// date. Scheduled/Ongoing/Completed are derived from MaintenanceDate vs the
// current day; Cancelled is set manually and is sticky. Records are never
// deleted.
type MaintenanceRecord struct {
	ID              int64             `json:"maintenance_id"`
	VehicleID       int64             `json:"vehicle_id"`
	MaintenanceDate time.Time         `json:"maintenance_date"`
	Description     string            `json:"description"`
	Cost            decimal.Decimal   `json:"cost"`
	Status          MaintenanceStatus `json:"status"`

	// Populated by listing queries that join the vehicle row.
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}
