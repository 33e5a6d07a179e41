package models

// RoleType defines the portal user role
type RoleType string

const (
	RoleAdmin       RoleType = "ADMIN"
	RoleCoordinator RoleType = "COORDINATOR"
)

// DriveStatus is the lifecycle status of a vaccination drive. It is
// independent of the per-record status.
type DriveStatus string

const (
	DriveScheduled DriveStatus = "SCHEDULED"
	DriveCompleted DriveStatus = "COMPLETED"
	DriveCancelled DriveStatus = "CANCELLED"
)

// Valid reports whether the value is a known drive status.
func (s DriveStatus) Valid() bool {
	switch s {
	case DriveScheduled, DriveCompleted, DriveCancelled:
		return true
	}
	return false
}

// RecordStatus is the status of a single vaccination record.
type RecordStatus string

const (
	RecordScheduled RecordStatus = "SCHEDULED"
	RecordCompleted RecordStatus = "COMPLETED"
	RecordCancelled RecordStatus = "CANCELLED"
)

// Valid reports whether the value is a known record status.
func (s RecordStatus) Valid() bool {
	switch s {
	case RecordScheduled, RecordCompleted, RecordCancelled:
		return true
	}
	return false
}

// CanTransitionTo implements the record status transition table:
// SCHEDULED may move to COMPLETED or CANCELLED, COMPLETED may only be
// cancelled, and CANCELLED is terminal.
func (s RecordStatus) CanTransitionTo(next RecordStatus) bool {
	switch s {
	case RecordScheduled:
		return next == RecordCompleted || next == RecordCancelled
	case RecordCompleted:
		return next == RecordCancelled
	case RecordCancelled:
		return false
	}
	return false
}
