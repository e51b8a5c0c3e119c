package domain

import "time"

// Staff represents a bookable staff member ("barber") belonging to one store.
// Each staff member has an independent calendar.
type Staff struct {
	ID        int64
	StoreID   int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffOption is a roster entry offered by auto-assignment and alternative
// search. The roster order is the staff creation order, which keeps
// first-available selection deterministic across backends.
type StaffOption struct {
	StaffID   int64
	StaffName string
}
