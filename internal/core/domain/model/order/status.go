package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// The state machine only moves forward:
//
//	Created ──> Assigned ──> Completed
//
// There is no reassignment and no way back; Completed is final. An order that
// is Assigned or Completed always references the courier that carries it, and
// a Created order never does.
type Status int

const (
	// Unknown is the zero value and is never a valid status.
	Unknown Status = iota

	// Created is the initial status; the order awaits courier assignment.
	Created

	// Assigned means a courier has taken the order and is en route.
	Assigned

	// Completed means the order was delivered. Final.
	Completed
)

func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Assigned:  "Assigned",
		Completed: "Completed",
	}
}

// Validate rejects Unknown and any value outside the defined set.
// Used when restoring a status from persistence or external input.
func (s Status) Validate() error {
	if s != Created && s != Assigned && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer; unknown values render as "Unknown".
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "Unknown"
}

// ValidateAssign checks that assignment is allowed from the current status
// without performing the transition. Only Created orders may be assigned;
// assigning twice is an invariant violation, not a reassignment.
func (s Status) ValidateAssign() error {
	if s != Created {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign from", s))
	}
	return nil
}

// ValidateCanHaveCourier enforces the consistency rule between status and
// courier assignment: Created orders have no courier, Assigned and Completed
// orders always do.
func (s Status) ValidateCanHaveCourier(hasCourier bool) error {
	if hasCourier && s == Created {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must not have a courier", s))
	}

	if !hasCourier && (s == Assigned || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s order must have a courier", s))
	}

	return nil
}

// Assign transitions Created -> Assigned.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return Unknown, err
	}

	return Assigned, nil
}

// Complete transitions Assigned -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to complete from", s))
	}

	return Completed, nil
}
