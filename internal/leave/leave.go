package leave

import (
	leaveDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/leave"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// UnknownRequesterName stands in when a request's user no longer resolves.
const UnknownRequesterName = "Unknown"

const (
	TypeCasual    = "casual"
	TypeSick      = "sick"
	TypeEarned    = "earned"
	TypeMaternity = "maternity"
	TypePaternity = "paternity"
	TypeUnpaid    = "unpaid"
)

var validLeaveTypes = map[string]bool{
	TypeCasual:    true,
	TypeSick:      true,
	TypeEarned:    true,
	TypeMaternity: true,
	TypePaternity: true,
	TypeUnpaid:    true,
}

func IsValidLeaveType(leaveType string) bool {
	return validLeaveTypes[leaveType]
}

// RequestWithName is a leave request annotated with the requester's display
// name for the HR review listing.
type RequestWithName struct {
	leaveDatamodel.LeaveRequest
	RequesterName string `json:"requester_name"`
}
