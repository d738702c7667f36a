package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRoleChanged        = "role.changed"
	EventTypeLeaveDecided       = "leave.decided"
	EventTypeEmployeeOnboarded  = "employee.onboarded"
	EventTypeAttendanceCheckIn  = "attendance.checked_in"
)

type RoleChangedEvent struct {
	BaseEvent
	TargetUserID    string `json:"target_user_id"`
	TargetUserName  string `json:"target_user_name"`
	ChangedByUserID string `json:"changed_by_user_id"`
	OldRole         string `json:"old_role"`
	NewRole         string `json:"new_role"`
}

func NewRoleChangedEvent(targetUserID, targetUserName, changedByUserID, oldRole, newRole string) *RoleChangedEvent {
	return &RoleChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeRoleChanged,
			Timestamp: time.Now(),
		},
		TargetUserID:    targetUserID,
		TargetUserName:  targetUserName,
		ChangedByUserID: changedByUserID,
		OldRole:         oldRole,
		NewRole:         newRole,
	}
}

type LeaveDecidedEvent struct {
	BaseEvent
	RequestID     string `json:"request_id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	LeaveType     string `json:"leave_type"`
	Decision      string `json:"decision"`
	ReviewedBy    string `json:"reviewed_by"`
}

func NewLeaveDecidedEvent(requestID, userID, userName, leaveType, decision, reviewedBy string) *LeaveDecidedEvent {
	return &LeaveDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeLeaveDecided,
			Timestamp: time.Now(),
		},
		RequestID:  requestID,
		UserID:     userID,
		UserName:   userName,
		LeaveType:  leaveType,
		Decision:   decision,
		ReviewedBy: reviewedBy,
	}
}

type EmployeeOnboardedEvent struct {
	BaseEvent
	UserID      string `json:"user_id"`
	FullName    string `json:"full_name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

func NewEmployeeOnboardedEvent(userID, fullName, department, designation string) *EmployeeOnboardedEvent {
	return &EmployeeOnboardedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeEmployeeOnboarded,
			Timestamp: time.Now(),
		},
		UserID:      userID,
		FullName:    fullName,
		Department:  department,
		Designation: designation,
	}
}

type AttendanceCheckInEvent struct {
	BaseEvent
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

func NewAttendanceCheckInEvent(userID, userName, status, date string) *AttendanceCheckInEvent {
	return &AttendanceCheckInEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeAttendanceCheckIn,
			Timestamp: time.Now(),
		},
		UserID:   userID,
		UserName: userName,
		Status:   status,
		Date:     date,
	}
}
