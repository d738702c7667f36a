package leave

import (
	"strings"
	"time"

	internal "github.com/civicgrid/hr-management/internal"
)

// DateLayout is the calendar-date format accepted for leave ranges.
const DateLayout = "2006-01-02"

type SubmitLeaveDTO struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Validate checks the whole request up front; a failure here blocks the
// write entirely.
func (d SubmitLeaveDTO) Validate() error {
	if !IsValidLeaveType(d.LeaveType) {
		return internal.NewFieldValidationError("leave_type", "unknown leave type: "+d.LeaveType, internal.ErrCodeInvalidLeaveType)
	}

	start, err := time.Parse(DateLayout, d.StartDate)
	if err != nil {
		return internal.NewFieldValidationError("start_date", "start date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateRange)
	}
	end, err := time.Parse(DateLayout, d.EndDate)
	if err != nil {
		return internal.NewFieldValidationError("end_date", "end date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateRange)
	}
	if end.Before(start) {
		return internal.NewFieldValidationError("end_date", "end date must not be before start date", internal.ErrCodeInvalidDateRange)
	}

	if strings.TrimSpace(d.Reason) == "" {
		return internal.NewFieldValidationError("reason", "reason is required", internal.ErrCodeMissingReason)
	}
	return nil
}

type DecideLeaveDTO struct {
	Decision string `json:"decision"`
}

func (d DecideLeaveDTO) Validate() error {
	if d.Decision != DecisionApprove && d.Decision != DecisionReject {
		return internal.NewFieldValidationError("decision", "decision must be approve or reject", internal.ErrCodeValidationFailed)
	}
	return nil
}
