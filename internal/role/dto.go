package role

import (
	internal "github.com/civicgrid/hr-management/internal"
)

// ChangeRoleDTO carries a role change request. TargetUserID comes from the
// URL path, the roles from the request body. The assignment row is keyed on
// the user id, so no assignment identifier travels with the request.
type ChangeRoleDTO struct {
	TargetUserID string `json:"-"`
	OldRole      string `json:"old_role"`
	NewRole      string `json:"new_role"`
}

func (d ChangeRoleDTO) Validate() error {
	if d.TargetUserID == "" {
		return internal.NewFieldValidationError("target_user_id", "target user id is required", internal.ErrCodeValidationFailed)
	}
	if !Role(d.OldRole).IsValid() {
		return internal.NewFieldValidationError("old_role", "unknown role: "+d.OldRole, internal.ErrCodeInvalidRole)
	}
	if !Role(d.NewRole).IsValid() {
		return internal.NewFieldValidationError("new_role", "unknown role: "+d.NewRole, internal.ErrCodeInvalidRole)
	}
	return nil
}
