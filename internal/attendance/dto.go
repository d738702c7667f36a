package attendance

// CheckInDTO carries the optional note attached to a check-in. The time and
// status are derived server-side.
type CheckInDTO struct {
	Notes string `json:"notes,omitempty"`
}
