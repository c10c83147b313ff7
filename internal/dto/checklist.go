package dto

// ToggleTaskRequest optionally carries the policy reference so the
// finalization event can identify the policy for external listeners.
type ToggleTaskRequest struct {
	PolicyNumber   string `json:"policyNumber"`
	PolicyID       int64  `json:"policyId"`
	ExpirationDate string `json:"expirationDate"`
}

// SetNotesRequest is the JSON body for PUT .../tasks/{id}/notes.
// Notes is a pointer so an explicit empty string clears the notes while
// an omitted field is rejected.
type SetNotesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

// AddTaskRequest is the JSON body for POST .../tasks.
type AddTaskRequest struct {
	Label string `json:"label" binding:"required,min=1,max=200"`
}

// ResetRequest guards the destructive reset: the caller must send
// confirm=true, mirroring the yes/no prompt the UI shows.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// RowResponse is one rendered checklist row, ready to bind to a
// checkbox, status label and notes field.
type RowResponse struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Checked    bool   `json:"checked"`
	StatusText string `json:"statusText"`
	Notes      string `json:"notes"`
}

// ChecklistResponse is the full rendered checklist for one policy.
type ChecklistResponse struct {
	PolicyKey string        `json:"policyKey"`
	Rows      []RowResponse `json:"rows"`
}

// PolicyKeyResponse is the canonical checklist key for a policy.
type PolicyKeyResponse struct {
	PolicyKey string `json:"policyKey"`
}
