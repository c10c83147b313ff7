package domain

import "encoding/json"

// UnmarshalJSON accepts both the current wire shape and legacy persisted
// records where the label field was called "task".
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int    `json:"id"`
		Label       string `json:"label"`
		LegacyLabel string `json:"task"`
		Completed   bool   `json:"completed"`
		CompletedAt string `json:"completedAt"`
		Notes       string `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	label := raw.Label
	if label == "" {
		label = raw.LegacyLabel
	}
	*t = Task{
		ID:          raw.ID,
		Label:       label,
		Completed:   raw.Completed,
		CompletedAt: raw.CompletedAt,
		Notes:       raw.Notes,
	}
	return nil
}
