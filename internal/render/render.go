package render

import dom "Renewals/internal/domain"

// Row is one checklist line ready to bind to a checkbox, status label
// and notes field.
type Row struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Checked    bool   `json:"checked"`
	StatusText string `json:"statusText"`
	Notes      string `json:"notes"`
}

// Rows projects a checklist into display rows. Pure and deterministic:
// the same checklist always yields the same rows. Checked is derived
// from the timestamp, so even an un-normalized input renders the truth.
// A task with a blank label renders with a blank label rather than
// failing the whole checklist.
func Rows(cl dom.Checklist) []Row {
	rows := make([]Row, len(cl))
	for i, t := range cl {
		r := Row{
			ID:         t.ID,
			Label:      t.Label,
			Checked:    t.Done(),
			StatusText: "Pending",
			Notes:      t.Notes,
		}
		if r.Checked {
			r.StatusText = "Done at " + t.CompletedAt
		}
		rows[i] = r
	}
	return rows
}
