package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TimestampWins(t *testing.T) {
	cl := Checklist{
		{ID: 1, Label: "Request Updates from Client", Completed: false, CompletedAt: "2026-08-01T10:00:00Z"},
		{ID: 2, Label: "Review Current Coverage", Completed: true, CompletedAt: ""},
		{ID: 3, Label: "Request Loss Runs", Completed: true, CompletedAt: "   "},
	}

	out := Normalize(cl)

	assert.True(t, out[0].Completed)
	assert.False(t, out[1].Completed)
	assert.False(t, out[2].Completed)
}

func TestNormalize_CorruptedRecord(t *testing.T) {
	// Task 5 claims completion but has no timestamp. The timestamp wins.
	cl := DefaultTemplate()
	cl[4].Completed = true
	cl[4].CompletedAt = ""

	out := Normalize(cl)

	assert.False(t, out[4].Completed)
}

func TestNormalize_Idempotent(t *testing.T) {
	cl := Checklist{
		{ID: 1, Label: "a", CompletedAt: "2026-01-01T00:00:00Z"},
		{ID: 2, Label: "b", Completed: true},
	}

	once := Normalize(cl)
	twice := Normalize(once)

	assert.True(t, once.Equal(twice))
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	cl := Checklist{{ID: 1, Label: "a", Completed: true, CompletedAt: ""}}

	_ = Normalize(cl)

	assert.True(t, cl[0].Completed, "caller's slice must be untouched")
}

func TestCountViolations(t *testing.T) {
	cl := Checklist{
		{ID: 1, Completed: true, CompletedAt: ""},
		{ID: 2, Completed: false, CompletedAt: "2026-01-01T00:00:00Z"},
		{ID: 3, Completed: true, CompletedAt: "2026-01-01T00:00:00Z"},
		{ID: 4},
	}

	assert.Equal(t, 2, CountViolations(cl))
	assert.Equal(t, 0, CountViolations(Normalize(cl)))
}

func TestDefaultTemplate(t *testing.T) {
	cl := DefaultTemplate()

	require.Len(t, cl, 10)
	for _, task := range cl {
		assert.False(t, task.Completed)
		assert.Empty(t, task.CompletedAt)
	}
	assert.Equal(t, "Request Updates from Client", cl[0].Label)
	assert.Equal(t, "Request Loss Runs", cl[2].Label)
	assert.Equal(t, "Finalize Renewal", cl[9].Label)
	assert.Equal(t, FinalizeTaskID, cl[9].ID)

	// Two tasks carry explanatory default notes.
	withNotes := 0
	for _, task := range cl {
		if task.Notes != "" {
			withNotes++
		}
	}
	assert.Equal(t, 2, withNotes)
}

func TestDefaultTemplate_ReturnsCopies(t *testing.T) {
	a := DefaultTemplate()
	a[0].CompletedAt = "2026-08-01T10:00:00Z"
	a[0].Notes = "changed"

	b := DefaultTemplate()

	assert.Empty(t, b[0].CompletedAt)
	assert.NotEqual(t, "changed", b[0].Notes)
}

func TestChecklist_IndexOfAndMaxID(t *testing.T) {
	cl := DefaultTemplate()

	assert.Equal(t, 2, cl.IndexOf(3))
	assert.Equal(t, -1, cl.IndexOf(9999))
	assert.Equal(t, 10, cl.MaxID())
	assert.Equal(t, 0, Checklist{}.MaxID())
}

func TestTask_UnmarshalLegacyLabelKey(t *testing.T) {
	// Old persisted rows used "task" for the label field.
	raw := `[{"id":1,"task":"Request Loss Runs","completed":true,"completedAt":"2026-08-01T10:00:00Z","notes":"n"}]`

	var cl Checklist
	require.NoError(t, json.Unmarshal([]byte(raw), &cl))

	require.Len(t, cl, 1)
	assert.Equal(t, "Request Loss Runs", cl[0].Label)
	assert.Equal(t, "n", cl[0].Notes)
	assert.True(t, cl[0].Done())
}

func TestTask_UnmarshalPrefersLabelKey(t *testing.T) {
	raw := `{"id":2,"label":"Bind Coverage","task":"old name"}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))

	assert.Equal(t, "Bind Coverage", task.Label)
}

func TestTask_JSONRoundTrip(t *testing.T) {
	in := Task{ID: 3, Label: "Request Loss Runs", Completed: true, CompletedAt: "2026-08-01T10:00:00Z", Notes: "client slow"}

	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Task
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
