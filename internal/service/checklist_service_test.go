package service

import (
	"context"
	"errors"
	"testing"

	dom "Renewals/internal/domain"
	"Renewals/internal/events"
	"Renewals/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	events []events.Event
}

func (r *recordingNotifier) ChecklistFinalized(_ context.Context, ev events.Event) error {
	r.events = append(r.events, ev)
	return nil
}

func newServiceForTests() (*ChecklistService, *repo.MemoryRepo, *recordingNotifier) {
	r := repo.NewMemoryRepo()
	n := &recordingNotifier{}
	return NewChecklistService(r, nil, n, nil), r, n
}

// flakyRepo fails the next Load once, then delegates. Models a transient
// infrastructure error on the read side of a mutation.
type flakyRepo struct {
	*repo.MemoryRepo
	loadErr error
}

func (f *flakyRepo) Load(ctx context.Context, policyKey string) (dom.Checklist, error) {
	if f.loadErr != nil {
		err := f.loadErr
		f.loadErr = nil
		return nil, err
	}
	return f.MemoryRepo.Load(ctx, policyKey)
}

func TestGet_NewPolicyReturnsTemplate(t *testing.T) {
	svc, _, _ := newServiceForTests()

	cl := svc.Get(context.Background(), "POL-100")

	require.Len(t, cl, 10)
	for _, task := range cl {
		assert.False(t, task.Completed)
		assert.Empty(t, task.CompletedAt)
	}
}

func TestToggle_PendingBecomesDone(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()

	cl, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})

	require.NoError(t, err)
	task := cl[cl.IndexOf(3)]
	assert.True(t, task.Completed)
	assert.NotEmpty(t, task.CompletedAt)
	// All other tasks untouched.
	for _, other := range cl {
		if other.ID != 3 {
			assert.False(t, other.Completed)
			assert.Empty(t, other.CompletedAt)
		}
	}
}

func TestToggle_DoneBecomesPendingAgain(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)
	cl, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)

	task := cl[cl.IndexOf(3)]
	assert.False(t, task.Completed)
	assert.Empty(t, task.CompletedAt, "cleared, not restored to a prior value")
}

func TestToggle_UnknownTaskIsNoOp(t *testing.T) {
	svc, r, _ := newServiceForTests()
	ctx := context.Background()
	_, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)
	before, err := r.Load(ctx, "POL-100")
	require.NoError(t, err)

	_, err = svc.Toggle(ctx, "POL-100", 9999, dom.PolicyRef{})

	assert.ErrorIs(t, err, ErrTaskNotFound)
	after, loadErr := r.Load(ctx, "POL-100")
	require.NoError(t, loadErr)
	assert.True(t, before.Equal(after), "checklist unchanged")
}

func TestToggle_PersistsNormalizedData(t *testing.T) {
	svc, r, _ := newServiceForTests()
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "POL-100", 1, dom.PolicyRef{})
	require.NoError(t, err)

	stored, err := r.Load(ctx, "POL-100")
	require.NoError(t, err)
	assert.Equal(t, 0, dom.CountViolations(stored))
}

func TestToggle_FinalTaskEmitsEvent(t *testing.T) {
	svc, _, n := newServiceForTests()
	ctx := context.Background()
	ref := dom.PolicyRef{PolicyNumber: "POL-100"}

	_, err := svc.Toggle(ctx, "POL-100", dom.FinalizeTaskID, ref)
	require.NoError(t, err)

	require.Len(t, n.events, 1)
	assert.Equal(t, "POL-100", n.events[0].PolicyKey)
	assert.True(t, n.events[0].Finalized)
	assert.Equal(t, ref, n.events[0].PolicyReference)

	// Un-toggling reports finalized=false.
	_, err = svc.Toggle(ctx, "POL-100", dom.FinalizeTaskID, ref)
	require.NoError(t, err)
	require.Len(t, n.events, 2)
	assert.False(t, n.events[1].Finalized)
}

func TestToggle_NonFinalTaskEmitsNothing(t *testing.T) {
	svc, _, n := newServiceForTests()

	_, err := svc.Toggle(context.Background(), "POL-100", 4, dom.PolicyRef{})

	require.NoError(t, err)
	assert.Empty(t, n.events)
}

func TestSetNotes_DoesNotTouchCompletion(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()
	_, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)

	cl, err := svc.SetNotes(ctx, "POL-100", 3, "client slow to respond")

	require.NoError(t, err)
	task := cl[cl.IndexOf(3)]
	assert.Equal(t, "client slow to respond", task.Notes)
	assert.True(t, task.Completed)
	assert.NotEmpty(t, task.CompletedAt)
}

func TestSetNotes_UnknownTask(t *testing.T) {
	svc, _, _ := newServiceForTests()

	_, err := svc.SetNotes(context.Background(), "POL-100", 9999, "x")

	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestToggleNotesToggle_Scenario(t *testing.T) {
	// New policy POL-100: toggle 3, set notes, toggle 3 back.
	svc, _, _ := newServiceForTests()
	ctx := context.Background()

	cl := svc.Get(ctx, "POL-100")
	require.Len(t, cl, 10)

	cl, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)
	assert.True(t, cl[cl.IndexOf(3)].Completed)

	cl, err = svc.SetNotes(ctx, "POL-100", 3, "client slow to respond")
	require.NoError(t, err)

	cl, err = svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)
	task := cl[cl.IndexOf(3)]
	assert.False(t, task.Completed)
	assert.Empty(t, task.CompletedAt)
	assert.Equal(t, "client slow to respond", task.Notes, "notes survive the un-toggle")
}

func TestReset_BackToTemplate(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()
	_, err := svc.Toggle(ctx, "POL-100", 3, dom.PolicyRef{})
	require.NoError(t, err)
	_, err = svc.SetNotes(ctx, "POL-100", 2, "custom")
	require.NoError(t, err)
	_, err = svc.AddTask(ctx, "POL-100", "Call the carrier rep")
	require.NoError(t, err)

	cl, err := svc.Reset(ctx, "POL-100")

	require.NoError(t, err)
	assert.True(t, cl.Equal(dom.DefaultTemplate()))
	assert.True(t, svc.Get(ctx, "POL-100").Equal(dom.Normalize(dom.DefaultTemplate())))
}

func TestAddTask_AppendsWithNextID(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()

	cl, err := svc.AddTask(ctx, "POL-100", "Call the carrier rep")
	require.NoError(t, err)

	require.Len(t, cl, 11)
	added := cl[len(cl)-1]
	assert.Equal(t, 11, added.ID)
	assert.Equal(t, "Call the carrier rep", added.Label)
	assert.False(t, added.Completed)
	assert.Empty(t, added.CompletedAt)
	assert.Empty(t, added.Notes)

	cl, err = svc.AddTask(ctx, "POL-100", "Another")
	require.NoError(t, err)
	assert.Equal(t, 12, cl[len(cl)-1].ID)
}

func TestAddTask_BlankLabelRejected(t *testing.T) {
	svc, _, _ := newServiceForTests()

	_, err := svc.AddTask(context.Background(), "POL-100", "   ")

	assert.ErrorIs(t, err, ErrLabelRequired)
}

func TestRevalidate_HealsDriftedRow(t *testing.T) {
	svc, r, _ := newServiceForTests()
	ctx := context.Background()

	drifted := dom.DefaultTemplate()
	drifted[4].Completed = true // no timestamp: corrupted by an outside writer
	require.NoError(t, r.Save(ctx, "POL-100", drifted))

	cl, err := svc.Revalidate(ctx, "POL-100")

	require.NoError(t, err)
	assert.False(t, cl[4].Completed, "timestamp wins")

	stored, err := r.Load(ctx, "POL-100")
	require.NoError(t, err)
	assert.Equal(t, 0, dom.CountViolations(stored), "healed copy persisted")

	stats := svc.Stats()
	assert.Equal(t, int64(1), stats.ViolationsCorrected)
	assert.Equal(t, int64(1), stats.ChecklistsHealed)
}

func TestRevalidate_CleanRowNotRewritten(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()
	_, err := svc.Toggle(ctx, "POL-100", 1, dom.PolicyRef{})
	require.NoError(t, err)

	_, err = svc.Revalidate(ctx, "POL-100")

	require.NoError(t, err)
	assert.Equal(t, int64(0), svc.Stats().ChecklistsHealed)
}

func TestRevalidate_MissingPolicy(t *testing.T) {
	svc, _, _ := newServiceForTests()

	cl, err := svc.Revalidate(context.Background(), "POL-404")

	require.NoError(t, err)
	assert.True(t, cl.Equal(dom.DefaultTemplate()))
}

func TestToggle_TransientLoadErrorDoesNotClobberProgress(t *testing.T) {
	mem := repo.NewMemoryRepo()
	ctx := context.Background()

	progress := dom.DefaultTemplate()
	for i := 0; i < 5; i++ {
		progress[i].CompletedAt = "2026-08-01T10:00:00Z"
	}
	progress[1].Notes = "carrier confirmed"
	require.NoError(t, mem.Save(ctx, "POL-100", dom.Normalize(progress)))

	flaky := &flakyRepo{MemoryRepo: mem, loadErr: errors.New("connection reset by peer")}
	svc := NewChecklistService(flaky, nil, nil, nil)

	_, err := svc.Toggle(ctx, "POL-100", 6, dom.PolicyRef{})
	require.Error(t, err, "mutation must surface the load failure")

	stored, loadErr := mem.Load(ctx, "POL-100")
	require.NoError(t, loadErr)
	assert.True(t, stored[0].Completed, "task 1 progress survives the transient read failure")
	assert.Equal(t, "carrier confirmed", stored[1].Notes)
}

func TestSetNotes_TransientLoadErrorPropagates(t *testing.T) {
	mem := repo.NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, "POL-100", dom.Normalize(dom.DefaultTemplate())))

	flaky := &flakyRepo{MemoryRepo: mem, loadErr: errors.New("i/o timeout")}
	svc := NewChecklistService(flaky, nil, nil, nil)

	_, err := svc.SetNotes(ctx, "POL-100", 2, "x")

	assert.Error(t, err)
}

func TestAddTask_TransientLoadErrorPropagates(t *testing.T) {
	mem := repo.NewMemoryRepo()
	ctx := context.Background()
	require.NoError(t, mem.Save(ctx, "POL-100", dom.Normalize(dom.DefaultTemplate())))

	flaky := &flakyRepo{MemoryRepo: mem, loadErr: errors.New("i/o timeout")}
	svc := NewChecklistService(flaky, nil, nil, nil)

	_, err := svc.AddTask(ctx, "POL-100", "Call the carrier rep")
	require.Error(t, err)

	stored, loadErr := mem.Load(ctx, "POL-100")
	require.NoError(t, loadErr)
	assert.Len(t, stored, 10, "no template-derived checklist written")
}

func TestGet_TransientLoadErrorStillRenders(t *testing.T) {
	// The read-only path keeps the template fallback: a view must always
	// render something.
	flaky := &flakyRepo{MemoryRepo: repo.NewMemoryRepo(), loadErr: errors.New("connection reset by peer")}
	svc := NewChecklistService(flaky, nil, nil, nil)

	cl := svc.Get(context.Background(), "POL-100")

	assert.True(t, cl.Equal(dom.Normalize(dom.DefaultTemplate())))
}

func TestGet_ReturnsIndependentCopy(t *testing.T) {
	svc, _, _ := newServiceForTests()
	ctx := context.Background()
	_, err := svc.Toggle(ctx, "POL-100", 1, dom.PolicyRef{})
	require.NoError(t, err)

	first := svc.Get(ctx, "POL-100")
	first[0].Notes = "local mutation"
	first[0].CompletedAt = ""

	again := svc.Get(ctx, "POL-100")
	assert.NotEqual(t, "local mutation", again[0].Notes)
	assert.True(t, again[0].Completed)
}

func TestGet_CountsViolationsOnRead(t *testing.T) {
	svc, r, _ := newServiceForTests()
	ctx := context.Background()

	drifted := dom.DefaultTemplate()
	drifted[0].Completed = true
	drifted[1].Completed = true
	require.NoError(t, r.Save(ctx, "POL-100", drifted))

	cl := svc.Get(ctx, "POL-100")

	assert.Equal(t, 0, dom.CountViolations(cl))
	assert.Equal(t, int64(2), svc.Stats().ViolationsCorrected)
}
