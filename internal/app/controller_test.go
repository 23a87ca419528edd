package app

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"todos/internal/models"
	"todos/internal/persist"
	"todos/internal/store"
)

// recordingPersister returns a fixed collection from Load and keeps every
// snapshot passed to Save.
type recordingPersister struct {
	mu     sync.Mutex
	loaded models.Tasks
	saves  []models.Tasks
}

func (p *recordingPersister) Load(context.Context) models.Tasks {
	return p.loaded.Clone()
}

func (p *recordingPersister) Save(tasks models.Tasks) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, tasks.Clone())
}

func (p *recordingPersister) saveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func (p *recordingPersister) lastSave() models.Tasks {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}

func texts(ts models.Tasks) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

func TestAdd_AppendsTrimmedOpenTask(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)

	for _, raw := range []string{"Buy milk", "  Call mom ", "x"} {
		before := len(c.Tasks())
		task, err := c.Add(raw)
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", raw, err)
		}

		tasks := c.Tasks()
		if len(tasks) != before+1 {
			t.Fatalf("Add(%q): expected %d tasks, got %d", raw, before+1, len(tasks))
		}
		last := tasks[len(tasks)-1]
		if last != task {
			t.Errorf("Add(%q): expected returned task at the end, got %+v", raw, last)
		}
		if last.Completed {
			t.Errorf("Add(%q): expected new task to be open", raw)
		}
	}

	want := []string{"Buy milk", "Call mom", "x"}
	if got := texts(c.Tasks()); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if p.saveCount() != 3 {
		t.Errorf("expected 3 saves, got %d", p.saveCount())
	}
}

func TestAdd_BlankInputRaisesAlert(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		p := &recordingPersister{}
		c := NewController(p)
		c.Add("Buy milk")

		_, err := c.Add(raw)
		if !errors.Is(err, models.ErrEmptyText) {
			t.Fatalf("Add(%q): expected ErrEmptyText, got %v", raw, err)
		}

		s := c.State()
		if len(s.Tasks) != 1 {
			t.Errorf("Add(%q): expected collection unchanged, got %d tasks", raw, len(s.Tasks))
		}
		if s.Alert == nil || s.Alert.Message != "Please enter a task." {
			t.Errorf("Add(%q): expected validation alert, got %+v", raw, s.Alert)
		}
		if p.saveCount() != 1 {
			t.Errorf("Add(%q): expected no save for rejected input, got %d saves", raw, p.saveCount())
		}

		c.DismissAlert()
		if c.State().Alert != nil {
			t.Errorf("Add(%q): expected alert dismissed", raw)
		}
	}
}

func TestSubmit_ClearsDraftOnSuccess(t *testing.T) {
	c := NewController(&recordingPersister{})

	c.SetDraft("  Buy milk  ")
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if d := c.State().Draft; d != "" {
		t.Errorf("expected draft cleared, got %q", d)
	}

	c.SetDraft("   ")
	if _, err := c.Submit(); err == nil {
		t.Fatal("expected Submit of blank draft to fail")
	}
	if d := c.State().Draft; d != "   " {
		t.Errorf("expected draft kept after failure, got %q", d)
	}
}

func TestToggle_TwiceRestores(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)
	a, _ := c.Add("Buy milk")
	b, _ := c.Add("Call mom")

	c.Toggle(a.ID)
	tasks := c.Tasks()
	if !tasks[0].Completed {
		t.Error("expected first task completed")
	}
	if tasks[1] != b {
		t.Errorf("expected second task unaffected, got %+v", tasks[1])
	}

	c.Toggle(a.ID)
	if c.Tasks()[0] != a {
		t.Errorf("expected double toggle to restore, got %+v", c.Tasks()[0])
	}
}

func TestToggle_UnknownIDIsNoop(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)
	c.Add("Buy milk")
	before := c.Tasks()

	c.Toggle("missing")
	if !reflect.DeepEqual(c.Tasks(), before) {
		t.Errorf("expected unchanged collection, got %+v", c.Tasks())
	}
}

func TestRemove_RequiresConfirmation(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)
	a, _ := c.Add("Buy milk")
	c.Add("Call mom")

	if err := c.RequestRemove(a.ID); err != nil {
		t.Fatalf("expected removal request to open, got %v", err)
	}
	s := c.State()
	if s.PendingRemoval == nil || s.PendingRemoval.ID != a.ID {
		t.Fatalf("expected pending removal of %q, got %+v", a.ID, s.PendingRemoval)
	}
	if len(s.Tasks) != 2 {
		t.Fatal("expected nothing removed before confirmation")
	}

	c.CancelRemove()
	s = c.State()
	if s.PendingRemoval != nil {
		t.Error("expected dialog closed after cancel")
	}
	if len(s.Tasks) != 2 {
		t.Errorf("expected cancel to keep the collection, got %d tasks", len(s.Tasks))
	}

	c.RequestRemove(a.ID)
	c.ConfirmRemove()
	if got := texts(c.Tasks()); !reflect.DeepEqual(got, []string{"Call mom"}) {
		t.Errorf("expected [Call mom], got %v", got)
	}
	if c.State().PendingRemoval != nil {
		t.Error("expected dialog closed after confirm")
	}
}

func TestRemove_UnknownIDOpensNothing(t *testing.T) {
	c := NewController(&recordingPersister{})
	c.Add("Buy milk")

	if err := c.RequestRemove("missing"); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("expected ErrUnknownTask, got %v", err)
	}
	c.ConfirmRemove()
	if len(c.Tasks()) != 1 {
		t.Error("expected confirm without a pending removal to be a no-op")
	}
}

func TestSubmit_IsAtomicWithItsDraft(t *testing.T) {
	c := NewController(&recordingPersister{})

	c.SetDraft("from A")
	c.SetDraft("from B")
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := c.Add("from A"); err != nil {
		t.Fatalf("Add alongside a submitted draft failed: %v", err)
	}

	if got := texts(c.Tasks()); !reflect.DeepEqual(got, []string{"from B", "from A"}) {
		t.Errorf("expected both tasks kept, got %v", got)
	}
	if c.State().Alert != nil {
		t.Errorf("expected no alert, got %+v", c.State().Alert)
	}
}

func TestAlert_BlocksChangesUntilDismissed(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)
	a, _ := c.Add("Buy milk")
	c.Add("  ")

	if !c.State().Blocked() {
		t.Fatal("expected alert to block the screen")
	}
	if _, err := c.Add("Call mom"); !errors.Is(err, ErrDialogOpen) {
		t.Errorf("Add: expected ErrDialogOpen, got %v", err)
	}
	if err := c.Toggle(a.ID); !errors.Is(err, ErrDialogOpen) {
		t.Errorf("Toggle: expected ErrDialogOpen, got %v", err)
	}
	if err := c.RequestRemove(a.ID); !errors.Is(err, ErrDialogOpen) {
		t.Errorf("RequestRemove: expected ErrDialogOpen, got %v", err)
	}
	if want := (models.Tasks{a}); !reflect.DeepEqual(c.Tasks(), want) {
		t.Errorf("expected %+v unchanged, got %+v", want, c.Tasks())
	}
	if p.saveCount() != 1 {
		t.Errorf("expected no saves while blocked, got %d", p.saveCount())
	}

	c.DismissAlert()
	if _, err := c.Add("Call mom"); err != nil {
		t.Fatalf("Add after dismiss failed: %v", err)
	}
	s := c.State()
	if s.Alert != nil || s.Blocked() {
		t.Errorf("expected no alert after a successful add, got %+v", s.Alert)
	}
}

func TestPendingRemoval_BlocksOtherChanges(t *testing.T) {
	c := NewController(&recordingPersister{})
	a, _ := c.Add("Buy milk")
	b, _ := c.Add("Call mom")

	if err := c.RequestRemove(a.ID); err != nil {
		t.Fatalf("RequestRemove failed: %v", err)
	}
	if err := c.RequestRemove(a.ID); err != nil {
		t.Errorf("expected repeating the open request to be accepted, got %v", err)
	}
	if err := c.RequestRemove(b.ID); !errors.Is(err, ErrDialogOpen) {
		t.Errorf("expected ErrDialogOpen for another task, got %v", err)
	}
	if err := c.Toggle(b.ID); !errors.Is(err, ErrDialogOpen) {
		t.Errorf("expected ErrDialogOpen for toggle, got %v", err)
	}
	if _, err := c.Add("Pay rent"); !errors.Is(err, ErrDialogOpen) {
		t.Errorf("expected ErrDialogOpen for add, got %v", err)
	}
	if p := c.State().PendingRemoval; p == nil || p.ID != a.ID {
		t.Fatalf("expected %q still pending, got %+v", a.ID, p)
	}

	c.ConfirmRemove()
	if got := texts(c.Tasks()); !reflect.DeepEqual(got, []string{"Call mom"}) {
		t.Errorf("expected [Call mom], got %v", got)
	}
}

func TestScenario_BuyMilkCallMom(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)
	c.Hydrate(context.Background())

	first, _ := c.Add("Buy milk")
	second, _ := c.Add("Call mom")
	c.Toggle(first.ID)

	want := models.Tasks{
		{ID: first.ID, Text: "Buy milk", Completed: true},
		{ID: second.ID, Text: "Call mom", Completed: false},
	}
	if !reflect.DeepEqual(c.Tasks(), want) {
		t.Fatalf("expected %+v, got %+v", want, c.Tasks())
	}

	c.RequestRemove(second.ID)
	c.ConfirmRemove()

	want = models.Tasks{{ID: first.ID, Text: "Buy milk", Completed: true}}
	if !reflect.DeepEqual(c.Tasks(), want) {
		t.Fatalf("expected %+v, got %+v", want, c.Tasks())
	}
	if !reflect.DeepEqual(p.lastSave(), want) {
		t.Errorf("expected last save to match state, got %+v", p.lastSave())
	}
}

func TestHydrate_DoesNotSave(t *testing.T) {
	p := &recordingPersister{loaded: models.Tasks{{ID: "1", Text: "Buy milk"}}}
	c := NewController(p)

	if c.State().Hydrated {
		t.Error("expected not hydrated before load")
	}
	c.Hydrate(context.Background())

	s := c.State()
	if !s.Hydrated {
		t.Error("expected hydrated after load")
	}
	if len(s.Tasks) != 1 || s.Tasks[0].Text != "Buy milk" {
		t.Errorf("expected loaded tasks, got %+v", s.Tasks)
	}
	if p.saveCount() != 0 {
		t.Errorf("expected hydration not to save, got %d saves", p.saveCount())
	}
}

// A hydration that completes after the user started editing replaces the
// edits. This is accepted behaviour, pinned here so a change is deliberate.
func TestHydrate_LateLoadOverwritesEdits(t *testing.T) {
	p := &recordingPersister{loaded: models.Tasks{{ID: "stored", Text: "From disk"}}}
	c := NewController(p)

	typed, _ := c.Add("Typed before load")
	c.RequestRemove(typed.ID)

	c.Hydrate(context.Background())

	s := c.State()
	if got := texts(s.Tasks); !reflect.DeepEqual(got, []string{"From disk"}) {
		t.Errorf("expected stored tasks to win, got %v", got)
	}
	if s.PendingRemoval != nil {
		t.Errorf("expected pending removal of a vanished task to close, got %+v", s.PendingRemoval)
	}
}

func TestState_IsASnapshot(t *testing.T) {
	c := NewController(&recordingPersister{})
	c.Add("Buy milk")

	s := c.State()
	s.Tasks[0].Text = "mutated"

	if c.Tasks()[0].Text != "Buy milk" {
		t.Error("expected controller state isolated from snapshot edits")
	}
}

func TestToggleTheme_DoesNotSave(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p, WithDark(true), WithTitle("Chores"))

	s := c.State()
	if !s.Dark || s.Title != "Chores" {
		t.Fatalf("expected options applied, got dark=%v title=%q", s.Dark, s.Title)
	}

	if dark := c.ToggleTheme(); dark {
		t.Error("expected light theme after toggle")
	}
	if p.saveCount() != 0 {
		t.Errorf("expected theme toggle not to save, got %d saves", p.saveCount())
	}
}

func TestController_PersistsThroughAdapter(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	adapter := persist.New(s, "", zerolog.Nop())
	c := NewController(adapter)
	c.Hydrate(ctx)
	a, _ := c.Add("Buy milk")
	c.Add("Call mom")
	c.Toggle(a.ID)
	adapter.Close()

	reopened := persist.New(s, "", zerolog.Nop())
	defer reopened.Close()
	restored := NewController(reopened)
	restored.Hydrate(ctx)

	if !reflect.DeepEqual(restored.Tasks(), c.Tasks()) {
		t.Errorf("expected %+v after restart, got %+v", c.Tasks(), restored.Tasks())
	}
}

func TestController_ConcurrentMutations(t *testing.T) {
	p := &recordingPersister{}
	c := NewController(p)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := c.Add("task")
			if err != nil {
				t.Errorf("Add failed: %v", err)
				return
			}
			c.Toggle(task.ID)
		}()
	}
	wg.Wait()

	tasks := c.Tasks()
	if len(tasks) != 20 {
		t.Fatalf("expected 20 tasks, got %d", len(tasks))
	}
	for _, task := range tasks {
		if !task.Completed {
			t.Errorf("expected %s completed", task.ID)
		}
	}
	if !reflect.DeepEqual(p.lastSave(), tasks) {
		t.Error("expected the last save to carry the final collection")
	}
}
