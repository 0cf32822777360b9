package domain_test

import (
	"testing"
	"time"

	"taskdeck/internal/modules/tasks/domain"
)

func seedState() domain.State {
	return domain.State{
		ActiveFilter: domain.FilterAll,
		Tasks: []domain.Task{
			{ID: "t1", Title: "write report", Completed: false},
			{ID: "t2", Title: "ship release", Completed: true},
		},
	}
}

func TestReduceToggleIsItsOwnInverse(t *testing.T) {
	t.Parallel()
	state := seedState()

	state = domain.Reduce(state, domain.CompletionToggled{ID: "t1"})
	if task, _ := state.Find("t1"); !task.Completed {
		t.Fatalf("toggle must flip t1 to completed")
	}
	state = domain.Reduce(state, domain.CompletionToggled{ID: "t1"})
	if task, _ := state.Find("t1"); task.Completed {
		t.Fatalf("second toggle must flip t1 back")
	}
}

func TestReduceIgnoresUnknownIDs(t *testing.T) {
	t.Parallel()
	state := seedState()

	next := domain.Reduce(state, domain.CompletionToggled{ID: "missing"})
	if len(next.Tasks) != 2 {
		t.Fatalf("toggle of unknown id must be a no-op")
	}
	next = domain.Reduce(next, domain.TaskUpdated{ID: "missing", UpdatedAt: time.Now()})
	if len(next.Tasks) != 2 {
		t.Fatalf("update of unknown id must be a no-op")
	}
	next = domain.Reduce(next, domain.TaskRemoved{ID: "missing"})
	if len(next.Tasks) != 2 {
		t.Fatalf("remove of unknown id must be a no-op")
	}
}

func TestReduceDoesNotAliasThePriorSlice(t *testing.T) {
	t.Parallel()
	state := seedState()
	next := domain.Reduce(state, domain.CompletionToggled{ID: "t1"})
	if task, _ := state.Find("t1"); task.Completed {
		t.Fatalf("prior state must be left untouched by a reduce")
	}
	if task, _ := next.Find("t1"); !task.Completed {
		t.Fatalf("next state must carry the flip")
	}
}

func TestFilteredAndCounts(t *testing.T) {
	t.Parallel()
	state := seedState()

	all, active, completed := state.Counts()
	if all != 2 || active != 1 || completed != 1 {
		t.Fatalf("counts mismatch: all=%d active=%d completed=%d", all, active, completed)
	}

	state = domain.Reduce(state, domain.FilterChanged{Filter: domain.FilterActive})
	visible := state.Filtered()
	if len(visible) != 1 || visible[0].ID != "t1" {
		t.Fatalf("active filter must show only t1, got %+v", visible)
	}

	state = domain.Reduce(state, domain.FilterChanged{Filter: domain.FilterCompleted})
	visible = state.Filtered()
	if len(visible) != 1 || visible[0].ID != "t2" {
		t.Fatalf("completed filter must show only t2, got %+v", visible)
	}
}

func TestReduceModalLifecycle(t *testing.T) {
	t.Parallel()
	state := seedState()

	state = domain.Reduce(state, domain.ModalOpened{Mode: domain.ModalEdit, TaskID: "t1"})
	if !state.ModalOpen || state.ModalMode != domain.ModalEdit || state.EditingTaskID != "t1" {
		t.Fatalf("open must set mode and editing id, got %+v", state)
	}

	state = domain.Reduce(state, domain.ModalClosed{})
	if state.ModalOpen || state.ModalMode != "" || state.EditingTaskID != "" {
		t.Fatalf("close must clear mode and editing id, got %+v", state)
	}

	state = domain.Reduce(state, domain.ModalOpened{Mode: domain.ModalAdd})
	if !state.ModalOpen || state.ModalMode != domain.ModalAdd || state.EditingTaskID != "" {
		t.Fatalf("add mode carries no editing id, got %+v", state)
	}
}

func TestValidateTitleAndDescription(t *testing.T) {
	t.Parallel()
	if _, err := domain.ValidateTitle("   "); err == nil {
		t.Fatalf("whitespace title must fail")
	}
	title, err := domain.ValidateTitle("  buy milk  ")
	if err != nil || title != "buy milk" {
		t.Fatalf("title must be trimmed, got %q err=%v", title, err)
	}
	long := make([]byte, domain.TitleMaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := domain.ValidateTitle(string(long)); err == nil {
		t.Fatalf("over-long title must fail")
	}
	big := make([]byte, domain.DescriptionMaxLen+1)
	for i := range big {
		big[i] = 'b'
	}
	if err := domain.ValidateDescription(string(big)); err == nil {
		t.Fatalf("over-long description must fail")
	}
}
