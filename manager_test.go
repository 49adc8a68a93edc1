package main

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
)

// fakeAPI records calls and answers from canned results.
type fakeAPI struct {
	albums []Album
	nextID int64

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	calls []string
}

func (f *fakeAPI) ListAlbums(ctx context.Context) ([]Album, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.albums), nil
}

func (f *fakeAPI) CreateAlbum(ctx context.Context, title string) (*Album, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &Album{ID: f.nextID, Title: title}, nil
}

func (f *fakeAPI) UpdateAlbum(ctx context.Context, id int64, title string) error {
	f.calls = append(f.calls, "update")
	return f.updateErr
}

func (f *fakeAPI) DeleteAlbum(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	return f.deleteErr
}

var rejected = &statusError{Code: http.StatusInternalServerError, Status: "500 Internal Server Error"}

func testAlbums() []Album {
	return []Album{
		{ID: 1, UserID: 1, Title: "quidem molestiae enim"},
		{ID: 2, UserID: 1, Title: "sunt qui excepturi placeat culpa"},
		{ID: 3, UserID: 2, Title: "omnis laborum odio"},
	}
}

func loadedManager(t *testing.T, api *fakeAPI) *albumManager {
	t.Helper()
	manager := newAlbumManager(api)
	if err := manager.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	api.calls = nil
	return manager
}

func TestLoad(t *testing.T) {
	api := &fakeAPI{albums: testAlbums()}
	manager := newAlbumManager(api)

	if err := manager.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(manager.Albums(), testAlbums()) {
		t.Errorf("albums = %v, want server order %v", manager.Albums(), testAlbums())
	}
}

func TestLoadFailureLeavesListEmpty(t *testing.T) {
	for _, err := range []error{rejected, &transportError{Err: errors.New("dial tcp: connection refused")}} {
		api := &fakeAPI{albums: testAlbums(), listErr: err}
		manager := newAlbumManager(api)

		if manager.Load(context.Background()) == nil {
			t.Fatal("expected load error")
		}
		if len(manager.Albums()) != 0 {
			t.Errorf("albums = %v, want empty", manager.Albums())
		}
		if len(api.calls) != 1 {
			t.Errorf("calls = %v, want a single list without retry", api.calls)
		}
	}
}

func TestAddAppendsCreatedAlbum(t *testing.T) {
	for _, title := range []string{"x", "Abbey Road", "  padded  ", "ünïcode ✓"} {
		t.Run(title, func(t *testing.T) {
			api := &fakeAPI{albums: testAlbums(), nextID: 101}
			manager := loadedManager(t, api)
			manager.SetNewTitle(title)

			if err := manager.Add(context.Background()); err != nil {
				t.Fatalf("Add: %v", err)
			}

			want := append(testAlbums(), Album{ID: 101, Title: title})
			if !slices.Equal(manager.Albums(), want) {
				t.Errorf("albums = %v, want %v", manager.Albums(), want)
			}
			if manager.NewTitle() != "" {
				t.Errorf("creation buffer = %q, want empty", manager.NewTitle())
			}
		})
	}
}

func TestAddEmptyTitleIsNoop(t *testing.T) {
	api := &fakeAPI{albums: testAlbums(), nextID: 101}
	manager := loadedManager(t, api)

	if err := manager.Add(context.Background()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(api.calls) != 0 {
		t.Errorf("calls = %v, want none", api.calls)
	}
	if !slices.Equal(manager.Albums(), testAlbums()) {
		t.Errorf("albums changed: %v", manager.Albums())
	}
	if manager.NewTitle() != "" {
		t.Errorf("creation buffer = %q, want empty", manager.NewTitle())
	}
}

func TestAddFailureKeepsBuffer(t *testing.T) {
	api := &fakeAPI{albums: testAlbums(), createErr: rejected}
	manager := loadedManager(t, api)
	manager.SetNewTitle("Revolver")

	if manager.Add(context.Background()) == nil {
		t.Fatal("expected add error")
	}
	if manager.NewTitle() != "Revolver" {
		t.Errorf("creation buffer = %q, want the typed title", manager.NewTitle())
	}
	if !slices.Equal(manager.Albums(), testAlbums()) {
		t.Errorf("albums changed: %v", manager.Albums())
	}
}

func TestUpdatePatchesOnlyTarget(t *testing.T) {
	for _, title := range []string{"new title", ""} {
		for _, target := range testAlbums() {
			api := &fakeAPI{albums: testAlbums()}
			manager := loadedManager(t, api)

			if err := manager.Update(context.Background(), target.ID, title); err != nil {
				t.Fatalf("Update: %v", err)
			}

			got := manager.Albums()
			want := testAlbums()
			if len(got) != len(want) {
				t.Fatalf("len = %d, want %d", len(got), len(want))
			}
			for i := range want {
				if want[i].ID == target.ID {
					want[i].Title = title
				}
				if got[i] != want[i] {
					t.Errorf("album %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		}
	}
}

func TestUpdateFailureLeavesList(t *testing.T) {
	api := &fakeAPI{albums: testAlbums(), updateErr: rejected}
	manager := loadedManager(t, api)

	if manager.Update(context.Background(), 2, "changed") == nil {
		t.Fatal("expected update error")
	}
	if !slices.Equal(manager.Albums(), testAlbums()) {
		t.Errorf("albums changed: %v", manager.Albums())
	}
}

func TestDeleteRemovesTarget(t *testing.T) {
	for _, target := range testAlbums() {
		api := &fakeAPI{albums: testAlbums()}
		manager := loadedManager(t, api)

		if err := manager.Delete(context.Background(), target.ID, nil); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		want := slices.DeleteFunc(testAlbums(), func(a Album) bool { return a.ID == target.ID })
		if !slices.Equal(manager.Albums(), want) {
			t.Errorf("albums = %v, want %v", manager.Albums(), want)
		}
	}
}

func TestDeleteDeclinedIssuesNoRequest(t *testing.T) {
	api := &fakeAPI{albums: testAlbums()}
	manager := loadedManager(t, api)

	var asked Album
	err := manager.Delete(context.Background(), 2, func(album Album) bool {
		asked = album
		return false
	})
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if asked.ID != 2 {
		t.Errorf("confirmation asked for %+v, want album 2", asked)
	}
	if len(api.calls) != 0 {
		t.Errorf("calls = %v, want none", api.calls)
	}
	if !slices.Equal(manager.Albums(), testAlbums()) {
		t.Errorf("albums changed: %v", manager.Albums())
	}
}

func TestDeleteFailureLeavesList(t *testing.T) {
	api := &fakeAPI{albums: testAlbums(), deleteErr: &transportError{Err: errors.New("timeout")}}
	manager := loadedManager(t, api)

	if manager.Delete(context.Background(), 1, nil) == nil {
		t.Fatal("expected delete error")
	}
	if !slices.Equal(manager.Albums(), testAlbums()) {
		t.Errorf("albums changed: %v", manager.Albums())
	}
}

func TestEditSession(t *testing.T) {
	api := &fakeAPI{albums: testAlbums()}
	manager := loadedManager(t, api)

	if !manager.BeginEdit(1) {
		t.Fatal("BeginEdit(1) = false")
	}
	manager.SetDraft("abandoned draft")

	if !manager.BeginEdit(2) {
		t.Fatal("BeginEdit(2) = false")
	}
	session, ok := manager.Editing()
	if !ok || session.AlbumID != 2 || session.Draft != testAlbums()[1].Title {
		t.Errorf("session = %+v, %v; want album 2 seeded with its title", session, ok)
	}
	if manager.Albums()[0].Title != testAlbums()[0].Title {
		t.Errorf("album 1 title changed to %q", manager.Albums()[0].Title)
	}

	manager.CancelEdit()
	if _, ok := manager.Editing(); ok {
		t.Error("session still active after cancel")
	}
	if len(api.calls) != 0 {
		t.Errorf("calls = %v, want none", api.calls)
	}

	if manager.BeginEdit(42) {
		t.Error("BeginEdit on unknown album succeeded")
	}
}

func TestSubmitEdit(t *testing.T) {
	t.Run("success exits edit mode", func(t *testing.T) {
		api := &fakeAPI{albums: testAlbums()}
		manager := loadedManager(t, api)
		manager.BeginEdit(3)
		manager.SetDraft("renamed")

		if err := manager.SubmitEdit(context.Background()); err != nil {
			t.Fatalf("SubmitEdit: %v", err)
		}
		if _, ok := manager.Editing(); ok {
			t.Error("session still active after successful update")
		}
		if manager.Albums()[2].Title != "renamed" {
			t.Errorf("title = %q, want renamed", manager.Albums()[2].Title)
		}
	})

	t.Run("failure keeps the draft", func(t *testing.T) {
		api := &fakeAPI{albums: testAlbums(), updateErr: rejected}
		manager := loadedManager(t, api)
		manager.BeginEdit(3)
		manager.SetDraft("renamed")

		if manager.SubmitEdit(context.Background()) == nil {
			t.Fatal("expected update error")
		}
		session, ok := manager.Editing()
		if !ok || session.Draft != "renamed" {
			t.Errorf("session = %+v, %v; want the draft kept", session, ok)
		}
		if !slices.Equal(manager.Albums(), testAlbums()) {
			t.Errorf("albums changed: %v", manager.Albums())
		}
	})

	t.Run("creation buffer is independent", func(t *testing.T) {
		api := &fakeAPI{albums: testAlbums()}
		manager := loadedManager(t, api)
		manager.SetNewTitle("typed")
		manager.BeginEdit(1)

		if err := manager.SubmitEdit(context.Background()); err != nil {
			t.Fatalf("SubmitEdit: %v", err)
		}
		if manager.NewTitle() != "typed" {
			t.Errorf("creation buffer = %q, want typed", manager.NewTitle())
		}
	})
}

func TestUpdateThenDeleteScenario(t *testing.T) {
	api := &fakeAPI{albums: []Album{{ID: 1, Title: "X"}}}
	manager := loadedManager(t, api)

	if err := manager.Update(context.Background(), 1, "Y"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if want := []Album{{ID: 1, Title: "Y"}}; !slices.Equal(manager.Albums(), want) {
		t.Fatalf("albums = %v, want %v", manager.Albums(), want)
	}

	if err := manager.Delete(context.Background(), 1, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(manager.Albums()) != 0 {
		t.Errorf("albums = %v, want empty", manager.Albums())
	}
}

func TestDeleteEndsEditSessionOnAlbum(t *testing.T) {
	api := &fakeAPI{albums: testAlbums()}
	manager := loadedManager(t, api)

	manager.BeginEdit(2)
	if err := manager.Delete(context.Background(), 3, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if session, ok := manager.Editing(); !ok || session.AlbumID != 2 {
		t.Errorf("session = %+v, %v; want album 2 untouched", session, ok)
	}

	if err := manager.Delete(context.Background(), 2, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := manager.Editing(); ok {
		t.Error("session still active on a deleted album")
	}
	if manager.SubmitEdit(context.Background()) != nil || slices.Contains(api.calls, "update") {
		t.Errorf("calls = %v, want no update", api.calls)
	}
}
