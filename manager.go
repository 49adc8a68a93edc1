package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// albumManager mirrors the remote album collection locally. The list is
// replaced wholesale by load and patched one element at a time after
// each confirmed mutation. Failed requests are logged and leave the
// state exactly as it was.
//
// Every operation comes in two halves: a request against the api and an
// apply step that reconciles the result. The synchronous methods (Load,
// Add, Update, Delete, SubmitEdit) run both; the UI runs the request in
// a command and calls the apply step from its event loop.
type albumManager struct {
	api albumsAPI

	albums   []Album
	newTitle string
	edit     *editSession
}

// confirmFunc asks the user whether album should be deleted.
type confirmFunc func(album Album) bool

func newAlbumManager(api albumsAPI) *albumManager {
	return &albumManager{api: api}
}

// Albums returns a copy of the local list in display order.
func (m *albumManager) Albums() []Album {
	return slices.Clone(m.albums)
}

func (m *albumManager) NewTitle() string {
	return m.newTitle
}

func (m *albumManager) SetNewTitle(title string) {
	m.newTitle = title
}

// Editing returns the active edit session, if any.
func (m *albumManager) Editing() (editSession, bool) {
	if m.edit == nil {
		return editSession{}, false
	}
	return *m.edit, true
}

func (m *albumManager) Load(ctx context.Context) error {
	albums, err := m.api.ListAlbums(ctx)
	return m.applyLoaded(albums, err)
}

func (m *albumManager) applyLoaded(albums []Album, err error) error {
	if err != nil {
		logFailure("fetch", err)
		return fmt.Errorf("fetching albums: %w", err)
	}

	m.albums = albums
	return nil
}

// Add creates an album from the creation buffer. An empty buffer is a
// no-op.
func (m *albumManager) Add(ctx context.Context) error {
	title := m.newTitle
	if title == "" {
		return nil
	}

	album, err := m.api.CreateAlbum(ctx, title)
	return m.applyCreated(album, err)
}

func (m *albumManager) applyCreated(album *Album, err error) error {
	if err == nil && album == nil {
		err = errors.New("empty create response")
	}
	if err != nil {
		logFailure("add album", err)
		return fmt.Errorf("adding album: %w", err)
	}

	m.albums = append(m.albums, *album)
	m.newTitle = ""
	return nil
}

// Update sets the title of album id. The title is not validated.
func (m *albumManager) Update(ctx context.Context, id int64, title string) error {
	err := m.api.UpdateAlbum(ctx, id, title)
	return m.applyUpdated(id, title, err)
}

// applyUpdated patches the local record from the request input; the
// server response is never merged. An edit session on id ends only when
// the update succeeded.
func (m *albumManager) applyUpdated(id int64, title string, err error) error {
	if err != nil {
		logFailure("update album", err)
		return fmt.Errorf("updating album %d: %w", id, err)
	}

	if i := m.index(id); i >= 0 {
		m.albums[i].Title = title
	}
	if m.edit != nil && m.edit.AlbumID == id {
		m.edit = nil
	}
	return nil
}

// Delete removes album id after confirm approves it. A declined
// confirmation issues no request.
func (m *albumManager) Delete(ctx context.Context, id int64, confirm confirmFunc) error {
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("album %d not found", id)
	}
	if confirm != nil && !confirm(m.albums[i]) {
		return nil
	}

	err := m.api.DeleteAlbum(ctx, id)
	return m.applyDeleted(id, err)
}

// applyDeleted removes album id and ends an edit session on it.
func (m *albumManager) applyDeleted(id int64, err error) error {
	if err != nil {
		logFailure("delete album", err)
		return fmt.Errorf("deleting album %d: %w", id, err)
	}

	m.albums = slices.DeleteFunc(m.albums, func(a Album) bool {
		return a.ID == id
	})
	if m.edit != nil && m.edit.AlbumID == id {
		m.edit = nil
	}
	return nil
}

// BeginEdit starts editing album id, seeding the draft with its current
// title. Any previous session is abandoned.
func (m *albumManager) BeginEdit(id int64) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}

	m.edit = &editSession{AlbumID: id, Draft: m.albums[i].Title}
	return true
}

func (m *albumManager) SetDraft(draft string) {
	if m.edit != nil {
		m.edit.Draft = draft
	}
}

func (m *albumManager) CancelEdit() {
	m.edit = nil
}

// SubmitEdit sends the draft of the active session through Update.
func (m *albumManager) SubmitEdit(ctx context.Context) error {
	if m.edit == nil {
		return nil
	}
	return m.Update(ctx, m.edit.AlbumID, m.edit.Draft)
}

func (m *albumManager) index(id int64) int {
	return slices.IndexFunc(m.albums, func(a Album) bool {
		return a.ID == id
	})
}

// logFailure writes the operator diagnostic for a failed operation: the
// status text for rejections, the error for everything else.
func logFailure(op string, err error) {
	var se *statusError
	if errors.As(err, &se) {
		slog.Error(op+" failed", "status", se.Status)
		return
	}
	slog.Error(op+" error", "error", err)
}
