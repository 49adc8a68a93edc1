package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusRegion int

const (
	focusList focusRegion = iota
	focusInput
	focusEdit
	focusConfirm
)

// Results of the album requests, delivered back to the event loop.
type (
	albumsLoadedMsg struct {
		albums []Album
		err    error
	}

	albumCreatedMsg struct {
		album *Album
		err   error
	}

	albumUpdatedMsg struct {
		id    int64
		title string
		err   error
	}

	albumDeletedMsg struct {
		id  int64
		err error
	}
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(6).Align(lipgloss.Right)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// uiModel is the interactive album manager. Requests run as commands
// off the event loop; their results are applied to the manager when the
// matching message arrives, always against the current list.
type uiModel struct {
	ctx     context.Context
	api     albumsAPI
	manager *albumManager
	keys    keyMap

	focus  focusRegion
	cursor int
	width  int
	height int

	newInput  textinput.Model
	editInput textinput.Model

	// confirmID is the album awaiting a delete answer.
	confirmID int64

	// pending holds albums with an update or delete in flight. A second
	// request on the same album is refused until the first resolves.
	pending map[int64]bool
	loading bool
}

func newUIModel(ctx context.Context, api albumsAPI) uiModel {
	newInput := textinput.New()
	newInput.Placeholder = "Enter album title"
	newInput.Prompt = "+ "

	editInput := textinput.New()
	editInput.Prompt = ""

	return uiModel{
		ctx:       ctx,
		api:       api,
		manager:   newAlbumManager(api),
		keys:      defaultKeyMap,
		newInput:  newInput,
		editInput: editInput,
		pending:   make(map[int64]bool),
		loading:   true,
	}
}

func (model uiModel) Init() tea.Cmd {
	return model.fetchAlbums()
}

func (model uiModel) fetchAlbums() tea.Cmd {
	ctx, api := model.ctx, model.api
	return func() tea.Msg {
		albums, err := api.ListAlbums(ctx)
		return albumsLoadedMsg{albums: albums, err: err}
	}
}

func (model uiModel) createAlbum(title string) tea.Cmd {
	ctx, api := model.ctx, model.api
	return func() tea.Msg {
		album, err := api.CreateAlbum(ctx, title)
		return albumCreatedMsg{album: album, err: err}
	}
}

func (model uiModel) updateAlbum(id int64, title string) tea.Cmd {
	ctx, api := model.ctx, model.api
	return func() tea.Msg {
		err := api.UpdateAlbum(ctx, id, title)
		return albumUpdatedMsg{id: id, title: title, err: err}
	}
}

func (model uiModel) deleteAlbum(id int64) tea.Cmd {
	ctx, api := model.ctx, model.api
	return func() tea.Msg {
		err := api.DeleteAlbum(ctx, id)
		return albumDeletedMsg{id: id, err: err}
	}
}

func (model uiModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.newInput.Width = max(message.Width-4, 0)
		model.editInput.Width = max(message.Width-12, 0)

	case albumsLoadedMsg:
		model.loading = false
		_ = model.manager.applyLoaded(message.albums, message.err)
		model.clampCursor()

	case albumCreatedMsg:
		if model.manager.applyCreated(message.album, message.err) == nil {
			model.newInput.SetValue("")
		}

	case albumUpdatedMsg:
		delete(model.pending, message.id)
		_ = model.manager.applyUpdated(message.id, message.title, message.err)
		if _, editing := model.manager.Editing(); !editing && model.focus == focusEdit {
			model.focus = focusList
			model.editInput.Blur()
		}

	case albumDeletedMsg:
		delete(model.pending, message.id)
		_ = model.manager.applyDeleted(message.id, message.err)
		if _, editing := model.manager.Editing(); !editing && model.focus == focusEdit {
			model.focus = focusList
			model.editInput.Blur()
		}
		model.clampCursor()

	case tea.KeyMsg:
		switch model.focus {
		case focusInput:
			return model.handleInputKeys(message)
		case focusEdit:
			return model.handleEditKeys(message)
		case focusConfirm:
			return model.handleConfirmKeys(message)
		default:
			return model.handleListKeys(message)
		}
	}

	return model, nil
}

func (model uiModel) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.manager.albums)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Add):
		model.focus = focusInput
		return model, model.newInput.Focus()

	case key.Matches(message, model.keys.Edit):
		if !model.startEdit() {
			return model, nil
		}
		return model, model.editInput.Focus()

	case key.Matches(message, model.keys.Delete):
		album, ok := model.selected()
		if !ok || model.pending[album.ID] {
			return model, nil
		}
		model.confirmID = album.ID
		model.focus = focusConfirm
	}

	return model, nil
}

// handleInputKeys edits the creation buffer. Enter submits it; an empty
// buffer submits nothing.
func (model uiModel) handleInputKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.Cancel):
		model.focus = focusList
		model.newInput.Blur()
		return model, nil

	case key.Matches(message, model.keys.Submit):
		title := model.manager.NewTitle()
		if title == "" {
			return model, nil
		}
		return model, model.createAlbum(title)
	}

	var cmd tea.Cmd
	model.newInput, cmd = model.newInput.Update(message)
	model.manager.SetNewTitle(model.newInput.Value())
	return model, cmd
}

// handleEditKeys edits the draft of the active session. Edit mode ends
// when the update is confirmed or the edit is cancelled; a failed update
// keeps the draft for another attempt.
func (model uiModel) handleEditKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	session, editing := model.manager.Editing()
	if !editing {
		model.focus = focusList
		model.editInput.Blur()
		return model, nil
	}

	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case key.Matches(message, model.keys.Cancel):
		model.manager.CancelEdit()
		model.focus = focusList
		model.editInput.Blur()
		return model, nil

	// Arrows move the edit to the neighbouring row, abandoning the draft.
	case message.Type == tea.KeyUp || message.Type == tea.KeyDown:
		cursor := model.cursor
		if message.Type == tea.KeyUp && model.cursor > 0 {
			model.cursor--
		} else if message.Type == tea.KeyDown && model.cursor < len(model.manager.albums)-1 {
			model.cursor++
		}
		if model.cursor != cursor && !model.startEdit() {
			model.cursor = cursor
		}
		return model, nil

	case key.Matches(message, model.keys.Submit):
		if model.pending[session.AlbumID] {
			return model, nil
		}
		model.pending[session.AlbumID] = true
		return model, model.updateAlbum(session.AlbumID, session.Draft)
	}

	var cmd tea.Cmd
	model.editInput, cmd = model.editInput.Update(message)
	model.manager.SetDraft(model.editInput.Value())
	return model, cmd
}

// handleConfirmKeys answers the delete prompt. Anything but yes declines.
func (model uiModel) handleConfirmKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	id := model.confirmID
	model.confirmID = 0
	model.focus = focusList

	if !key.Matches(message, model.keys.Confirm) || model.pending[id] {
		return model, nil
	}

	model.pending[id] = true
	return model, model.deleteAlbum(id)
}

// startEdit begins an edit session on the selected album. Albums with a
// request in flight cannot be edited.
func (model *uiModel) startEdit() bool {
	album, ok := model.selected()
	if !ok || model.pending[album.ID] || !model.manager.BeginEdit(album.ID) {
		return false
	}
	model.editInput.SetValue(album.Title)
	model.editInput.CursorEnd()
	model.focus = focusEdit
	return true
}

func (model uiModel) selected() (Album, bool) {
	albums := model.manager.albums
	if model.cursor < 0 || model.cursor >= len(albums) {
		return Album{}, false
	}
	return albums[model.cursor], true
}

func (model *uiModel) clampCursor() {
	model.cursor = min(model.cursor, len(model.manager.albums)-1)
	model.cursor = max(model.cursor, 0)
}

func (model uiModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Albums Collection"))
	b.WriteString("\n\n")
	b.WriteString(model.newInput.View())
	b.WriteString("\n\n")

	albums := model.manager.albums
	session, editing := model.manager.Editing()

	switch {
	case model.loading:
		b.WriteString("  loading albums…\n")
	case len(albums) == 0:
		b.WriteString("  no albums\n")
	}

	first, last := model.visibleRange(len(albums))
	for i := first; i < last; i++ {
		album := albums[i]

		line := idStyle.Render(fmt.Sprint(album.ID)) + "  "
		if editing && session.AlbumID == album.ID {
			line += model.editInput.View()
		} else {
			line += album.Title
		}
		if model.pending[album.ID] {
			line += " " + pendingStyle.Render("…")
		}

		if i == model.cursor && model.focus == focusList {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(model.statusLine())
	return b.String()
}

// visibleRange returns the slice of rows that fits the window, keeping
// the cursor on screen. An unknown height shows every row.
func (model uiModel) visibleRange(total int) (int, int) {
	rows := model.height - 7
	if model.height == 0 || rows <= 0 || total <= rows {
		return 0, total
	}

	first := max(model.cursor-rows/2, 0)
	first = min(first, total-rows)
	return first, first + rows
}

func (model uiModel) statusLine() string {
	if model.focus == focusConfirm {
		title := ""
		if i := model.manager.index(model.confirmID); i >= 0 {
			title = model.manager.albums[i].Title
		}
		return promptStyle.Render(fmt.Sprintf("Are you sure you want to delete %q? (y/N)", title))
	}

	bindings := model.keys.listHelp()
	if model.focus == focusInput || model.focus == focusEdit {
		bindings = model.keys.inputHelp()
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// runUI runs the interactive manager until the user quits. In-flight
// requests are abandoned when it returns.
func runUI(ctx context.Context, api albumsAPI) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newUIModel(ctx, api), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
