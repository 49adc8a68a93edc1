package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type albumInput struct {
	Title  *string `json:"title"`
	UserID *int64  `json:"userId"`
}

func (s *server) getAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := s.db.GetAlbums(r.Context())
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	if albums == nil {
		albums = []*Album{}
	}
	s.renderJSON(w, http.StatusOK, albums)
}

func (s *server) postAlbum(w http.ResponseWriter, r *http.Request) {
	input, err := decodeAlbumInput(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		s.renderError(w, http.StatusBadRequest, errors.New("title is missing"))
		return
	}

	album := &Album{
		Title: strings.TrimSpace(*input.Title),
	}
	if input.UserID != nil {
		album.UserID = *input.UserID
	}

	err = s.db.CreateAlbum(r.Context(), album)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderJSON(w, http.StatusCreated, album)
}

func (s *server) getAlbum(w http.ResponseWriter, r *http.Request) {
	album, ok := s.loadAlbum(w, r)
	if !ok {
		return
	}

	s.renderJSON(w, http.StatusOK, album)
}

// putAlbum replaces the album's fields. Any title is accepted, blank
// included.
func (s *server) putAlbum(w http.ResponseWriter, r *http.Request) {
	s.updateAlbum(w, r, true)
}

func (s *server) patchAlbum(w http.ResponseWriter, r *http.Request) {
	s.updateAlbum(w, r, false)
}

func (s *server) updateAlbum(w http.ResponseWriter, r *http.Request, replace bool) {
	album, ok := s.loadAlbum(w, r)
	if !ok {
		return
	}

	input, err := decodeAlbumInput(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	if input.Title != nil {
		album.Title = *input.Title
	} else if replace {
		album.Title = ""
	}
	if input.UserID != nil {
		album.UserID = *input.UserID
	}

	err = s.db.UpdateAlbum(r.Context(), album)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	s.renderJSON(w, http.StatusOK, album)
}

func (s *server) deleteAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	deleted, err := s.db.DeleteAlbum(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		s.renderError(w, http.StatusNotFound, errors.New("album not found"))
		return
	}

	s.renderJSON(w, http.StatusOK, struct{}{})
}

// loadAlbum resolves the {id} route parameter, rendering the error
// response itself when the album cannot be loaded.
func (s *server) loadAlbum(w http.ResponseWriter, r *http.Request) (*Album, bool) {
	id, err := extractID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return nil, false
	}

	album, err := s.db.GetAlbum(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.renderError(w, http.StatusNotFound, errors.New("album not found"))
		return nil, false
	} else if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return nil, false
	}

	return album, true
}

func decodeAlbumInput(r *http.Request) (*albumInput, error) {
	var input albumInput
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		return nil, errors.New("invalid album body: " + err.Error())
	}
	return &input, nil
}

func extractID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	return strconv.ParseInt(idStr, 10, 64)
}
