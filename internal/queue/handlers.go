package queue

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"song-request-service/internal/httpx"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	queue *Queue
}

func NewServer(q *Queue) *Server {
	return &Server{queue: q}
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/request", s.HandleSubmit)
	r.Get("/requests", s.HandleList)
	r.Get("/requests/{id}", s.HandleGet)
	r.Patch("/requests/{id}/status", s.HandleUpdateStatus)
}

type submitBody struct {
	TableNo   json.RawMessage `json:"tableNo"`
	SongID    json.RawMessage `json:"songId"`
	SongTitle string          `json:"songTitle"`
	SongURL   string          `json:"songUrl"`
}

// HandleSubmit creates a request.
// POST /request
func (s *Server) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var body submitBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !present(body.TableNo) || !present(body.SongID) {
		httpx.WriteError(w, http.StatusBadRequest, msgFieldsRequired)
		return
	}
	tableNo, err := parseTableNo(body.TableNo)
	if err != nil {
		writeQueueError(w, err)
		return
	}
	songID, err := parseSongID(body.SongID)
	if err != nil {
		writeQueueError(w, err)
		return
	}

	req, err := s.queue.Submit(r.Context(), SubmitInput{
		TableNo:  tableNo,
		SongID:   songID,
		SongName: body.SongTitle,
		SongURL:  body.SongURL,
	})
	if err != nil {
		writeQueueError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, req)
}

// HandleList returns the queue, optionally filtered by ?status=.
// GET /requests
func (s *Server) HandleList(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, s.queue.List(r.Context(), r.URL.Query().Get("status")))
}

// GET /requests/{id}
func (s *Server) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	req, err := s.queue.Get(r.Context(), id)
	if err != nil {
		writeQueueError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

// HandleUpdateStatus sets the status of one request; an empty body marks it DONE.
// PATCH /requests/{id}/status
func (s *Server) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := requestID(r)
	if !ok {
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := s.queue.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeQueueError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, req)
}

// requestID parses the {id} URL parameter. Ids that cannot name a request
// are reported as not found.
func requestID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeQueueError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusBadRequest, ve.msg)
	case errors.Is(err, ErrTableActive):
		httpx.WriteError(w, http.StatusConflict, msgTableActive)
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgNotFound)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
