package queue

import (
	"errors"
	"time"
)

const (
	StatusPending = "PENDING"
	StatusPlaying = "PLAYING"
	StatusDone    = "DONE"

	defaultSongName = "(YouTube song)"
)

const (
	msgFieldsRequired = "tableNo and songId are required"
	msgBadTableNo     = "tableNo must be a positive integer"
	msgTableActive    = "This table already has a song pending or playing."
	msgNotFound       = "Not found"
)

type SongRequest struct {
	ID        int64     `json:"id"`
	TableNo   int       `json:"tableNo"`
	SongID    string    `json:"songId"`
	SongName  string    `json:"songName"`
	SongURL   string    `json:"songUrl"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubmitInput struct {
	TableNo  int
	SongID   string
	SongName string
	SongURL  string
}

var (
	// ErrTableActive is returned when the table already has a PENDING or
	// PLAYING request.
	ErrTableActive = errors.New("table already has an active request")
	ErrNotFound    = errors.New("request not found")
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// isActive reports whether status blocks another submission for the table.
func isActive(status string) bool {
	return status == StatusPending || status == StatusPlaying
}
