package domain

import (
	"errors"
	"time"
)

// StatusTopico represents the lifecycle state of a forum topic.
type StatusTopico string

const (
	StatusAbierto StatusTopico = "ABIERTO"
	StatusCerrado StatusTopico = "CERRADO"
)

var (
	ErrTopicoNotFound  = errors.New("topico not found")
	ErrDuplicateTopico = errors.New("topico with same titulo and mensaje already exists")
	// ErrStorageConflict is the unique-index violation surfacing from the store
	// itself, i.e. a concurrent identical create slipped past the pre-check.
	ErrStorageConflict = errors.New("storage integrity conflict")
)

// Topico is the core forum aggregate. The pair (Titulo, Mensaje) is unique
// across all topics; the store's compound index is the authoritative enforcer.
type Topico struct {
	ID            int64        `json:"id"`
	Titulo        string       `json:"titulo"`
	Mensaje       string       `json:"mensaje"`
	FechaCreacion time.Time    `json:"fechaCreacion"`
	Status        StatusTopico `json:"status"`
	Autor         string       `json:"autor"`
	Curso         string       `json:"curso"`
}
