package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultSortBy   = "fechaCreacion"
)

// sortFields maps API sort field names to their bson counterparts. Unknown
// fields are rejected rather than silently replaced.
var sortFields = map[string]string{
	"id":            "_id",
	"titulo":        "titulo",
	"autor":         "autor",
	"curso":         "curso",
	"status":        "status",
	"fechaCreacion": "fecha_creacion",
}

// TopicoService implements topic CRUD with the duplicate pre-check. The
// pre-check exists for a friendlier 422; the store's unique index remains the
// authoritative enforcement and a lost race surfaces as ErrStorageConflict.
type TopicoService struct {
	repo   ports.TopicoRepository
	logger zerolog.Logger
}

func NewTopicoService(repo ports.TopicoRepository, logger zerolog.Logger) *TopicoService {
	return &TopicoService{repo: repo, logger: logger}
}

// Create persists a new topic unless its (titulo, mensaje) pair already exists.
func (s *TopicoService) Create(ctx context.Context, input ports.CreateTopicoInput) (*domain.Topico, error) {
	exists, err := s.repo.ExistsByTituloAndMensaje(ctx, input.Titulo, input.Mensaje)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateTopico
	}

	topico := &domain.Topico{
		Titulo:        input.Titulo,
		Mensaje:       input.Mensaje,
		FechaCreacion: time.Now().UTC(),
		Status:        domain.StatusAbierto,
		Autor:         input.Autor,
		Curso:         input.Curso,
	}

	created, err := s.repo.Create(ctx, topico)
	if err != nil {
		s.logger.Error().Err(err).Str("titulo", input.Titulo).Msg("failed to create topico")
		return nil, err
	}

	s.logger.Info().Int64("id", created.ID).Str("curso", created.Curso).Msg("topico created")
	return created, nil
}

// List returns one page of topics, sorted by creation time descending unless
// the caller picks another whitelisted field.
func (s *TopicoService) List(ctx context.Context, input ports.ListTopicosInput) (*ports.TopicoPage, error) {
	page := input.Page
	if page < 0 {
		page = 0
	}
	size := input.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	bsonField, ok := sortFields[sortBy]
	if !ok {
		return nil, &domain.MissingParamError{Param: "sort", Message: "unknown sort field: " + sortBy}
	}

	desc := true
	switch input.SortDir {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return nil, &domain.MissingParamError{Param: "sort", Message: "sort direction must be asc or desc"}
	}

	topicos, total, err := s.repo.List(ctx, ports.ListTopicosFilter{
		Page:     page,
		Size:     size,
		SortBy:   bsonField,
		SortDesc: desc,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &ports.TopicoPage{
		Content:    topicos,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: totalPages,
	}, nil
}

// Get returns the topic with the given id.
func (s *TopicoService) Get(ctx context.Context, id int64) (*domain.Topico, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. The effective (titulo, mensaje) pair is the
// existing value for any omitted field; the duplicate check excludes the record
// itself, so updating a topic to its own current pair succeeds.
func (s *TopicoService) Update(ctx context.Context, id int64, fields ports.UpdateTopicoFields) (*domain.Topico, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	titulo := current.Titulo
	if fields.Titulo != nil {
		titulo = *fields.Titulo
	}
	mensaje := current.Mensaje
	if fields.Mensaje != nil {
		mensaje = *fields.Mensaje
	}

	exists, err := s.repo.ExistsByTituloAndMensajeExcluding(ctx, titulo, mensaje, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateTopico
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Msg("topico updated")
	return updated, nil
}

// Delete removes the topic with the given id.
func (s *TopicoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("topico deleted")
	return nil
}
