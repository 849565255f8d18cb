package ports

import (
	"context"

	"github.com/forohub/forum-api/internal/core/domain"
)

// CreateTopicoInput is the validated payload for creating a topic.
type CreateTopicoInput struct {
	Titulo  string
	Mensaje string
	Autor   string
	Curso   string
}

// ListTopicosInput carries the raw query parameters; the service resolves
// defaults and validates the sort field.
type ListTopicosInput struct {
	Page    int
	Size    int
	SortBy  string // API field name, e.g. "fechaCreacion"
	SortDir string // "asc" or "desc"
}

// TopicoPage is one page of a topic listing.
type TopicoPage struct {
	Content    []*domain.Topico
	Total      int64
	Page       int
	Size       int
	TotalPages int
}

// TopicoService exposes the topic CRUD operations behind the HTTP handlers.
type TopicoService interface {
	Create(ctx context.Context, input CreateTopicoInput) (*domain.Topico, error)
	List(ctx context.Context, input ListTopicosInput) (*TopicoPage, error)
	Get(ctx context.Context, id int64) (*domain.Topico, error)
	Update(ctx context.Context, id int64, fields UpdateTopicoFields) (*domain.Topico, error)
	Delete(ctx context.Context, id int64) error
}
