package ports

import (
	"context"

	"github.com/forohub/forum-api/internal/core/domain"
)

// ListTopicosFilter carries pagination and sorting for topic listings.
type ListTopicosFilter struct {
	Page     int    // 0-based
	Size     int    // rows per page (capped at 100 by the service)
	SortBy   string // bson field name, validated by the service
	SortDesc bool
}

// TopicoRepository defines persistence operations for topics.
type TopicoRepository interface {
	// Create persists the topic with a server-assigned, strictly increasing id.
	// Returns domain.ErrStorageConflict when the store's unique index on
	// (titulo, mensaje) rejects the insert.
	Create(ctx context.Context, t *domain.Topico) (*domain.Topico, error)
	FindByID(ctx context.Context, id int64) (*domain.Topico, error)
	// List returns a page of topics and the total count.
	List(ctx context.Context, filter ListTopicosFilter) ([]*domain.Topico, int64, error)
	// Update applies the non-nil fields only. Returns domain.ErrTopicoNotFound
	// or domain.ErrStorageConflict.
	Update(ctx context.Context, id int64, fields UpdateTopicoFields) (*domain.Topico, error)
	Delete(ctx context.Context, id int64) error
	ExistsByTituloAndMensaje(ctx context.Context, titulo, mensaje string) (bool, error)
	// ExistsByTituloAndMensajeExcluding ignores the record with the given id,
	// for the duplicate re-check on partial updates.
	ExistsByTituloAndMensajeExcluding(ctx context.Context, titulo, mensaje string, id int64) (bool, error)
}

// UpdateTopicoFields holds the optional fields of a partial update; nil means
// "leave untouched".
type UpdateTopicoFields struct {
	Titulo  *string
	Mensaje *string
	Autor   *string
	Curso   *string
}
