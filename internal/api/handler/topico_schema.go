package handler

import (
	"time"

	"github.com/forohub/forum-api/internal/core/domain"
	"github.com/forohub/forum-api/internal/core/ports"
)

// --- Request types ---

type createTopicoRequest struct {
	Titulo  string `json:"titulo"  validate:"required,max=200"`
	Mensaje string `json:"mensaje" validate:"required"`
	Autor   string `json:"autor"   validate:"required,max=100"`
	Curso   string `json:"curso"   validate:"required,max=100"`
}

// updateTopicoRequest carries the optional fields of a partial update; absent
// fields stay nil and leave the stored value untouched.
type updateTopicoRequest struct {
	Titulo  *string `json:"titulo"  validate:"omitempty,max=200"`
	Mensaje *string `json:"mensaje" validate:"omitempty,min=1"`
	Autor   *string `json:"autor"   validate:"omitempty,max=100"`
	Curso   *string `json:"curso"   validate:"omitempty,max=100"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to internal
// service changes.

type topicoResponse struct {
	ID            int64     `json:"id"`
	Titulo        string    `json:"titulo"`
	Mensaje       string    `json:"mensaje"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	Status        string    `json:"status"`
	Autor         string    `json:"autor"`
	Curso         string    `json:"curso"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

type listTopicosResponse struct {
	Data       []topicoResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toTopicoResponse(t *domain.Topico) topicoResponse {
	return topicoResponse{
		ID:            t.ID,
		Titulo:        t.Titulo,
		Mensaje:       t.Mensaje,
		FechaCreacion: t.FechaCreacion,
		Status:        string(t.Status),
		Autor:         t.Autor,
		Curso:         t.Curso,
	}
}

func toListResponse(page *ports.TopicoPage) listTopicosResponse {
	data := make([]topicoResponse, 0, len(page.Content))
	for _, t := range page.Content {
		data = append(data, toTopicoResponse(t))
	}
	return listTopicosResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Size:       page.Size,
			TotalPages: page.TotalPages,
		},
	}
}
