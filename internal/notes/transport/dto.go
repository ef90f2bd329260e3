// Package transport defines request/response DTOs for the notes API.
package transport

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
	RelatedType *string    `json:"related_type" validate:"omitempty,oneof=lead customer"`
	RelatedID   *string    `json:"related_id" validate:"omitempty,uuid"`
}

type UpdateNoteRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	DueDate     *time.Time `json:"due_date"`
}

type NoteResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	RelatedType *string    `json:"related_type"`
	RelatedID   *uuid.UUID `json:"related_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

type NoteListResponse struct {
	Items []NoteResponse `json:"items"`
}
