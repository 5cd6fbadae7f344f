package dto

import "time"

type GoalCreateRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// GoalUpdateRequest carries only the fields the caller supplied.
// Nil means "leave untouched", so a PUT with {"description":"x"}
// never clobbers title or deadline.
type GoalUpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=IN_PROGRESS COMPLETED ARCHIVED"`
}
