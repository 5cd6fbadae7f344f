package domain

import "time"

type GoalStatus string

const (
	GoalStatusInProgress GoalStatus = "IN_PROGRESS"
	GoalStatusCompleted  GoalStatus = "COMPLETED"
	GoalStatusArchived   GoalStatus = "ARCHIVED"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusInProgress, GoalStatusCompleted, GoalStatusArchived:
		return true
	}
	return false
}

type Goal struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      GoalStatus `gorm:"type:varchar(20);not null;default:IN_PROGRESS" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`

	Steps []Step `gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE" json:"steps"`
}
