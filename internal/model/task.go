package model

import "time"

// TaskKind discriminates which extension row a task carries.
type TaskKind string

const (
	KindRegular   TaskKind = "regular"
	KindIrregular TaskKind = "irregular"
)

// Task statuses.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Task is the base row shared by regular and irregular tasks. Exactly one
// of Regular/Irregular is set once the task is fully created.
type Task struct {
	ID        uint     `gorm:"primaryKey"`
	UserID    uint     `gorm:"not null;index"`
	Name      string   `gorm:"size:200"`
	Progress  int      `gorm:"default:0"`
	Status    string   `gorm:"size:20;default:pending"`
	Kind      TaskKind `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Regular   *RegularTask   `gorm:"constraint:OnDelete:CASCADE"`
	Irregular *IrregularTask `gorm:"constraint:OnDelete:CASCADE"`
}

// RegularTask extends Task with the weekday set it recurs on.
type RegularTask struct {
	ID       uint     `gorm:"primaryKey"`
	TaskID   uint     `gorm:"not null;uniqueIndex"`
	Weekdays Weekdays `gorm:"type:varchar(20);not null"`
}

// IrregularTask extends Task with one-off deadlines. HardDeadline is the
// final due date; OptimalDeadline is the preferred earlier one.
type IrregularTask struct {
	ID              uint `gorm:"primaryKey"`
	TaskID          uint `gorm:"not null;uniqueIndex"`
	OptimalDeadline *time.Time
	HardDeadline    *time.Time
}
