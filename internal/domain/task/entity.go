package task

import "time"

type Task struct {
	ID          string
	EmployeeID  string
	Description string
	TaskDate    time.Time
	Status      bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Toggle flips completion, stamping or clearing CompletedAt.
func (t *Task) Toggle(now time.Time) {
	t.Status = !t.Status
	if t.Status {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}
