package progress_test

import (
	"testing"

	"teamtrack/internal/model"
	"teamtrack/internal/progress"

	"github.com/stretchr/testify/assert"
)

func tasksWith(completed, total int) []model.Task {
	tasks := make([]model.Task, total)
	for i := range tasks {
		if i < completed {
			tasks[i].Status = model.TaskCompleted
		} else {
			tasks[i].Status = model.TaskPending
		}
	}
	return tasks
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 4, 0},
		{"all completed", 5, 5, 100},
		{"one of three rounds to 33", 1, 3, 33},
		{"two of three rounds to 67", 2, 3, 67},
		{"half rounds up", 1, 8, 13}, // 12.5 -> 13
		{"one of six", 1, 6, 17},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, progress.Compute(tasksWith(tc.completed, tc.total)))
		})
	}
}

func TestCompute_IgnoresInProgress(t *testing.T) {
	tasks := []model.Task{
		{Status: model.TaskCompleted},
		{Status: model.TaskInProgress},
		{Status: model.TaskPending},
	}
	assert.Equal(t, 33, progress.Compute(tasks))
}
