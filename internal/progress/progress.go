// Package progress derives a project's completion percentage from its tasks.
package progress

import (
	"math"

	"teamtrack/internal/model"
)

// Compute returns the completion percentage for a set of tasks belonging to
// one project: 0 when there are no tasks, otherwise the completed share of
// the total rounded half-up to an integer in [0,100].
func Compute(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed*100) / float64(len(tasks))))
}
