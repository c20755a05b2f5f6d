// Package visibility scopes projects and tasks to what a viewer may see.
// A Leader sees every collection unfiltered; a Member sees only projects
// whose team includes them and tasks assigned to them.
package visibility

import (
	"sort"
	"time"

	"teamtrack/internal/model"
)

// Projects returns the subset of projects visible to the viewer. An
// unresolved viewer sees nothing, so a broken session can never leak data.
func Projects(viewer model.Viewer, projects []model.Project) []model.Project {
	if viewer.IsLeader() {
		return projects
	}
	visible := make([]model.Project, 0, len(projects))
	if !viewer.Resolved() {
		return visible
	}
	for _, p := range projects {
		if p.HasMember(viewer.ID) {
			visible = append(visible, p)
		}
	}
	return visible
}

// Tasks returns the subset of tasks visible to the viewer. Membership in a
// task's project is irrelevant for Members: they see exactly the tasks
// assigned to them, across any project.
func Tasks(viewer model.Viewer, tasks []model.Task) []model.Task {
	if viewer.IsLeader() {
		return tasks
	}
	visible := make([]model.Task, 0, len(tasks))
	if !viewer.Resolved() {
		return visible
	}
	for _, t := range tasks {
		if t.AssignedTo(viewer.ID) {
			visible = append(visible, t)
		}
	}
	return visible
}

// UpcomingDeadlines returns at most limit non-completed tasks due at or
// after now, ordered by ascending due date. Ties keep their input order.
func UpcomingDeadlines(tasks []model.Task, now time.Time, limit int) []model.Task {
	upcoming := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != model.TaskCompleted && !t.DueDate.Before(now) {
			upcoming = append(upcoming, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(upcoming[j].DueDate)
	})
	if limit >= 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
