// Package derive holds the pure projections the panels render from. Nothing
// here keeps state; every function builds fresh records from its inputs.
package derive

import (
	"sort"

	"github.com/sandeepkv93/kosei/internal/model"
)

type TaskGroup struct {
	Date  string
	Tasks []model.Task
}

// GroupTasksByDueDate partitions tasks by exact due date. Groups come out in
// ascending date order; tasks inside a group keep their input order.
func GroupTasksByDueDate(tasks []model.Task) []TaskGroup {
	index := make(map[string]int)
	groups := make([]TaskGroup, 0)
	for _, t := range tasks {
		i, ok := index[t.DueDate]
		if !ok {
			i = len(groups)
			index[t.DueDate] = i
			groups = append(groups, TaskGroup{Date: t.DueDate})
		}
		groups[i].Tasks = append(groups[i].Tasks, t)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})
	return groups
}

// TasksDueOn returns the tasks due on date, in input order.
func TasksDueOn(tasks []model.Task, date string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}
