// Package view computes read-only projections of a fetched todo list.
// It performs no I/O and never mutates its input.
package view

import (
	"sort"

	"todolist/internal/core/domain"
)

type StatusFilter string

const (
	StatusAll   StatusFilter = "ALL"
	StatusTodo  StatusFilter = "TODO"
	StatusDoing StatusFilter = "DOING"
	StatusDone  StatusFilter = "DONE"
)

type Sort string

const (
	SortCreatedDesc  Sort = "createdAt_desc"
	SortCreatedAsc   Sort = "createdAt_asc"
	SortDeadlineAsc  Sort = "deadline_asc"
	SortDeadlineDesc Sort = "deadline_desc"
)

// Filter selects and orders todos. Search matches title or description
// case-insensitively. Todos without a deadline sort as the minimum value
// in both deadline orders, so they come first ascending and last
// descending.
type Filter struct {
	Search string
	Status StatusFilter
	Sort   Sort
}

func DefaultFilter() Filter {
	return Filter{
		Search: "",
		Status: StatusAll,
		Sort:   SortCreatedDesc,
	}
}

// Project filters then sorts. The sort is stable so ties keep their
// incoming order across re-renders.
func Project(todos []domain.Todo, f Filter) []domain.Todo {
	out := make([]domain.Todo, 0, len(todos))

	for _, t := range todos {
		if !t.MatchesSearch(f.Search) {
			continue
		}

		if f.Status != "" && f.Status != StatusAll && string(t.Status) != string(f.Status) {
			continue
		}

		out = append(out, t)
	}

	switch f.Sort {
	case SortCreatedAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortDeadlineAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DeadlineOrZero().Before(out[j].DeadlineOrZero())
		})
	case SortDeadlineDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].DeadlineOrZero().Before(out[i].DeadlineOrZero())
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[j].CreatedAt.Before(out[i].CreatedAt)
		})
	}

	return out
}
