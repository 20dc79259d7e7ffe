package scenario

import (
	"todo_automation/domain/entities"

	"github.com/stretchr/testify/assert"
)

// DefaultTodos are the fixture items the to-do scenario works with.
var DefaultTodos = []string{"Clean room", "Make coffee", "Exercise", "Walk dog", "Go grocery shopping"}

// TodoScenario returns the ordered cases for the to-do application. Each
// case builds on the state the previous ones left behind.
func TodoScenario() []Case {
	return []Case{
		{Order: 1, Name: "todo list not visible", Run: func(s *Step) {
			assert.False(s, s.Page.ListPresent(s.Context()), "list should be hidden while empty")
		}},
		{Order: 2, Name: "add one todo", Run: func(s *Step) {
			s.Do(s.Page.AddItem(s.Context(), s.Todo(1)))
			assert.True(s, s.Page.ListPresent(s.Context()), "list should be shown")
			assert.Equal(s, s.Todo(1), s.Text(1))
			assert.Equal(s, 1, s.Remaining())
		}},
		{Order: 3, Name: "add second todo", Run: func(s *Step) {
			s.Do(s.Page.AddItem(s.Context(), s.Todo(2)))
			assert.Equal(s, s.Todo(2), s.Text(2))
			assert.Equal(s, 2, s.Remaining())
		}},
		{Order: 4, Name: "complete first todo", Run: func(s *Step) {
			s.Do(s.Page.ToggleComplete(s.Context(), 1))
			assert.Equal(s, 1, s.Remaining())
			assert.True(s, s.Page.ClearCompletedButtonPresent(s.Context()), "clear completed should be shown")
		}},
		{Order: 5, Name: "uncheck first todo", Run: func(s *Step) {
			s.Do(s.Page.ToggleComplete(s.Context(), 1))
			assert.Equal(s, 2, s.Remaining())
			assert.False(s, s.Page.ClearCompletedButtonPresent(s.Context()), "clear completed should be hidden")
		}},
		{Order: 6, Name: "complete all todos", Run: func(s *Step) {
			s.Do(s.Page.ToggleCompleteAll(s.Context()))
			assert.Equal(s, 0, s.Remaining())
			assert.Equal(s, 2, s.Visible())
			assert.True(s, s.Page.ClearCompletedButtonPresent(s.Context()), "clear completed should be shown")
		}},
		{Order: 7, Name: "add third todo", Run: func(s *Step) {
			s.Do(s.Page.AddItem(s.Context(), s.Todo(3)))
			assert.Equal(s, s.Todo(3), s.Text(3))
			assert.Equal(s, 1, s.Remaining())
			assert.Equal(s, 3, s.Visible())
		}},
		{Order: 8, Name: "delete first todo", Run: func(s *Step) {
			s.Do(s.Page.DeleteItem(s.Context(), 1))
			assert.Equal(s, 1, s.Remaining())
			assert.NotEqual(s, s.Todo(1), s.Text(1))
		}},
		{Order: 9, Name: "view active filter", Run: func(s *Step) {
			s.Do(s.Page.SelectFilter(s.Context(), entities.FilterActive))
			assert.Equal(s, 1, s.Remaining())
			assert.Equal(s, 1, s.Visible())
			assert.Equal(s, s.Todo(3), s.Text(1))
		}},
		{Order: 10, Name: "view completed filter", Run: func(s *Step) {
			s.Do(s.Page.SelectFilter(s.Context(), entities.FilterCompleted))
			assert.Equal(s, 1, s.Remaining())
			assert.Equal(s, 1, s.Visible())
			assert.Equal(s, s.Todo(2), s.Text(1))
		}},
		{Order: 11, Name: "add fourth todo", Run: func(s *Step) {
			s.Do(s.Page.AddItem(s.Context(), s.Todo(4)))
			assert.Equal(s, 2, s.Remaining())
			assert.Equal(s, 1, s.Visible())
			assert.Equal(s, s.Todo(2), s.Text(1))
		}},
		{Order: 12, Name: "clear completed todos", Run: func(s *Step) {
			s.Do(s.Page.ClearCompleted(s.Context()))
			assert.True(s, s.Page.ListPresent(s.Context()), "list should still be shown")
			assert.Equal(s, 0, s.Visible())
			assert.Equal(s, 2, s.Remaining())
		}},
		{Order: 13, Name: "edit first active todo", Run: func(s *Step) {
			s.Do(s.Page.SelectFilter(s.Context(), entities.FilterAll))
			s.Do(s.Page.EditItem(s.Context(), 1, s.Todo(5)))
			assert.Equal(s, s.Todo(5), s.Text(1))
			assert.Equal(s, 2, s.Visible())
			assert.Equal(s, 2, s.Remaining())
		}},
		{Order: 14, Name: "refresh page", Run: func(s *Step) {
			s.Do(s.Session.Refresh(s.Context()))
			assert.Equal(s, 2, s.Visible())
			assert.Equal(s, 2, s.Remaining())
		}},
		{Order: 15, Name: "complete and clear all", Run: func(s *Step) {
			s.Do(s.Page.ToggleCompleteAll(s.Context()))
			s.Do(s.Page.ClearCompleted(s.Context()))
			assert.False(s, s.Page.ListPresent(s.Context()), "list should be hidden once empty")
		}},
	}
}
