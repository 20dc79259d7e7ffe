// Package pages holds page objects for the to-do application.
package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"todo_automation/application/driver"
	"todo_automation/domain/entities"

	"github.com/sirupsen/logrus"
)

// Locators. These follow the DOM of the TodoMVC reference application; any
// structural change there breaks them.
const (
	NewTodoField         = ".//header[@class='header']/input[@class='new-todo']"
	CompleteAllCheckbox  = ".//section[@class='main']/label[@for='toggle-all']"
	TodoList             = ".//section[@class='main']/ul[@class='todo-list']"
	TodoItemView         = "div[@class='view']"
	TodoItemEdit         = "input[@class='edit']"
	ItemsLeftCount       = ".//footer[@class='footer']/span[@class='todo-count']/strong"
	ClearCompletedButton = ".//footer[@class='footer']/button[@class='clear-completed']"
	FilterLinks          = ".//footer[@class='footer']/ul[@class='filters']"
)

const xpath = string(entities.LocatorXPath)

// ItemPart selects a sub-element of a list row.
type ItemPart string

const (
	PartLabel   ItemPart = "label"
	PartToggle  ItemPart = "toggle"
	PartDestroy ItemPart = "destroy"
	// PartEditor is the inline editor of the row currently being edited.
	// It ignores the row position.
	PartEditor ItemPart = "edit"
)

// ItemLocator returns the XPath of part of the n-th (1-based) row.
func ItemLocator(n int, part ItemPart) string {
	switch part {
	case PartEditor:
		return fmt.Sprintf("%s/li[@class='editing']/%s", TodoList, TodoItemEdit)
	case PartToggle:
		return fmt.Sprintf("%s/li[%d]/%s/input[@class='toggle']", TodoList, n, TodoItemView)
	case PartDestroy:
		return fmt.Sprintf("%s/li[%d]/%s/button[@class='destroy']", TodoList, n, TodoItemView)
	default:
		return fmt.Sprintf("%s/li[%d]/%s/label", TodoList, n, TodoItemView)
	}
}

// FilterLink returns the XPath of the footer filter link with the given name.
func FilterLink(name string) string {
	return fmt.Sprintf("%s/li/a[text()='%s']", FilterLinks, name)
}

// TodoPage is the page object for the to-do list. It keeps no state of its
// own: every call reads or changes the live DOM.
type TodoPage struct {
	drv    *driver.Driver
	logger *logrus.Logger
}

// NewTodoPage - creates new page object on top of a driver
func NewTodoPage(drv *driver.Driver, logger *logrus.Logger) *TodoPage {
	return &TodoPage{drv: drv, logger: logger}
}

// Driver returns the driver the page acts through
func (p *TodoPage) Driver() *driver.Driver {
	return p.drv
}

// AddItem types text into the new item field and submits it
func (p *TodoPage) AddItem(ctx context.Context, text string) error {
	return p.drv.TypeTextAndSubmit(ctx, text, xpath, NewTodoField)
}

// ItemText returns the label of the item at position in the current view
func (p *TodoPage) ItemText(ctx context.Context, position int) (string, error) {
	return p.drv.ElementText(ctx, xpath, ItemLocator(position, PartLabel))
}

// RemainingCount parses the "items left" counter in the footer
func (p *TodoPage) RemainingCount(ctx context.Context) (int, error) {
	text, err := p.drv.ElementText(ctx, xpath, ItemsLeftCount)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse items left counter %q: %w", text, err)
	}
	return n, nil
}

// VisibleCount returns how many rows the current filter renders
func (p *TodoPage) VisibleCount(ctx context.Context) (int, error) {
	rows, err := p.drv.FindMany(ctx, xpath, TodoList+"/li")
	return len(rows), err
}

// Items returns a snapshot of the rows in the current view
func (p *TodoPage) Items(ctx context.Context) ([]entities.TodoItem, error) {
	labels, err := p.drv.FindMany(ctx, xpath, TodoList+"/li/"+TodoItemView+"/label")
	if err != nil {
		return nil, err
	}
	items := make([]entities.TodoItem, 0, len(labels))
	for i, label := range labels {
		text, err := label.Text(ctx)
		if err != nil {
			return nil, fmt.Errorf("read item %d: %w", i+1, err)
		}
		items = append(items, entities.TodoItem{Position: i + 1, Text: text})
	}
	return items, nil
}

// PositionOf returns the position of the first item labelled text in the
// current view, or entities.ErrElementAbsent.
func (p *TodoPage) PositionOf(ctx context.Context, text string) (int, error) {
	items, err := p.Items(ctx)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		if item.Text == text {
			return item.Position, nil
		}
	}
	return 0, fmt.Errorf("item %q: %w", text, entities.ErrElementAbsent)
}

// ToggleComplete clicks the checkbox of the item at position
func (p *TodoPage) ToggleComplete(ctx context.Context, position int) error {
	return p.drv.Click(ctx, xpath, ItemLocator(position, PartToggle))
}

// DeleteItem removes the item at position. The destroy button only becomes
// interactable while the row is hovered.
func (p *TodoPage) DeleteItem(ctx context.Context, position int) error {
	destroy := ItemLocator(position, PartDestroy)
	if err := p.drv.HoverUntil(ctx, xpath, ItemLocator(position, PartLabel), xpath, destroy, 0); err != nil {
		p.logger.WithError(err).WithField("position", position).Warn("Destroy button was not revealed, clicking anyway")
	}
	return p.drv.Click(ctx, xpath, destroy)
}

// ToggleCompleteAll clicks the "mark all as complete" control
func (p *TodoPage) ToggleCompleteAll(ctx context.Context) error {
	return p.drv.Click(ctx, xpath, CompleteAllCheckbox)
}

// ClearCompleted clicks the "Clear completed" button
func (p *TodoPage) ClearCompleted(ctx context.Context) error {
	return p.drv.Click(ctx, xpath, ClearCompletedButton)
}

// SelectFilter clicks the footer filter link
func (p *TodoPage) SelectFilter(ctx context.Context, filter entities.FilterState) error {
	return p.drv.Click(ctx, xpath, FilterLink(string(filter)))
}

// EditItem replaces the text of an item through the inline editor.
//
// The editor is always opened on the first row whatever position is passed;
// see DESIGN.md. The old text is removed with one Backspace per character
// because the editor offers no reliable select-all.
func (p *TodoPage) EditItem(ctx context.Context, position int, newText string) error {
	if position != 1 {
		p.logger.WithField("position", position).Warn("EditItem always edits the first item")
	}

	current, err := p.ItemText(ctx, 1)
	if err != nil {
		return err
	}
	if err := p.drv.DoubleClick(ctx, xpath, ItemLocator(1, PartLabel)); err != nil {
		return err
	}
	editor := ItemLocator(1, PartEditor)
	if n := len([]rune(current)); n > 0 {
		if err := p.drv.Backspace(ctx, xpath, editor, n); err != nil {
			return err
		}
	}
	return p.drv.TypeTextAndSubmit(ctx, newText, xpath, editor)
}

// ListPresent reports whether the list section is rendered
func (p *TodoPage) ListPresent(ctx context.Context) bool {
	return p.drv.IsPresent(ctx, xpath, TodoList)
}

// ClearCompletedButtonPresent reports whether "Clear completed" is rendered
func (p *TodoPage) ClearCompletedButtonPresent(ctx context.Context) bool {
	return p.drv.IsPresent(ctx, xpath, ClearCompletedButton)
}
