// Package simulator provides an in-memory TodoMVC application behind the
// BrowserSession interface. It understands the XPath locators of the
// reference application's DOM and nothing else, which is enough to dry-run
// the scenario without a browser.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
)

// DOM paths of the reference application.
const (
	pathNewTodo        = ".//header[@class='header']/input[@class='new-todo']"
	pathToggleAll      = ".//section[@class='main']/label[@for='toggle-all']"
	pathList           = ".//section[@class='main']/ul[@class='todo-list']"
	pathRows           = pathList + "/li"
	pathLabels         = pathList + "/li/div[@class='view']/label"
	pathEditor         = pathList + "/li[@class='editing']/input[@class='edit']"
	pathCounter        = ".//footer[@class='footer']/span[@class='todo-count']/strong"
	pathClearCompleted = ".//footer[@class='footer']/button[@class='clear-completed']"
)

var (
	rowPartPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(pathList) +
		`/li\[(\d+)\]/div\[@class='view'\]/(label|input\[@class='toggle'\]|button\[@class='destroy'\])$`)
	filterPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(".//footer[@class='footer']/ul[@class='filters']") +
		`/li/a\[text\(\)='([^']*)'\]$`)

	// ErrNotInteractable mirrors the driver error for hidden controls.
	ErrNotInteractable = errors.New("element not interactable")
)

type item struct {
	text      string
	completed bool
}

// TodoMVC is a simulated to-do application and browser session in one.
type TodoMVC struct {
	mu       sync.Mutex
	loaded   bool
	url      string
	items    []*item
	filter   entities.FilterState
	newTodo  string
	editing  *item
	editBuf  string
	hovered  *item
	wait     time.Duration
	closed   bool
	visits   int
	maximize bool
}

// NewTodoMVC - creates an empty simulated application
func NewTodoMVC() *TodoMVC {
	return &TodoMVC{filter: entities.FilterAll}
}

var _ interfaces.BrowserSession = (*TodoMVC)(nil)

// Navigate loads the application. Items survive reloads, like the
// reference application's local storage.
func (a *TodoMVC) Navigate(ctx context.Context, url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return errors.New("session closed")
	}
	a.loaded = true
	a.url = url
	a.visits++
	a.resetTransient()
	return nil
}

func (a *TodoMVC) Maximize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.maximize = true
	return nil
}

func (a *TodoMVC) SetImplicitWait(d time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.wait = d
	return nil
}

func (a *TodoMVC) Refresh(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return errors.New("nothing to refresh")
	}
	a.visits++
	a.resetTransient()
	return nil
}

func (a *TodoMVC) Screenshot(ctx context.Context) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var b strings.Builder
	fmt.Fprintf(&b, "filter=%s\n", a.filter)
	for _, it := range a.items {
		mark := " "
		if it.completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s\n", mark, it.text)
	}
	return []byte(b.String()), nil
}

// Quit closes the session; later lookups fail.
func (a *TodoMVC) Quit() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// Closed reports whether Quit was called
func (a *TodoMVC) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

// Visits returns how many times the page was loaded
func (a *TodoMVC) Visits() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visits
}

// Snapshot returns the texts of all items regardless of filter
func (a *TodoMVC) Snapshot() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.items))
	for _, it := range a.items {
		out = append(out, it.text)
	}
	return out
}

func (a *TodoMVC) resetTransient() {
	a.newTodo = ""
	a.editing = nil
	a.editBuf = ""
	a.hovered = nil
}

func (a *TodoMVC) FindElement(ctx context.Context, by entities.Strategy, value string) (interfaces.Element, error) {
	els, err := a.FindElements(ctx, by, value)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, entities.ErrElementAbsent
	}
	return els[0], nil
}

func (a *TodoMVC) FindElements(ctx context.Context, by entities.Strategy, value string) ([]interfaces.Element, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, errors.New("session closed")
	}
	if !a.loaded || by != entities.StrategyXPath {
		return nil, nil
	}

	hasItems := len(a.items) > 0
	switch value {
	case pathNewTodo:
		return one(&element{app: a, kind: kindNewTodo}), nil
	case pathList, pathToggleAll, pathCounter:
		if !hasItems {
			return nil, nil
		}
		return one(&element{app: a, kind: kindStatic, path: value}), nil
	case pathClearCompleted:
		for _, it := range a.items {
			if it.completed {
				return one(&element{app: a, kind: kindClearCompleted}), nil
			}
		}
		return nil, nil
	case pathEditor:
		if a.editing == nil {
			return nil, nil
		}
		return one(&element{app: a, kind: kindEditor, item: a.editing}), nil
	case pathRows, pathLabels:
		kind := kindRow
		if value == pathLabels {
			kind = kindLabel
		}
		view := a.view()
		els := make([]interfaces.Element, 0, len(view))
		for _, it := range view {
			els = append(els, &element{app: a, kind: kind, item: it})
		}
		return els, nil
	}

	if m := rowPartPattern.FindStringSubmatch(value); m != nil {
		n, _ := strconv.Atoi(m[1])
		view := a.view()
		if n < 1 || n > len(view) {
			return nil, nil
		}
		kind := kindLabel
		switch {
		case strings.HasPrefix(m[2], "input"):
			kind = kindToggle
		case strings.HasPrefix(m[2], "button"):
			kind = kindDestroy
		}
		return one(&element{app: a, kind: kind, item: view[n-1]}), nil
	}

	if m := filterPattern.FindStringSubmatch(value); m != nil && hasItems {
		f, err := entities.ParseFilterState(m[1])
		if err != nil || string(f) != m[1] {
			return nil, nil
		}
		return one(&element{app: a, kind: kindFilter, filter: f}), nil
	}

	return nil, nil
}

func one(el interfaces.Element) []interfaces.Element {
	return []interfaces.Element{el}
}

// view returns the items visible under the current filter
func (a *TodoMVC) view() []*item {
	out := make([]*item, 0, len(a.items))
	for _, it := range a.items {
		switch {
		case a.filter == entities.FilterActive && it.completed:
		case a.filter == entities.FilterCompleted && !it.completed:
		default:
			out = append(out, it)
		}
	}
	return out
}

func (a *TodoMVC) attached(it *item) bool {
	for _, x := range a.items {
		if x == it {
			return true
		}
	}
	return false
}

func (a *TodoMVC) remove(it *item) {
	for i, x := range a.items {
		if x == it {
			a.items = append(a.items[:i], a.items[i+1:]...)
			break
		}
	}
	if a.hovered == it {
		a.hovered = nil
	}
	if a.editing == it {
		a.editing = nil
	}
}

func (a *TodoMVC) remaining() int {
	n := 0
	for _, it := range a.items {
		if !it.completed {
			n++
		}
	}
	return n
}
