package simulator

import (
	"context"
	"strconv"
	"strings"

	"todo_automation/domain/entities"
)

type elementKind int

const (
	kindStatic elementKind = iota
	kindNewTodo
	kindRow
	kindLabel
	kindToggle
	kindDestroy
	kindEditor
	kindClearCompleted
	kindFilter
)

type element struct {
	app    *TodoMVC
	kind   elementKind
	path   string
	item   *item
	filter entities.FilterState
}

// guard locks the application and checks the element is still attached
func (e *element) guard() (func(), error) {
	e.app.mu.Lock()
	if e.item != nil && !e.app.attached(e.item) {
		e.app.mu.Unlock()
		return nil, entities.ErrStaleElement
	}
	if e.kind == kindEditor && e.app.editing != e.item {
		e.app.mu.Unlock()
		return nil, entities.ErrStaleElement
	}
	return e.app.mu.Unlock, nil
}

func (e *element) Click(ctx context.Context) error {
	unlock, err := e.guard()
	if err != nil {
		return err
	}
	defer unlock()

	a := e.app
	switch e.kind {
	case kindToggle:
		e.item.completed = !e.item.completed
	case kindDestroy:
		if a.hovered != e.item {
			return ErrNotInteractable
		}
		a.remove(e.item)
	case kindClearCompleted:
		kept := a.items[:0]
		for _, it := range a.items {
			if !it.completed {
				kept = append(kept, it)
			}
		}
		a.items = kept
	case kindFilter:
		a.filter = e.filter
	case kindStatic:
		if e.path == pathToggleAll {
			all := a.remaining() == 0
			for _, it := range a.items {
				it.completed = !all
			}
		}
	}
	return nil
}

func (e *element) DoubleClick(ctx context.Context) error {
	unlock, err := e.guard()
	if err != nil {
		return err
	}
	defer unlock()

	if e.kind == kindLabel {
		e.app.editing = e.item
		e.app.editBuf = e.item.text
	}
	return nil
}

func (e *element) SendKeys(ctx context.Context, text string) error {
	unlock, err := e.guard()
	if err != nil {
		return err
	}
	defer unlock()

	switch e.kind {
	case kindNewTodo:
		e.app.newTodo += text
	case kindEditor:
		e.app.editBuf += text
	default:
		return ErrNotInteractable
	}
	return nil
}

func (e *element) Press(ctx context.Context, key entities.Key) error {
	unlock, err := e.guard()
	if err != nil {
		return err
	}
	defer unlock()

	a := e.app
	var buf *string
	switch e.kind {
	case kindNewTodo:
		buf = &a.newTodo
	case kindEditor:
		buf = &a.editBuf
	default:
		return ErrNotInteractable
	}

	switch key {
	case entities.KeyBackspace:
		if r := []rune(*buf); len(r) > 0 {
			*buf = string(r[:len(r)-1])
		}
	case entities.KeyEnter:
		text := strings.TrimSpace(*buf)
		*buf = ""
		if e.kind == kindNewTodo {
			if text != "" {
				a.items = append(a.items, &item{text: text})
			}
			return nil
		}
		if text == "" {
			a.remove(e.item)
		} else {
			e.item.text = text
		}
		a.editing = nil
	}
	return nil
}

func (e *element) Hover(ctx context.Context) error {
	unlock, err := e.guard()
	if err != nil {
		return err
	}
	defer unlock()

	switch e.kind {
	case kindRow, kindLabel, kindToggle, kindDestroy:
		e.app.hovered = e.item
	default:
		e.app.hovered = nil
	}
	return nil
}

func (e *element) Text(ctx context.Context) (string, error) {
	unlock, err := e.guard()
	if err != nil {
		return "", err
	}
	defer unlock()

	switch e.kind {
	case kindLabel, kindRow:
		return e.item.text, nil
	case kindStatic:
		if e.path == pathCounter {
			return strconv.Itoa(e.app.remaining()), nil
		}
	case kindClearCompleted:
		return "Clear completed", nil
	case kindFilter:
		return string(e.filter), nil
	}
	return "", nil
}

func (e *element) IsDisplayed(ctx context.Context) (bool, error) {
	unlock, err := e.guard()
	if err != nil {
		return false, err
	}
	defer unlock()

	if e.kind == kindDestroy {
		return e.app.hovered == e.item, nil
	}
	return true, nil
}
