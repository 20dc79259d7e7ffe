package driver

import (
	"context"
	"sync"
	"time"

	"todo_automation/domain/entities"
	"todo_automation/domain/interfaces"
)

type fakeElement struct {
	mu       sync.Mutex
	text     string
	typed    string
	keys     []entities.Key
	clicks   int
	dblclick int
	hovers   int
	visible  bool
	err      error
	onHover  func()
}

func (e *fakeElement) do(fn func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	fn()
	return nil
}

func (e *fakeElement) Click(ctx context.Context) error {
	return e.do(func() { e.clicks++ })
}

func (e *fakeElement) DoubleClick(ctx context.Context) error {
	return e.do(func() { e.dblclick++ })
}

func (e *fakeElement) SendKeys(ctx context.Context, text string) error {
	return e.do(func() { e.typed += text })
}

func (e *fakeElement) Press(ctx context.Context, key entities.Key) error {
	return e.do(func() { e.keys = append(e.keys, key) })
}

func (e *fakeElement) Hover(ctx context.Context) error {
	err := e.do(func() { e.hovers++ })
	if err == nil && e.onHover != nil {
		e.onHover()
	}
	return err
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	var text string
	err := e.do(func() { text = e.text })
	return text, err
}

func (e *fakeElement) IsDisplayed(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible, nil
}

func (e *fakeElement) setVisible(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = v
}

type lookupKey struct {
	by    entities.Strategy
	value string
}

// fakeSession answers lookups from a fixed table. Errors registered for a
// key are returned instead of elements.
type fakeSession struct {
	elements map[lookupKey][]interfaces.Element
	errs     map[lookupKey]error
	lookups  []lookupKey
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		elements: make(map[lookupKey][]interfaces.Element),
		errs:     make(map[lookupKey]error),
	}
}

func (s *fakeSession) add(by entities.Strategy, value string, els ...interfaces.Element) {
	k := lookupKey{by, value}
	s.elements[k] = append(s.elements[k], els...)
}

func (s *fakeSession) fail(by entities.Strategy, value string, err error) {
	s.errs[lookupKey{by, value}] = err
}

func (s *fakeSession) Navigate(ctx context.Context, url string) error { return nil }
func (s *fakeSession) Maximize(ctx context.Context) error             { return nil }
func (s *fakeSession) SetImplicitWait(d time.Duration) error          { return nil }
func (s *fakeSession) Refresh(ctx context.Context) error              { return nil }
func (s *fakeSession) Screenshot(ctx context.Context) ([]byte, error) { return nil, nil }
func (s *fakeSession) Quit() error                                    { return nil }

func (s *fakeSession) FindElement(ctx context.Context, by entities.Strategy, value string) (interfaces.Element, error) {
	k := lookupKey{by, value}
	s.lookups = append(s.lookups, k)
	if err := s.errs[k]; err != nil {
		return nil, err
	}
	els := s.elements[k]
	if len(els) == 0 {
		return nil, entities.ErrElementAbsent
	}
	return els[0], nil
}

func (s *fakeSession) FindElements(ctx context.Context, by entities.Strategy, value string) ([]interfaces.Element, error) {
	k := lookupKey{by, value}
	s.lookups = append(s.lookups, k)
	if err := s.errs[k]; err != nil {
		return nil, err
	}
	return s.elements[k], nil
}
