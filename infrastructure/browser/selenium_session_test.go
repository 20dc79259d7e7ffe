package browser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"todo_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

var errUnknownCommand = &selenium.Error{Err: "unknown command", Message: "POST /session/1/moveto did not match a known command", HTTPCode: 404}

// w3cDriver behaves like geckodriver: no legacy pointer commands, scripts work
type w3cDriver struct {
	selenium.WebDriver
	scripts []string
	args    [][]interface{}
}

func (d *w3cDriver) DoubleClick() error { return errUnknownCommand }

func (d *w3cDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.scripts = append(d.scripts, script)
	d.args = append(d.args, args)
	return true, nil
}

type w3cElement struct {
	selenium.WebElement
	clickErr error
	clicks   int
}

func (e *w3cElement) Size() (*selenium.Size, error) {
	return &selenium.Size{Width: 100, Height: 20}, nil
}

func (e *w3cElement) MoveTo(x, y int) error { return errUnknownCommand }

func (e *w3cElement) Click() error {
	e.clicks++
	return e.clickErr
}

func TestUnsupportedCommandDetection(t *testing.T) {
	assert.True(t, isUnsupportedCommand(errUnknownCommand))
	assert.True(t, isUnsupportedCommand(errors.New("unknown method: POST /session/1/doubleclick")))
	assert.False(t, isUnsupportedCommand(errors.New("no such element")))
	assert.False(t, isUnsupportedCommand(nil))

	assert.True(t, isNotInteractable(&selenium.Error{Err: "element not interactable"}))
	assert.True(t, isNotInteractable(errors.New("element click intercepted: covered")))
	assert.False(t, isNotInteractable(errUnknownCommand))
	assert.False(t, isNotInteractable(nil))
}

func TestDoubleClickFallsBackToScriptOnW3CDriver(t *testing.T) {
	wd := &w3cDriver{}
	el := &w3cElement{}
	element := &seleniumElement{wd: wd, element: el}

	require.NoError(t, element.DoubleClick(context.Background()))
	require.Len(t, wd.scripts, 1)
	assert.True(t, strings.Contains(wd.scripts[0], "dblclick"))
	assert.Equal(t, []interface{}{el}, wd.args[0])
}

func TestHoverFallsBackToScriptOnW3CDriver(t *testing.T) {
	wd := &w3cDriver{}
	element := &seleniumElement{wd: wd, element: &w3cElement{}}

	require.NoError(t, element.Hover(context.Background()))
	require.Len(t, wd.scripts, 1)
	assert.True(t, strings.Contains(wd.scripts[0], "mouseover"))
}

func TestClickFallsBackToScriptWhenHidden(t *testing.T) {
	wd := &w3cDriver{}
	el := &w3cElement{clickErr: &selenium.Error{Err: "element not interactable", Message: "destroy button is not visible"}}
	element := &seleniumElement{wd: wd, element: el}

	require.NoError(t, element.Click(context.Background()))
	assert.Equal(t, 1, el.clicks)
	require.Len(t, wd.scripts, 1)
	assert.Equal(t, scriptClick, wd.scripts[0])
}

func TestClickKeepsLookupErrors(t *testing.T) {
	wd := &w3cDriver{}
	el := &w3cElement{clickErr: errors.New("stale element reference: node detached")}
	element := &seleniumElement{wd: wd, element: el}

	assert.ErrorIs(t, element.Click(context.Background()), entities.ErrStaleElement)
	assert.Empty(t, wd.scripts)
}
