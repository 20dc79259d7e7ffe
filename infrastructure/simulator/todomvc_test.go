package simulator

import (
	"context"
	"testing"

	"todo_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func label(n int) string {
	return pathList + "/li[" + string(rune('0'+n)) + "]/div[@class='view']/label"
}

func destroy(n int) string {
	return pathList + "/li[" + string(rune('0'+n)) + "]/div[@class='view']/button[@class='destroy']"
}

func addItem(t *testing.T, app *TodoMVC, text string) {
	t.Helper()
	ctx := context.Background()
	field, err := app.FindElement(ctx, entities.StrategyXPath, pathNewTodo)
	require.NoError(t, err)
	require.NoError(t, field.SendKeys(ctx, text))
	require.NoError(t, field.Press(ctx, entities.KeyEnter))
}

func TestNothingBeforeNavigate(t *testing.T) {
	app := NewTodoMVC()
	_, err := app.FindElement(context.Background(), entities.StrategyXPath, pathNewTodo)
	assert.ErrorIs(t, err, entities.ErrElementAbsent)
}

func TestOnlyXPathIsUnderstood(t *testing.T) {
	app := NewTodoMVC()
	require.NoError(t, app.Navigate(context.Background(), "http://app"))
	_, err := app.FindElement(context.Background(), entities.StrategyCSS, pathNewTodo)
	assert.ErrorIs(t, err, entities.ErrElementAbsent)
}

func TestAddAndRead(t *testing.T) {
	ctx := context.Background()
	app := NewTodoMVC()
	require.NoError(t, app.Navigate(ctx, "http://app"))

	_, err := app.FindElement(ctx, entities.StrategyXPath, pathList)
	assert.ErrorIs(t, err, entities.ErrElementAbsent, "list hidden while empty")

	addItem(t, app, "  Clean room ")
	addItem(t, app, "   ")

	el, err := app.FindElement(ctx, entities.StrategyXPath, label(1))
	require.NoError(t, err)
	text, err := el.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Clean room", text)
	assert.Equal(t, []string{"Clean room"}, app.Snapshot())

	counter, err := app.FindElement(ctx, entities.StrategyXPath, pathCounter)
	require.NoError(t, err)
	text, _ = counter.Text(ctx)
	assert.Equal(t, "1", text)
}

func TestDestroyNeedsHover(t *testing.T) {
	ctx := context.Background()
	app := NewTodoMVC()
	require.NoError(t, app.Navigate(ctx, "http://app"))
	addItem(t, app, "one")

	btn, err := app.FindElement(ctx, entities.StrategyXPath, destroy(1))
	require.NoError(t, err)
	visible, _ := btn.IsDisplayed(ctx)
	assert.False(t, visible)
	assert.ErrorIs(t, btn.Click(ctx), ErrNotInteractable)

	lbl, _ := app.FindElement(ctx, entities.StrategyXPath, label(1))
	require.NoError(t, lbl.Hover(ctx))
	visible, _ = btn.IsDisplayed(ctx)
	assert.True(t, visible)
	require.NoError(t, btn.Click(ctx))
	assert.Empty(t, app.Snapshot())

	_, err = lbl.Text(ctx)
	assert.ErrorIs(t, err, entities.ErrStaleElement)
}

func TestRefreshKeepsItems(t *testing.T) {
	ctx := context.Background()
	app := NewTodoMVC()
	require.NoError(t, app.Navigate(ctx, "http://app"))
	addItem(t, app, "keep me")
	require.NoError(t, app.Refresh(ctx))

	assert.Equal(t, []string{"keep me"}, app.Snapshot())
	assert.Equal(t, 2, app.Visits())
}

func TestQuitClosesSession(t *testing.T) {
	app := NewTodoMVC()
	require.NoError(t, app.Quit())
	assert.True(t, app.Closed())
	_, err := app.FindElements(context.Background(), entities.StrategyXPath, pathRows)
	assert.Error(t, err)
}
