package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/render"
	"github.com/abhisek/drill/internal/router"
	"github.com/abhisek/drill/internal/scheduler"
	"github.com/abhisek/drill/internal/screens/drill"
	"github.com/abhisek/drill/internal/session"
)

func validOptions() Options {
	return Options{Drill: drill.Config{
		Client:  scheduler.NewMockClient(),
		Session: session.DefaultOptions(),
		Render:  render.DefaultOptions(),
	}}
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, validOptions().Validate())

	noClient := validOptions()
	noClient.Drill.Client = nil
	assert.ErrorIs(t, noClient.Validate(), drill.ErrNoClient)

	badRender := validOptions()
	badRender.Drill.Render.Axis = "polar"
	assert.Error(t, badRender.Validate())

	badSession := validOptions()
	badSession.Drill.Session.SubmitMode = "whisper"
	assert.Error(t, badSession.Validate())
}

func TestNewAppModel_RejectsInvalidOptions(t *testing.T) {
	opts := validOptions()
	opts.Drill.Client = nil
	_, err := NewAppModel(opts)
	assert.Error(t, err)
}

func TestAppModel_ViewFrames(t *testing.T) {
	m, err := NewAppModel(validOptions())
	require.NoError(t, err)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.True(t, updated.View().AltScreen)

	content := updated.(AppModel).render()
	assert.True(t, strings.Contains(content, "drill"))
	assert.True(t, strings.Contains(content, "Drill"))
	assert.True(t, strings.Contains(content, "Waiting for the scheduler"))
}

func TestAppModel_TooSmall(t *testing.T) {
	m, err := NewAppModel(validOptions())
	require.NoError(t, err)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	content := updated.(AppModel).render()
	assert.Contains(t, content, "Terminal too small")
}

func TestAppModel_EscPopsThenQuits(t *testing.T) {
	m, err := NewAppModel(validOptions())
	require.NoError(t, err)

	m.router.Push(m.drill)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)

	m.router.Pop()
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
