package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-connect/internal/model"
)

var wallets = []model.WalletDetail{
	{ConnectorType: model.ConnectorInjected, Name: "MetaMask", RDNS: "io.metamask"},
	{ConnectorType: model.ConnectorPhantomSolana, Name: "Phantom", RDNS: "app.phantom"},
	{ConnectorType: model.ConnectorDownload, Name: "Keplr", DownloadLink: "https://www.keplr.app/download"},
}

func press(m pickerModel, keys ...tea.KeyMsg) (pickerModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(pickerModel)
	}
	return m, cmd
}

func TestCursorStaysInBounds(t *testing.T) {
	m := newModel(wallets)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 1, m.cursor)
}

func TestEnterChoosesHighlighted(t *testing.T) {
	m, cmd := press(newModel(wallets), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, m.chosen)
	assert.Equal(t, "Phantom", m.chosen.Name)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEscCancels(t *testing.T) {
	m, cmd := press(newModel(wallets), tea.KeyMsg{Type: tea.KeyEsc})

	assert.True(t, m.quit)
	assert.Nil(t, m.chosen)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEnterOnEmptyListQuits(t *testing.T) {
	m, _ := press(newModel(nil), tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.quit)
	assert.Nil(t, m.chosen)
}

func TestViewMarksCursorAndDownloads(t *testing.T) {
	m, _ := press(newModel(wallets), tea.KeyMsg{Type: tea.KeyDown})
	view := m.View()

	assert.Contains(t, view, "  MetaMask\n")
	assert.Contains(t, view, "> Phantom\n")
	assert.Contains(t, view, "  Keplr (install)\n")
}

func TestViewEmpty(t *testing.T) {
	assert.Contains(t, newModel(nil).View(), "(no wallets available)")
}
