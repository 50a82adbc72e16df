// Package picker renders the wallet selection list in the terminal.
package picker

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AlexZinkM/wallet-connect/internal/model"
)

// ErrCancelled is returned by Run when the user quits without choosing.
var ErrCancelled = errors.New("wallet selection cancelled")

type pickerModel struct {
	wallets []model.WalletDetail
	cursor  int
	chosen  *model.WalletDetail
	quit    bool
}

func newModel(wallets []model.WalletDetail) pickerModel {
	return pickerModel{wallets: wallets}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quit = true
		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.wallets) == 0 {
			m.quit = true
			return m, tea.Quit
		}
		chosen := m.wallets[m.cursor]
		m.chosen = &chosen
		return m, tea.Quit

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case tea.KeyDown:
		if m.cursor < len(m.wallets)-1 {
			m.cursor++
		}

	case tea.KeyRunes:
		switch string(key.Runes) {
		case "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "j":
			if m.cursor < len(m.wallets)-1 {
				m.cursor++
			}
		case "q":
			m.quit = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString("Connect a wallet\n")
	b.WriteString(strings.Repeat("─", 40) + "\n")

	if len(m.wallets) == 0 {
		b.WriteString("   (no wallets available)\n")
	}
	for i, w := range m.wallets {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString(marker + label(w) + "\n")
	}

	b.WriteString(strings.Repeat("─", 40) + "\n")
	b.WriteString("↑/↓ move · enter select · esc quit\n")
	return b.String()
}

func label(w model.WalletDetail) string {
	if w.ConnectorType == model.ConnectorDownload {
		return fmt.Sprintf("%s (install)", w.Name)
	}
	return w.Name
}

// Run shows the list and blocks until the user picks a wallet or quits.
func Run(wallets []model.WalletDetail, opts ...tea.ProgramOption) (model.WalletDetail, error) {
	final, err := tea.NewProgram(newModel(wallets), opts...).Run()
	if err != nil {
		return model.WalletDetail{}, fmt.Errorf("failed to run wallet picker: %w", err)
	}
	m, ok := final.(pickerModel)
	if !ok || m.chosen == nil {
		return model.WalletDetail{}, ErrCancelled
	}
	return *m.chosen, nil
}
