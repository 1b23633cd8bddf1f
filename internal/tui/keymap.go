package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap 汇总聊天界面的按键绑定，实现 help.KeyMap。
type keyMap struct {
	Send        key.Binding
	Cancel      key.Binding
	Quit        key.Binding
	Backspace   key.Binding
	Delete      key.Binding
	Left        key.Binding
	Right       key.Binding
	Home        key.Binding
	End         key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Complete    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		Left:      key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:     key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "history"),
		),
		HistoryNext: key.NewBinding(key.WithKeys("down")),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp/Dn", "scroll"),
		),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
	}
}

// demoKeyMap 演示模式下只展示退出提示。
func demoKeyMap() keyMap {
	km := defaultKeyMap()
	km.Send.SetEnabled(false)
	km.Cancel.SetEnabled(false)
	km.HistoryPrev.SetEnabled(false)
	km.PageUp.SetEnabled(false)
	km.Complete.SetEnabled(false)
	km.Quit.SetHelp("any key", "exit")
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Cancel, k.HistoryPrev, k.PageUp, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Cancel, k.Quit},
		{k.HistoryPrev, k.PageUp, k.Complete},
	}
}
