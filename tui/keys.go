package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Launch   key.Binding
	Download key.Binding
	Runtime  key.Binding
	Fetch    key.Binding
	Settings key.Binding
	Quit     key.Binding
}

type settingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Done   key.Binding
	Save   key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

var listKeys = listKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Down")),
	Launch:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Launch")),
	Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Download")),
	Runtime:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Install Java")),
	Fetch:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Fetch versions")),
	Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Settings")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
}

var settingsKeys = settingsKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑", "Up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "Down")),
	Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Edit")),
	Done:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "Done")),
	Save:   key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "Save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
}
