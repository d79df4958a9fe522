package update

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Window  key.Binding
	Sort    key.Binding
	List    key.Binding
	Tag     key.Binding
	Clear   key.Binding
	Palette key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Window:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "cycle window")),
		Sort:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "date/priority sort")),
		List:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "cycle list")),
		Tag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle tag")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		Palette: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to view")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Window, k.Sort, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete, k.Clear},
		{k.Window, k.Sort, k.List, k.Tag},
		{k.Palette, k.Back, k.Help, k.Quit},
	}
}

// bindingLines lists every binding as "- key: action" for the help pane.
func (k keyMap) bindingLines() []string {
	out := make([]string, 0, 13)
	for _, group := range k.FullHelp() {
		for _, b := range group {
			h := b.Help()
			out = append(out, "- "+h.Key+": "+h.Desc)
		}
	}
	return out
}
