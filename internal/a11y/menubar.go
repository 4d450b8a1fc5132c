package a11y

import "fmt"

// Menubar indexes the top-level menus of an application window
type Menubar struct {
	// Names lists menu names in display order
	Names []string
	Menus map[string]Node
}

// Menu returns the menu with the given name
func (m Menubar) Menu(name string) (Node, bool) {
	n, ok := m.Menus[name]
	return n, ok
}

// LoadMenubar locates the unnamed menu bar under app and indexes its menus
func LoadMenubar(app Node) (Menubar, error) {
	bar, err := FindElement(app, "", RoleMenuBar, DefaultMaxDepth)
	if err != nil {
		return Menubar{}, fmt.Errorf("failed to load menubar: %w", err)
	}

	children, err := Children(bar)
	if err != nil {
		return Menubar{}, fmt.Errorf("failed to load menubar: %w", err)
	}

	menubar := Menubar{Menus: make(map[string]Node)}
	for _, child := range children {
		if role, err := child.RoleName(); err != nil || role != RoleMenu {
			continue
		}
		name, err := child.Name()
		if err != nil {
			continue
		}
		if _, dup := menubar.Menus[name]; !dup {
			menubar.Names = append(menubar.Names, name)
		}
		menubar.Menus[name] = child
	}
	return menubar, nil
}
