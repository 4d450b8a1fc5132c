package a11y

// Static is an in-memory Node
type Static struct {
	Label    string
	Role     string
	Children []*Static
}

// NewStatic builds a Static node with the given children
func NewStatic(label, role string, children ...*Static) *Static {
	return &Static{Label: label, Role: role, Children: children}
}

func (s *Static) Name() (string, error)     { return s.Label, nil }
func (s *Static) RoleName() (string, error) { return s.Role, nil }
func (s *Static) ChildCount() (int, error)  { return len(s.Children), nil }

func (s *Static) ChildAt(i int) (Node, error) {
	c := s.Children[i]
	if c == nil {
		return nil, nil
	}
	return c, nil
}
