// Package a11y searches accessibility trees.
//
// The search functions work on the small Node interface so they can be
// exercised against in-memory trees; AT-SPI provides the live implementation.
package a11y

import (
	"errors"
	"fmt"
)

// DefaultMaxLevel is the deepest node whose children the driver's lookups
// still examine; matches can therefore sit one level below it.
const DefaultMaxLevel = 10

// DefaultMaxDepth bounds FindElement when callers have no better limit
const DefaultMaxDepth = DefaultMaxLevel + 1

// Roles used by the driver
const (
	RoleApplication = "application"
	RoleMenuBar     = "menu bar"
	RoleMenu        = "menu"
)

// ErrNotFound is returned when no node matches a search
var ErrNotFound = errors.New("accessible element not found")

// Node is an element of an accessibility tree
type Node interface {
	Name() (string, error)
	RoleName() (string, error)
	ChildCount() (int, error)
	// ChildAt may return a nil Node for a child that vanished
	ChildAt(i int) (Node, error)
}

// FindElement returns the first node below root, in depth-first pre-order,
// whose role is role and whose name is label. Root itself is never matched.
// Children of root are at depth 1; nodes deeper than maxDepth are not visited.
// Children that cannot be read are skipped.
func FindElement(root Node, label, role string, maxDepth int) (Node, error) {
	if root == nil {
		return nil, fmt.Errorf("find %s %q: nil root", role, label)
	}
	if _, err := root.ChildCount(); err != nil {
		return nil, fmt.Errorf("find %s %q: %w", role, label, err)
	}

	if found := findElement(root, label, role, 1, maxDepth); found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("find %s %q within depth %d: %w", role, label, maxDepth, ErrNotFound)
}

func findElement(node Node, label, role string, depth, maxDepth int) Node {
	if depth > maxDepth {
		return nil
	}

	count, err := node.ChildCount()
	if err != nil {
		return nil
	}
	for i := 0; i < count; i++ {
		child, err := node.ChildAt(i)
		if err != nil || child == nil {
			continue
		}
		if matches(child, label, role) {
			return child
		}
		if found := findElement(child, label, role, depth+1, maxDepth); found != nil {
			return found
		}
	}
	return nil
}

func matches(n Node, label, role string) bool {
	r, err := n.RoleName()
	if err != nil || r != role {
		return false
	}
	name, err := n.Name()
	return err == nil && name == label
}

// Children returns the readable, non-nil children of n
func Children(n Node) ([]Node, error) {
	count, err := n.ChildCount()
	if err != nil {
		return nil, err
	}
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		child, err := n.ChildAt(i)
		if err != nil || child == nil {
			continue
		}
		children = append(children, child)
	}
	return children, nil
}

// FindApplication returns the direct child of the desktop root named name
func FindApplication(desktop Node, name string) (Node, error) {
	apps, err := Children(desktop)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	for _, app := range apps {
		if n, err := app.Name(); err == nil && n == name {
			return app, nil
		}
	}
	return nil, fmt.Errorf("application %q: %w", name, ErrNotFound)
}
