package a11y

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// AT-SPI well-known names and paths
const (
	a11yBusName  = "org.a11y.Bus"
	a11yBusPath  = dbus.ObjectPath("/org/a11y/bus")
	registryName = "org.a11y.atspi.Registry"
	rootPath     = dbus.ObjectPath("/org/a11y/atspi/accessible/root")
	nullPath     = dbus.ObjectPath("/org/a11y/atspi/null")

	accessibleIface = "org.a11y.atspi.Accessible"
)

// Desktop is a connection to the AT-SPI accessibility bus
type Desktop struct {
	conn *dbus.Conn
}

// ConnectDesktop asks the session bus for the accessibility bus address and connects to it
func ConnectDesktop(ctx context.Context) (*Desktop, error) {
	session, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var address string
	call := session.Object(a11yBusName, a11yBusPath).CallWithContext(ctx, a11yBusName+".GetAddress", 0)
	if err := call.Store(&address); err != nil {
		return nil, fmt.Errorf("failed to get accessibility bus address: %w", err)
	}

	conn, err := dbus.Connect(address, dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to accessibility bus: %w", err)
	}
	return &Desktop{conn: conn}, nil
}

// Root returns the registry's desktop node; its children are applications
func (d *Desktop) Root() Node {
	return &atspiNode{conn: d.conn, dest: registryName, path: rootPath}
}

// Close closes the accessibility bus connection
func (d *Desktop) Close() error {
	return d.conn.Close()
}

// objectRef is the (so) pair AT-SPI uses to reference accessibles
type objectRef struct {
	Name string
	Path dbus.ObjectPath
}

type atspiNode struct {
	conn *dbus.Conn
	dest string
	path dbus.ObjectPath
}

func (n *atspiNode) object() dbus.BusObject {
	return n.conn.Object(n.dest, n.path)
}

func (n *atspiNode) Name() (string, error) {
	v, err := n.object().GetProperty(accessibleIface + ".Name")
	if err != nil {
		return "", fmt.Errorf("read name of %s: %w", n.path, err)
	}
	name, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("read name of %s: unexpected type %s", n.path, v.Signature())
	}
	return name, nil
}

func (n *atspiNode) RoleName() (string, error) {
	var role string
	if err := n.object().Call(accessibleIface+".GetRoleName", 0).Store(&role); err != nil {
		return "", fmt.Errorf("read role of %s: %w", n.path, err)
	}
	return role, nil
}

func (n *atspiNode) ChildCount() (int, error) {
	v, err := n.object().GetProperty(accessibleIface + ".ChildCount")
	if err != nil {
		return 0, fmt.Errorf("read child count of %s: %w", n.path, err)
	}
	count, ok := v.Value().(int32)
	if !ok {
		return 0, fmt.Errorf("read child count of %s: unexpected type %s", n.path, v.Signature())
	}
	return int(count), nil
}

func (n *atspiNode) ChildAt(i int) (Node, error) {
	var ref objectRef
	if err := n.object().Call(accessibleIface+".GetChildAtIndex", 0, int32(i)).Store(&ref); err != nil {
		return nil, fmt.Errorf("read child %d of %s: %w", i, n.path, err)
	}
	if ref.Path == nullPath || ref.Name == "" {
		return nil, nil
	}
	return &atspiNode{conn: n.conn, dest: ref.Name, path: ref.Path}, nil
}
