package view

import (
	"reflect"

	"github.com/ioxu/boxer/pkg/errors"
)

// NoneName is the label shown for a leaf without a view.
const NoneName = errors.NoneViewName

var viewInterface = reflect.TypeFor[View]()

// Type is a registered view type.
type Type struct {
	// Name is the display name the type was registered under.
	Name string
	// Index is the position of the type in its catalog.
	Index int

	rtype reflect.Type
}

// GoType returns the concrete pointer type of views of this type.
func (t *Type) GoType() reflect.Type { return t.rtype }

// New instantiates a zero-valued view of this type.
func (t *Type) New() View {
	return reflect.New(t.rtype.Elem()).Interface().(View)
}

// Catalog is the ordered list of view types a frontend offers. Build one at
// startup and hand it to every Registry that needs it.
//
// Catalog is not safe for concurrent registration.
type Catalog struct {
	types  []*Type
	byName map[string]*Type
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Type)}
}

// Register adds a view type under name. prototype is a typed pointer, for
// example (*GraphView)(nil); its value is never used.
//
// The prototype must be a pointer to a struct implementing View, and both
// the name and the type must be new to the catalog. On error the catalog is
// unchanged.
func (c *Catalog) Register(name string, prototype any) error {
	if err := errors.ValidateViewName(name); err != nil {
		return err
	}
	if prototype == nil {
		return errors.New(errors.ErrCodeInvalidViewType, "cannot register %q: prototype is nil", name)
	}
	rt := reflect.TypeOf(prototype)
	if rt.Kind() != reflect.Pointer || rt.Elem().Kind() != reflect.Struct {
		return errors.New(errors.ErrCodeInvalidViewType, "cannot register %q: %s is not a pointer to a struct", name, rt)
	}
	if !rt.Implements(viewInterface) {
		return errors.New(errors.ErrCodeInvalidViewType, "cannot register %q: %s does not implement view.View", name, rt)
	}
	if _, dup := c.byName[name]; dup {
		return errors.New(errors.ErrCodeInvalidViewType, "view type %q is already registered", name)
	}
	if idx := c.IndexOf(rt); idx >= 0 {
		return errors.New(errors.ErrCodeInvalidViewType, "%s is already registered as %q", rt, c.types[idx].Name)
	}

	t := &Type{Name: name, Index: len(c.types), rtype: rt}
	c.types = append(c.types, t)
	c.byName[name] = t
	return nil
}

// Types returns the registered types in registration order.
func (c *Catalog) Types() []*Type {
	out := make([]*Type, len(c.types))
	copy(out, c.types)
	return out
}

// Names returns NoneName followed by every registered name, the order a
// view picker shows them in.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.types)+1)
	out = append(out, NoneName)
	for _, t := range c.types {
		out = append(out, t.Name)
	}
	return out
}

// Lookup returns the type registered under name. NoneName resolves to a nil
// *Type, which ChangeContainerView treats as "remove the view".
func (c *Catalog) Lookup(name string) (*Type, error) {
	if name == NoneName {
		return nil, nil
	}
	t, ok := c.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no view type named %q", name)
	}
	return t, nil
}

// IndexOf returns the catalog index of the concrete view type rt, or -1.
func (c *Catalog) IndexOf(rt reflect.Type) int {
	for i, t := range c.types {
		if t.rtype == rt {
			return i
		}
	}
	return -1
}

// Len returns the number of registered types.
func (c *Catalog) Len() int { return len(c.types) }
