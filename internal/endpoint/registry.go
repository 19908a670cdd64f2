package endpoint

import "fmt"

// Shape classifies what a successful response body looks like, so the
// fallback chain can always produce a shape-correct value.
type Shape int

const (
	ShapeCollection Shape = iota // ordered list of objects
	ShapeSingular                // one object, or absent
	ShapeStats                   // structured aggregate object
)

// Endpoint describes one logical backend operation: its identifier,
// path pattern, response shape, whether it mutates server state, and
// an optional static default served when both the live call and the
// cache fail.
type Endpoint struct {
	Name     string
	Method   string
	Path     string
	Shape    Shape
	Mutating bool
	Default  func() any
}

// Registry maps endpoint identifiers to their descriptors. It replaces
// guessing response shape from path suffixes with an explicit table.
type Registry struct {
	endpoints map[string]Endpoint
}

func NewRegistry(endpoints ...Endpoint) (*Registry, error) {
	r := &Registry{endpoints: make(map[string]Endpoint, len(endpoints))}
	for _, ep := range endpoints {
		if ep.Name == "" {
			return nil, fmt.Errorf("endpoint with path %q has no name", ep.Path)
		}
		if _, exists := r.endpoints[ep.Name]; exists {
			return nil, fmt.Errorf("duplicate endpoint %q", ep.Name)
		}
		r.endpoints[ep.Name] = ep
	}

	return r, nil
}

func (r *Registry) Lookup(name string) (Endpoint, bool) {
	ep, ok := r.endpoints[name]
	return ep, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.endpoints))
	for name := range r.endpoints {
		names = append(names, name)
	}
	return names
}

// EmptyValue returns the generic empty value for a shape: collections
// get an empty list, aggregates an empty object, singular resources
// are reported absent.
func EmptyValue(shape Shape) any {
	switch shape {
	case ShapeCollection:
		return []any{}
	case ShapeStats:
		return map[string]any{}
	default:
		return nil
	}
}

func (s Shape) String() string {
	switch s {
	case ShapeCollection:
		return "collection"
	case ShapeSingular:
		return "singular"
	case ShapeStats:
		return "stats"
	default:
		return "unknown"
	}
}
