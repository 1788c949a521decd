package jsonpath

import (
	"encoding/json"
	"fmt"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Document is a parsed JSON body that path expressions can be resolved against. It is
// immutable and safe to share.
type Document struct {
	root ldvalue.Value
}

// ParseDocument parses a JSON body once so that any number of paths can be resolved
// against it.
func ParseDocument(body []byte) (*Document, error) {
	var root ldvalue.Value
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	return &Document{root: root}, nil
}

// Root returns the whole document.
func (d *Document) Root() ldvalue.Value {
	return d.root
}

// JSON re-serializes the document.
func (d *Document) JSON() []byte {
	return []byte(d.root.JSONString())
}

// Lookup resolves a path to whatever value it refers to, which may be an object or a list.
//
// A field step on an object selects that key. A field step on a list applies to every
// element, so against a list of users "address.city" is the list of every user's city. An
// index step selects one element of a list, and when it follows field steps that were
// applied to a list it picks the record those steps came from: "name[4]" against a list of
// users is the name of the fifth user, whatever the other users carry. A record that lacks
// a key only fails the lookup if that record is the one selected; otherwise it contributes
// null, as it would in GPath. "tags[1]" against a single record is the second element of
// its "tags" field.
func (d *Document) Lookup(p Path) (ldvalue.Value, error) {
	cur := step{value: d.root}
	for i, t := range p.tokens {
		var err error
		switch t.Kind {
		case FieldToken:
			cur = cur.field(t.Field, i)
		case IndexToken:
			cur, err = cur.index(t.Index)
		}
		if err != nil {
			return ldvalue.Null(), &PathError{Path: p.String(), Segment: p.canonical(i + 1), Err: err}
		}
	}
	if cur.err != nil {
		return ldvalue.Null(), &PathError{Path: p.String(), Segment: p.canonical(cur.errAt + 1), Err: cur.err}
	}
	return cur.build(), nil
}

// Resolve resolves a path that must end on a single scalar value.
func (d *Document) Resolve(p Path) (Scalar, error) {
	v, err := d.Lookup(p)
	if err != nil {
		return Scalar{}, err
	}
	if !isScalar(v) {
		return Scalar{}, &PathError{Path: p.String(), Err: fmt.Errorf("%w: found %s", ErrNotScalar, describe(v))}
	}
	return Scalar{v: v}, nil
}

// ResolveAll resolves a path that ends on either a scalar or a list of scalars, such as
// "id" against a list of records. A single scalar is returned as a one-element slice.
func (d *Document) ResolveAll(p Path) ([]Scalar, error) {
	v, err := d.Lookup(p)
	if err != nil {
		return nil, err
	}
	if isScalar(v) {
		return []Scalar{{v: v}}, nil
	}
	if v.Type() != ldvalue.ArrayType {
		return nil, &PathError{Path: p.String(), Err: fmt.Errorf("%w: found %s", ErrNotScalar, describe(v))}
	}
	ret := make([]Scalar, 0, v.Count())
	for i := 0; i < v.Count(); i++ {
		elem := v.GetByIndex(i)
		if !isScalar(elem) {
			return nil, &PathError{
				Path: p.String(),
				Err:  fmt.Errorf("%w: element %d is %s", ErrNotScalar, i, describe(elem)),
			}
		}
		ret = append(ret, Scalar{v: elem})
	}
	return ret, nil
}

// Resolve parses body and resolves a single path expression against it.
func Resolve(body []byte, expr string) (Scalar, error) {
	p, err := Parse(expr)
	if err != nil {
		return Scalar{}, err
	}
	doc, err := ParseDocument(body)
	if err != nil {
		return Scalar{}, err
	}
	return doc.Resolve(p)
}

// step is an intermediate lookup result. After a field step has been applied to a list,
// elements holds one result per list element, so that a later index can still pick out a
// single record. A result for which the field was missing carries err and the position of
// the token that failed.
type step struct {
	value    ldvalue.Value
	elements []step
	spread   bool
	err      error
	errAt    int
}

func (s step) field(name string, at int) step {
	switch {
	case s.err != nil:
		return s
	case s.spread:
		out := step{spread: true, elements: make([]step, len(s.elements))}
		for i, e := range s.elements {
			out.elements[i] = e.field(name, at)
		}
		return out
	}
	switch s.value.Type() {
	case ldvalue.ObjectType:
		if !hasKey(s.value, name) {
			return step{err: fmt.Errorf("%w: object has no key %q", ErrFieldNotFound, name), errAt: at}
		}
		return step{value: s.value.GetByKey(name)}
	case ldvalue.ArrayType:
		out := step{spread: true, elements: make([]step, s.value.Count())}
		for i := range out.elements {
			out.elements[i] = step{value: s.value.GetByIndex(i)}.field(name, at)
		}
		return out
	default:
		return step{
			err:   fmt.Errorf("%w: cannot select %q from %s", ErrFieldNotFound, name, describe(s.value)),
			errAt: at,
		}
	}
}

func (s step) index(index int) (step, error) {
	if s.err != nil {
		return s, nil
	}
	if s.spread {
		pos, err := position(index, len(s.elements))
		if err != nil {
			return step{}, err
		}
		return s.elements[pos], nil
	}
	if s.value.Type() != ldvalue.ArrayType {
		return step{}, fmt.Errorf("%w: cannot index %s", ErrIndexOutOfRange, describe(s.value))
	}
	pos, err := position(index, s.value.Count())
	if err != nil {
		return step{}, err
	}
	return step{value: s.value.GetByIndex(pos)}, nil
}

// build turns the step back into a value. Elements that lacked a key become null.
func (s step) build() ldvalue.Value {
	switch {
	case s.err != nil:
		return ldvalue.Null()
	case s.spread:
		b := ldvalue.ArrayBuildWithCapacity(len(s.elements))
		for _, e := range s.elements {
			b.Add(e.build())
		}
		return b.Build()
	}
	return s.value
}

func position(index, n int) (int, error) {
	pos := index
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return 0, fmt.Errorf("%w: index %d, list has %d elements", ErrIndexOutOfRange, index, n)
	}
	return pos, nil
}

func hasKey(v ldvalue.Value, name string) bool {
	for _, k := range v.Keys() {
		if k == name {
			return true
		}
	}
	return false
}

func isScalar(v ldvalue.Value) bool {
	t := v.Type()
	return t != ldvalue.ObjectType && t != ldvalue.ArrayType
}

func describe(v ldvalue.Value) string {
	switch v.Type() {
	case ldvalue.ObjectType:
		return fmt.Sprintf("an object with %d keys", v.Count())
	case ldvalue.ArrayType:
		return fmt.Sprintf("a list of %d elements", v.Count())
	case ldvalue.NullType:
		return "null"
	default:
		return fmt.Sprintf("the %s %s", v.Type(), v.JSONString())
	}
}
