package quark

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"
)

// Dispose releases every resource held by root and its descendants.
//
// Each node is visited once. A resource shared by several nodes is released
// once. A node that fails, by returning an error or panicking, does not stop
// the others; all failures are returned combined.
func Dispose(root Node) error {
	d := disposal{seen: make(map[Disposer]struct{})}
	Traverse(root, d.node)
	return d.err
}

type disposal struct {
	seen map[Disposer]struct{}
	err  error
}

func (d *disposal) node(n Node) {
	h, ok := n.(Holder)
	if !ok {
		return
	}
	name := n.Base().Name

	ds, err := collect(h)
	for _, e := range multierr.Errors(err) {
		d.err = multierr.Append(d.err, fmt.Errorf("quark: dispose %q: %w", name, e))
	}
	for _, r := range ds {
		if isNil(r) || d.released(r) {
			continue
		}
		if err := release(r); err != nil {
			d.err = multierr.Append(d.err, fmt.Errorf("quark: dispose %q: %w", name, err))
		}
	}
}

func (d *disposal) released(r Disposer) bool {
	if !reflect.TypeOf(r).Comparable() {
		return false
	}
	if _, ok := d.seen[r]; ok {
		return true
	}
	d.seen[r] = struct{}{}
	return false
}

func collect(h Holder) (ds []Disposer, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = multierr.Append(err, fmt.Errorf("panic: %v", p))
		}
	}()
	return h.Disposables()
}

func release(r Disposer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return r.Dispose()
}

func isNil(r Disposer) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}
