package test

import (
	"context"
	"fmt"
	"iter"

	"digital.vasic.seqtest/pkg/assertion"
	"digital.vasic.seqtest/pkg/snapshot"
)

// GroupOption configures how a group is built.
type GroupOption func(*groupConfig)

type groupConfig struct {
	ctx       context.Context
	marshaler *snapshot.Marshaler
	data      []snapshot.Pair
}

// WithData attaches named values to the group. They are
// snapshotted before the sequence is consumed.
func WithData(pairs ...snapshot.Pair) GroupOption {
	return func(c *groupConfig) {
		c.data = append(c.data, pairs...)
	}
}

// WithDataMarshaler sets the marshaler used for group data.
func WithDataMarshaler(m *snapshot.Marshaler) GroupOption {
	return func(c *groupConfig) {
		c.marshaler = m
	}
}

// WithContext stops consumption, recording the context's cause as
// the group fault, once ctx is done. The context is checked
// between pulls only.
func WithContext(ctx context.Context) GroupOption {
	return func(c *groupConfig) {
		c.ctx = ctx
	}
}

func newGroupConfig(opts []GroupOption) groupConfig {
	c := groupConfig{ctx: context.Background()}
	for _, opt := range opts {
		opt(&c)
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c
}

// ToGroup consumes seq into a named group. Each pull from seq is
// guarded separately: a panic stops consumption, the tests pulled
// before it are kept, and the panic is recorded as the group's
// fault. ToGroup does not panic.
func ToGroup(
	name string,
	seq iter.Seq[Test],
	opts ...GroupOption,
) *Group {
	cfg := newGroupConfig(opts)
	data := cfg.marshaler.Properties(cfg.data, false)

	if seq == nil {
		return newGroup(name, nil, ErrNilSequence, data)
	}

	next, stop := iter.Pull(seq)
	defer quietly(stop)

	var tests []Test
	for {
		if err := interrupted(cfg.ctx, name); err != nil {
			return newGroup(name, tests, err, data)
		}

		t, ok, err := pull(next)
		if err != nil {
			return newGroup(name, tests, err, data)
		}
		if !ok {
			return newGroup(name, tests, nil, data)
		}
		tests = append(tests, orNilLeaf(t))
	}
}

// ToGroupErr is ToGroup for sequences that report faults as
// errors. A non-nil error stops consumption and becomes the group
// fault; a test yielded together with it is kept.
func ToGroupErr(
	name string,
	seq iter.Seq2[Test, error],
	opts ...GroupOption,
) *Group {
	cfg := newGroupConfig(opts)
	data := cfg.marshaler.Properties(cfg.data, false)

	if seq == nil {
		return newGroup(name, nil, ErrNilSequence, data)
	}

	next, stop := iter.Pull2(seq)
	defer quietly(stop)

	var tests []Test
	for {
		if err := interrupted(cfg.ctx, name); err != nil {
			return newGroup(name, tests, err, data)
		}

		t, yielded, ok, err := pull2(next)
		if err != nil {
			return newGroup(name, tests, err, data)
		}
		if !ok {
			return newGroup(name, tests, nil, data)
		}
		if yielded != nil {
			if !isNilTest(t) {
				tests = append(tests, t)
			}
			return newGroup(name, tests, yielded, data)
		}
		tests = append(tests, orNilLeaf(t))
	}
}

func pull(next func() (Test, bool)) (t Test, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	t, ok = next()
	return t, ok, nil
}

func pull2(
	next func() (Test, error, bool),
) (t Test, yielded error, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewPanicError(r)
		}
	}()
	t, yielded, ok = next()
	return t, yielded, ok, nil
}

func interrupted(ctx context.Context, name string) error {
	if ctx.Err() == nil {
		return nil
	}
	return fmt.Errorf("group %s interrupted: %w", name, context.Cause(ctx))
}

// quietly runs stop, discarding a panic raised by the sequence's
// cleanup after it was told to stop.
func quietly(stop func()) {
	defer func() { _ = recover() }()
	stop()
}

func isNilTest(t Test) bool {
	switch t := t.(type) {
	case nil:
		return true
	case *Leaf:
		return t == nil
	case *Group:
		return t == nil
	default:
		return false
	}
}

func orNilLeaf(t Test) Test {
	if !isNilTest(t) {
		return t
	}
	return ToLeaf("<nil>", assertion.NewCustom(
		nil, false, "sequence yielded a nil test",
	))
}
