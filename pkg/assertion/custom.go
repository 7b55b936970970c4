package assertion

import "digital.vasic.seqtest/pkg/snapshot"

// Custom is a verdict computed by the caller, optionally with a
// message and named data.
type Custom struct {
	passed  bool
	message string
	data    []snapshot.Property
}

// NewCustom records a pre-computed verdict. Each data pair is
// snapshotted on its own, so a fault while reading one does not
// affect the others.
func NewCustom(
	m *snapshot.Marshaler,
	passed bool,
	message string,
	data ...snapshot.Pair,
) *Custom {
	return &Custom{
		passed:  passed,
		message: message,
		data:    m.Properties(data, passed),
	}
}

func (*Custom) assertion() {}

// IsPassed implements Assertion.
func (c *Custom) IsPassed() bool { return c.passed }

// Kind implements Assertion.
func (c *Custom) Kind() Kind { return KindCustom }

// Message implements Assertion.
func (c *Custom) Message() string { return c.message }

// Data returns the snapshotted data in the order it was given.
func (c *Custom) Data() []snapshot.Property {
	return append([]snapshot.Property(nil), c.data...)
}
