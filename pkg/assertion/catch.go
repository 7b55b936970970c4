package assertion

import (
	"fmt"

	"digital.vasic.seqtest/pkg/snapshot"
)

// Catch records whether a fault of an expected type was raised.
type Catch struct {
	typeName string
	caught   *snapshot.Value
}

// NewCatch records the outcome of waiting for a fault of the named
// type. A nil caught value means nothing matching was raised.
func NewCatch(
	m *snapshot.Marshaler,
	typeName string,
	caught any,
) *Catch {
	c := &Catch{typeName: typeName}
	if caught != nil {
		v := m.Snapshot(caught, false)
		c.caught = &v
	}
	return c
}

func (*Catch) assertion() {}

// IsPassed implements Assertion.
func (c *Catch) IsPassed() bool { return c.caught != nil }

// Kind implements Assertion.
func (c *Catch) Kind() Kind { return KindCatch }

// TypeName returns the expected fault type.
func (c *Catch) TypeName() string { return c.typeName }

// Caught returns the snapshot of the caught fault, or nil.
func (c *Catch) Caught() *snapshot.Value { return c.caught }

// Message implements Assertion.
func (c *Catch) Message() string {
	if c.caught != nil {
		return ""
	}
	return fmt.Sprintf("expected %s but nothing was raised", c.typeName)
}
