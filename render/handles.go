package render

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"github.com/plus3/orrery/solar"
)

// Handle is an opaque reference to a renderer's visual for one body.
type Handle uint32

// HandleTable maps body ids to handles. Handles are handed out in
// registration order starting at zero, so a renderer can use them as slice
// indices.
type HandleTable struct {
	handles *intmap.Map[solar.BodyId, Handle]
	next    Handle
}

// NewHandleTable creates an empty table.
func NewHandleTable() *HandleTable {
	return &HandleTable{
		handles: intmap.New[solar.BodyId, Handle](16),
	}
}

// Assign returns the handle for id, allocating one on first use.
// The second result is false when the id was already registered.
func (t *HandleTable) Assign(id solar.BodyId) (Handle, bool) {
	if h, ok := t.handles.Get(id); ok {
		return h, false
	}
	h := t.next
	t.next++
	t.handles.Put(id, h)
	return h, true
}

// Lookup returns the handle for id or ErrUnknownBody.
func (t *HandleTable) Lookup(id solar.BodyId) (Handle, error) {
	h, ok := t.handles.Get(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, id)
	}
	return h, nil
}

// Len returns the number of registered bodies.
func (t *HandleTable) Len() int {
	return t.handles.Len()
}

// Clear drops every handle. Handles are reissued from zero afterwards.
func (t *HandleTable) Clear() {
	t.handles.Clear()
	t.next = 0
}
