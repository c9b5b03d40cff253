package ref

import "github.com/zero-day-ai/jsonschema/schema"

type frame struct {
	node    *schema.Node
	descend bool
}

// Session is the resolution stack of one compilation. It is not safe for
// concurrent use; each compilation owns its own Session.
type Session struct {
	stack []frame
	index map[*schema.Node]int
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{index: make(map[*schema.Node]int)}
}

// Enter pushes n. descend records whether n applies to a child of the
// value its parent applies to (a property or an item) rather than to the
// same value (a $ref or a combinator branch). Enter returns false, leaving
// the stack unchanged, when n is already being resolved: the caller has
// found a cycle and must defer.
func (s *Session) Enter(n *schema.Node, descend bool) bool {
	if _, ok := s.index[n]; ok {
		return false
	}
	s.index[n] = len(s.stack)
	s.stack = append(s.stack, frame{node: n, descend: descend})
	return true
}

// Leave pops n, which must be the most recently entered node.
func (s *Session) Leave(n *schema.Node) {
	if len(s.stack) == 0 || s.stack[len(s.stack)-1].node != n {
		panic("ref: unbalanced Session.Leave")
	}
	s.stack = s.stack[:len(s.stack)-1]
	delete(s.index, n)
}

// Active reports whether n is on the stack.
func (s *Session) Active(n *schema.Node) bool {
	_, ok := s.index[n]
	return ok
}

// Descends reports whether any frame entered after n moved to a child
// value. A cycle back to n that does not descend would apply n to the same
// value forever.
func (s *Session) Descends(n *schema.Node) bool {
	i, ok := s.index[n]
	if !ok {
		return false
	}
	for _, f := range s.stack[i+1:] {
		if f.descend {
			return true
		}
	}
	return false
}

// Depth returns the number of nodes on the stack.
func (s *Session) Depth() int {
	return len(s.stack)
}
