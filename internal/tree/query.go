package tree

func (n *Node) checkSpan(op string, left, right int) error {
	var err error
	switch {
	case left > right:
		err = ErrEmptySpan
	case left < 0 || right >= n.Len():
		err = ErrSpanOutOfRange
	default:
		return nil
	}
	return &SpanError{Op: op, Left: left, Right: right, Len: n.Len(), Err: err}
}

// containing returns the unique child whose span contains [left, right].
func (n *Node) containing(left, right int) *Node {
	for _, c := range n.children {
		l, r := c.Span()
		if l <= left && right <= r {
			return c
		}
	}
	return nil
}

// Enclosing returns the smallest subtree whose span contains [left, right].
// With equal=false the descent stops above a child whose span is exactly
// [left, right], which yields the smallest strictly larger span.
// When no child contains the range, n itself is returned.
func (n *Node) Enclosing(left, right int, equal bool) (*Node, error) {
	if err := n.checkSpan("enclosing", left, right); err != nil {
		return nil, err
	}
	return n.enclosing(left, right, equal), nil
}

func (n *Node) enclosing(left, right int, equal bool) *Node {
	cur := n
	for {
		c := cur.containing(left, right)
		if c == nil {
			return cur
		}
		if !equal {
			if l, r := c.Span(); l == left && r == right {
				return cur
			}
		}
		cur = c
	}
}

// SpanLabels returns the labels of internal nodes whose span is exactly
// [left, right], outermost first. A range that matches no node yields an
// empty slice.
func (n *Node) SpanLabels(left, right int) ([]string, error) {
	if err := n.checkSpan("span labels", left, right); err != nil {
		return nil, err
	}
	out := []string{}
	for cur := n; cur != nil && !cur.IsLeaf(); cur = cur.containing(left, right) {
		if l, r := cur.Span(); l == left && r == right {
			out = append(out, cur.label)
		}
	}
	return out, nil
}

// SpanSplits returns the left bounds of the children of the smallest
// enclosing subtree that fall in (left, right], in child order.
func (n *Node) SpanSplits(left, right int) ([]int, error) {
	if err := n.checkSpan("span splits", left, right); err != nil {
		return nil, err
	}
	sub := n.enclosing(left, right, true)
	out := []int{}
	for _, c := range sub.children {
		if l := c.LeftSpan(); left < l && l <= right {
			out = append(out, l)
		}
	}
	return out, nil
}

// Exact returns the outermost node whose span equals [left, right].
// The boolean is false when no node has exactly this span.
func (n *Node) Exact(left, right int) (*Node, bool, error) {
	if err := n.checkSpan("exact", left, right); err != nil {
		return nil, false, err
	}
	for cur := n; cur != nil; cur = cur.containing(left, right) {
		if l, r := cur.Span(); l == left && r == right {
			return cur, true, nil
		}
	}
	return nil, false, nil
}
