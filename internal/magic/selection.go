package magic

// Selection is the two-token element buffer. A third push clears the
// buffer before accepting the new token, and repeats of the same token
// inside the debounce window are ignored.
type Selection struct {
	elements   []Element
	debounceMs float64

	lastElement Element
	lastPushAt  float64
}

func NewSelection(debounceMs float64) *Selection {
	return &Selection{
		debounceMs: debounceMs,
		lastPushAt: -1e12,
	}
}

// Push adds an element token, reporting whether it was accepted.
func (s *Selection) Push(e Element, now float64) bool {
	if e == s.lastElement && now-s.lastPushAt < s.debounceMs {
		return false
	}
	s.lastElement = e
	s.lastPushAt = now

	if len(s.elements) >= 2 {
		s.elements = s.elements[:0]
	}
	s.elements = append(s.elements, e)
	return true
}

// Elements returns the buffered tokens in push order.
func (s *Selection) Elements() []Element {
	return s.elements
}

// Full reports whether two tokens are buffered.
func (s *Selection) Full() bool {
	return len(s.elements) == 2
}

// Pair returns the buffered tokens when exactly two are held.
func (s *Selection) Pair() (Element, Element, bool) {
	if len(s.elements) != 2 {
		return ElementNone, ElementNone, false
	}
	return s.elements[0], s.elements[1], true
}

func (s *Selection) Clear() {
	s.elements = s.elements[:0]
}
