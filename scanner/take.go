package scanner

// Take consumes the next rune if it is want.
func (s *Scanner) Take(want rune) (bool, error) {
	r, ok, err := s.Peek()
	if err != nil || !ok || r != want {
		return false, err
	}
	if _, _, err = s.Consume(); err != nil {
		return false, err
	}
	return true, nil
}

// TakeWhile consumes runes as long as pred holds and returns how many it
// consumed.
func (s *Scanner) TakeWhile(pred func(rune) bool) (int, error) {
	n := 0
	for {
		r, ok, err := s.Peek()
		if err != nil || !ok || !pred(r) {
			return n, err
		}
		if _, _, err = s.Consume(); err != nil {
			return n, err
		}
		n++
	}
}

// TakeUntil consumes runes up to the first one satisfying pred.
func (s *Scanner) TakeUntil(pred func(rune) bool) (int, error) {
	return s.TakeWhile(func(r rune) bool { return !pred(r) })
}

func (s *Scanner) TakeWhileChar(want rune) (int, error) {
	return s.TakeWhile(func(r rune) bool { return r == want })
}

func (s *Scanner) TakeUntilChar(want rune) (int, error) {
	return s.TakeWhile(func(r rune) bool { return r != want })
}

// TakeMulti consumes lit rune by rune and reports whether all of it matched.
// The runes matched before a mismatch stay consumed.
func (s *Scanner) TakeMulti(lit string) (bool, error) {
	for _, want := range lit {
		ok, err := s.Take(want)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
