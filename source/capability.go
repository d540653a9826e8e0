package source

// EndOf returns the end offset of src, or of the first source it wraps that
// knows its end.
func EndOf[O Offset](src any) (O, bool) {
	for src != nil {
		if e, ok := src.(KnownEnd[O]); ok {
			return e.End(), true
		}
		w, ok := src.(Wrapper)
		if !ok {
			break
		}
		src = w.Underlying()
	}
	var zero O
	return zero, false
}

// SliceOf returns the view V over [from, to) of src, or of the first source
// it wraps that is sliceable to V.
func SliceOf[V any, O Offset](src any, from, to O) (V, error) {
	s, err := sliceable[O, V](src)
	if err != nil {
		var zero V
		return zero, err
	}
	return s.Slice(from, to)
}

// FullSliceOf returns the view V over all of src.
func FullSliceOf[V any, O Offset](src any) (V, error) {
	s, err := sliceable[O, V](src)
	if err != nil {
		var zero V
		return zero, err
	}
	return s.FullSlice()
}

func sliceable[O Offset, V any](src any) (Sliceable[O, V], error) {
	for src != nil {
		if s, ok := src.(Sliceable[O, V]); ok {
			return s, nil
		}
		w, ok := src.(Wrapper)
		if !ok {
			break
		}
		src = w.Underlying()
	}
	return nil, ErrUnsupported
}
