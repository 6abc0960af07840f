package engine

// Data is the carrier for values shared between steps.
//
// It is a plain string-keyed mapping; key order is irrelevant. A Data handed
// to a step callable must be treated as read-only: derive changed copies with
// Clone or With, never assign into a received Data.
type Data map[string]any

// Get returns the value stored under key.
// Returns a *MissingKeyError if the key is absent.
func (d Data) Get(key string) (any, error) {
	v, ok := d[key]
	if !ok {
		return nil, &MissingKeyError{Key: key}
	}
	return v, nil
}

// Int returns the integer stored under key.
//
// Both int and int64 are accepted, since YAML and JSON decoders disagree on
// which one they produce. Returns a *MissingKeyError if the key is absent and
// a *WrongTypeError if the value is not an integer.
func (d Data) Int(key string) (int, error) {
	v, err := d.Get(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, &WrongTypeError{Key: key, Want: "int", Got: v}
	}
}

// String returns the string stored under key.
// Returns a *MissingKeyError if the key is absent and a *WrongTypeError if
// the value is not a string.
func (d Data) String(key string) (string, error) {
	v, err := d.Get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &WrongTypeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// Bool returns the boolean stored under key.
// Returns a *MissingKeyError if the key is absent and a *WrongTypeError if
// the value is not a bool.
func (d Data) Bool(key string) (bool, error) {
	v, err := d.Get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &WrongTypeError{Key: key, Want: "bool", Got: v}
	}
	return b, nil
}

// Clone returns a shallow copy of the Data.
// A nil Data clones to an empty, non-nil Data.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// With returns a copy of the Data with key set to value.
// The receiver is never mutated.
func (d Data) With(key string, value any) Data {
	out := d.Clone()
	out[key] = value
	return out
}
