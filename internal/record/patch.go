package record

// Optional marks a value as present (apply it) or absent (keep the prior value).
// The zero Optional is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether the value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Patch is a partial update. Every present field overwrites the record's
// field, absent fields are kept. A present empty string or zero age is applied
// as-is; there are no sentinel values.
type Patch struct {
	Name   Optional[string]
	Age    Optional[int]
	Email  Optional[string]
	Course Optional[string]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return !p.Name.IsSet() && !p.Age.IsSet() && !p.Email.IsSet() && !p.Course.IsSet()
}

// Apply returns r with the present fields of p applied. The ID is untouched.
func (p Patch) Apply(r Record) Record {
	if v, ok := p.Name.Get(); ok {
		r.Name = v
	}
	if v, ok := p.Age.Get(); ok {
		r.Age = v
	}
	if v, ok := p.Email.Get(); ok {
		r.Email = v
	}
	if v, ok := p.Course.Get(); ok {
		r.Course = v
	}
	return r
}
