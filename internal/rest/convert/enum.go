package convert

// enumValue is implemented by the contiguous int enums starting at zero.
type enumValue interface {
	~int
	String() string
	IsValid() bool
}

// parseEnum maps a lowercase enum name to its value. An empty name gives the
// zero value and an unknown name gives -1, which fails validation later.
func parseEnum[T enumValue](name string) T {
	if name == "" {
		return 0
	}
	for v := T(0); v.IsValid(); v++ {
		if v.String() == name {
			return v
		}
	}
	return -1
}
