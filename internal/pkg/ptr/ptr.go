package ptr

func To[T any](v T) *T {
	return &v
}

// Map applies f to the pointee, keeping nil as nil.
func Map[T, U any](p *T, f func(T) U) *U {
	if p == nil {
		return nil
	}
	return To(f(*p))
}
