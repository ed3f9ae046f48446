package collection

func Map[T any, V any](sources []T, f func(T) V) []V {
	results := make([]V, len(sources))
	for i, v := range sources {
		results[i] = f(v)
	}
	return results
}
