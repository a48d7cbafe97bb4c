package utils

// FindIndex returns the position of item in slice, or -1.
func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) >= 0
}

// Without returns a copy of slice with the first occurrence of item removed.
func Without[T comparable](slice []T, item T) []T {
	out := make([]T, 0, len(slice))
	removed := false
	for _, v := range slice {
		if !removed && v == item {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}

// Intersect keeps the elements of slice that also appear in keep, in slice order.
func Intersect[T comparable](slice, keep []T) []T {
	out := make([]T, 0, len(slice))
	for _, v := range slice {
		if Contains(keep, v) {
			out = append(out, v)
		}
	}
	return out
}
