// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds the small slice generics used across the store.
package slicest

// Contains reports whether s holds v.
func Contains[T comparable, S ~[]T](s S, v T) bool {
	for _, t := range s {
		if t == v {
			return true
		}
	}
	return false
}

// Filter returns the elements of s for which fn returns true, preserving
// order. The result is a fresh slice; s is never mutated.
func Filter[T any, S ~[]T](s S, fn func(T) bool) S {
	var result S
	for _, t := range s {
		if fn(t) {
			result = append(result, t)
		}
	}
	return result
}

// Map converts each element of s with fn.
func Map[T any, R any, S ~[]T](s S, fn func(T) R) []R {
	result := make([]R, 0, len(s))
	for _, t := range s {
		result = append(result, fn(t))
	}
	return result
}
