// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package mapst holds the small map generics used across the store.
package mapst

// Clone returns a shallow copy of m. A nil map clones to an empty,
// non-nil map so callers can mutate the result unconditionally.
func Clone[K comparable, V any, M ~map[K]V](m M) M {
	result := make(M, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// Map converts each value of m with fn, keeping the keys.
func Map[K comparable, V any, R any, M ~map[K]V](m M, fn func(K, V) R) map[K]R {
	result := make(map[K]R, len(m))
	for k, v := range m {
		result[k] = fn(k, v)
	}
	return result
}

// Keys returns the keys of m in unspecified order.
func Keys[K comparable, V any, M ~map[K]V](m M) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}
