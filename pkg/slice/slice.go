// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic Map and Filter helpers missing from the
// standard [slices] package.
package slice

// Map applies transform to every element. A nil input yields nil.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, 0, len(input))
	for _, item := range input {
		result = append(result, transform(item))
	}
	return result
}

// Filter keeps the elements matching keep, preserving order. It returns nil
// when nothing matches.
func Filter[T any](input []T, keep func(T) bool) []T {
	var result []T
	for _, item := range input {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}
