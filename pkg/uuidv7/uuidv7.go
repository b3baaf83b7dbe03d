// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Games and reference objects are keyed by UUID. Version 7 values sort by
// creation time, which keeps the PostgreSQL primary key index append-only and
// gives a stable "added order" for free.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id
}

