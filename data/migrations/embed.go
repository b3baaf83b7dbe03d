// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the catalogue schema migrations into the binary.
package migrations

import "embed"

// FS holds the numbered up and down SQL files.
//
//go:embed *.sql
var FS embed.FS
