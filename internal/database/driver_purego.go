//go:build !cgo

package database

import _ "modernc.org/sqlite" // pure go sqlite driver

const sqliteDriver = "sqlite"
