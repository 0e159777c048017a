//go:build sqlite_vec && cgo

package store

import (
	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
)

func init() {
	// Registers the sqlite-vec extension as auto-loadable for every
	// mattn/go-sqlite3 connection this process opens.
	vec.Auto()
}
