//go:build cgo

package main

// The cgo sqlite driver backs --sqlite-driver sqlite3.
import _ "github.com/mattn/go-sqlite3"
