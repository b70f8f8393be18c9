//go:build pathdebug

package pather

const debugChecks = true
