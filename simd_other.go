//go:build !amd64 || noasm

package vbyte

// initSIMDSelection keeps the portable kernels at the narrowest batch width.
func initSIMDSelection() {}
