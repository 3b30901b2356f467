//go:build !blake3

package mrkle

// registerBlake3 is a no-op in the default build; HasherByName("blake3")
// returns HashError{Kind: "unknown_algorithm"} unless this binary was
// built with -tags blake3.
func registerBlake3(reg map[string]Descriptor) {}
