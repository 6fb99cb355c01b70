//go:build tools

// Package tools pins code generation tools used by this module.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
