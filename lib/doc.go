// Package lib provide small bit twiddling and arithmetic helpers shared
// by the software and hardware allocators. They are self-contained and
// shall not depend on anything other than the standard library.
package lib
