// Package rotate implements circular 8-bit rotation by a byte-derived count.
package rotate

import "math/bits"

// Left rotates v left by n mod 8 bits.
func Left(v, n byte) byte {
	return bits.RotateLeft8(v, int(n&7))
}

// Right rotates v right by n mod 8 bits.
func Right(v, n byte) byte {
	return bits.RotateLeft8(v, -int(n&7))
}
