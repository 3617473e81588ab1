package shamir

import (
	"fmt"
	"sync"
)

// gf256.go implements the Galois Field (2^8) arithmetic for the sharing
// scheme, using the Rijndael field: GF(2^8) with the irreducible polynomial
// x^8 + x^4 + x^3 + x + 1.

const (
	// primitivePolynomial is 0x11b (283 decimal), the AES field polynomial.
	// Any irreducible polynomial would do; 0x11b is the one every other
	// GF(256) sharing implementation settled on.
	primitivePolynomial = 0x11b

	// fieldSize is the number of elements in the field (2^8).
	fieldSize = 256
)

var (
	// expTable stores the exponentiation table (3^i).
	//nolint:gochecknoglobals // precomputed table
	expTable [fieldSize]byte

	// logTable stores the logarithm table (log_3(x)); logTable[0] is unused.
	//nolint:gochecknoglobals // precomputed table
	logTable [fieldSize]byte

	// tablesInit ensures tables are computed only once.
	//nolint:gochecknoglobals // sync.Once is inherently global state management here
	tablesInit sync.Once
)

// initTables computes the exponentiation and logarithm tables with the
// generator g=3. Multiplication and division then reduce to table lookups.
func initTables() {
	tablesInit.Do(func() {
		var x uint16 = 1
		for i := 0; i < fieldSize-1; i++ {
			expTable[i] = byte(x)
			logTable[x] = byte(i)

			// Multiply by 3: x * (x + 1) = (x << 1) ^ x, reduced by the
			// field polynomial on overflow.
			x = (x << 1) ^ x
			if x >= fieldSize {
				x ^= primitivePolynomial
			}
		}

		// The multiplicative group is cyclic with order 255.
		expTable[fieldSize-1] = expTable[0]
	})
}

// gfAdd adds two elements in GF(2^8). Addition is XOR.
func gfAdd(a, b byte) byte {
	return a ^ b
}

// gfSub subtracts two elements in GF(2^8). Identical to addition.
func gfSub(a, b byte) byte {
	return a ^ b
}

// gfMul multiplies two elements in GF(2^8) via the log/exp tables:
// a * b = g^(log(a) + log(b)).
func gfMul(a, b byte) byte {
	initTables()
	if a == 0 || b == 0 {
		return 0
	}
	logA := int(logTable[a])
	logB := int(logTable[b])
	return expTable[(logA+logB)%(fieldSize-1)]
}

// gfDiv divides two elements in GF(2^8): a / b = g^(log(a) - log(b)).
// Go's % truncates toward zero, so the log difference is normalized to
// non-negative before indexing.
func gfDiv(a, b byte) (byte, error) {
	initTables()
	if b == 0 {
		return 0, ErrDivByZero
	}
	if a == 0 {
		return 0, nil
	}
	logA := int(logTable[a])
	logB := int(logTable[b])
	diff := (logA - logB) % (fieldSize - 1)
	if diff < 0 {
		diff += fieldSize - 1
	}
	return expTable[diff], nil
}

// polyEval evaluates a polynomial at x using Horner's method, highest
// coefficient first. coeffs is ordered lowest first: coeffs[0] is the
// constant term.
func polyEval(coeffs []byte, x byte) byte {
	var result byte
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = gfMul(result, x) ^ coeffs[i]
	}
	return result
}

// lagrangeWeightsAtZero computes the Lagrange basis values L_i(0) for the
// given x-coordinates. At x=0 the numerator factor (0 ^ x_j) is just x_j, so
// L_i(0) = prod_{j != i} x_j / (x_i ^ x_j). The x-coordinates must be
// distinct.
func lagrangeWeightsAtZero(xs []byte) ([]byte, error) {
	if len(xs) == 0 {
		return nil, ErrNoPoints
	}

	for i := 1; i < len(xs); i++ {
		for j := 0; j < i; j++ {
			if xs[i] == xs[j] {
				return nil, fmt.Errorf("%w: x=%d", ErrDuplicateShareID, xs[i])
			}
		}
	}

	weights := make([]byte, len(xs))
	for i := range xs {
		weight := byte(1)
		for j := range xs {
			if i == j {
				continue
			}
			factor, err := gfDiv(xs[j], gfSub(xs[i], xs[j]))
			if err != nil {
				return nil, err
			}
			weight = gfMul(weight, factor)
		}
		weights[i] = weight
	}
	return weights, nil
}

// lagrangeAtZero interpolates the polynomial through the points (xs[i],
// ys[i]) and returns its value at x=0.
func lagrangeAtZero(xs, ys []byte) (byte, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("%w: %d x-coordinates, %d y-coordinates", ErrNoPoints, len(xs), len(ys))
	}

	weights, err := lagrangeWeightsAtZero(xs)
	if err != nil {
		return 0, err
	}

	var result byte
	for i := range ys {
		result = gfAdd(result, gfMul(ys[i], weights[i]))
	}
	return result, nil
}
