package mandelview

const (
	// MaxIterations bounds the escape-time iteration.
	MaxIterations = 256

	// EscapeRadiusSq is the squared escape radius; |z| >= 2 means diverged.
	EscapeRadiusSq = 4.0
)

// Escape returns the number of iterations remaining when z = z*z + c,
// started at zero, first reaches |z| >= 2, or 0 if it never does within
// MaxIterations. Points inside the set are therefore dark and points that
// diverge immediately are bright: Escape(0) == 0 and Escape(3) == 255.
//
// Escape has no side effects and is safe for concurrent use.
func Escape(c complex128) uint8 {
	cr, ci := real(c), imag(c)
	var zr, zi float64
	count := MaxIterations
	for count > 0 && zr*zr+zi*zi < EscapeRadiusSq {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		count--
	}
	return uint8(count)
}
