package levelset

import "math"

// gaussianKernel is a (2g+1)x(2g+1) integer approximation of an isotropic
// Gaussian: each weight is scaled by (2g+1)^2 / sigma^2 and truncated to
// an integer. It is built once at engine construction and never mutated.
type gaussianKernel struct {
	g         int
	size      int
	weights   []int // size*size, row-major by dy then dx
	threshold int
}

// newGaussianKernel builds the kernel for half-width g and standard
// deviation sigma. It returns a ConfigurationError if the scale factor
// (2g+1)^2 would exceed 255 (g > 7).
func newGaussianKernel(g int, sigma float64) (*gaussianKernel, error) {
	size := 2*g + 1
	scale := float64(size * size)
	if scale > 255 {
		return nil, &ConfigurationError{Msg: "gaussian kernel too large: gaussWidth must be <= 7"}
	}

	k := &gaussianKernel{g: g, size: size, weights: make([]int, size*size)}
	sigma2 := sigma * sigma
	sum := 0
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			ddx := float64(dx - g)
			ddy := float64(dy - g)
			w := (1 / sigma2) * math.Exp(-(ddx*ddx+ddy*ddy)/(2*sigma2)) * scale
			iw := int(w)
			k.weights[dy*size+dx] = iw
			sum += iw
		}
	}
	k.threshold = sum / 2
	return k, nil
}

func (k *gaussianKernel) weight(dx, dy int) int {
	return k.weights[(dy+k.g)*k.size+(dx+k.g)]
}

// convolve computes Sum w(dx, dy) * [phi(x+dx, y+dy) < 0] over the window
// clipped to the phi grid, per spec 4.3.2.
func (k *gaussianKernel) convolve(phi *grid, p Point) int {
	g := k.g
	minDx := -g
	if -p.X > minDx {
		minDx = -p.X
	}
	maxDx := g + 1
	if phi.w-p.X < maxDx {
		maxDx = phi.w - p.X
	}
	minDy := -g
	if -p.Y > minDy {
		minDy = -p.Y
	}
	maxDy := g + 1
	if phi.h-p.Y < maxDy {
		maxDy = phi.h - p.Y
	}

	f := 0
	for dy := minDy; dy < maxDy; dy++ {
		for dx := minDx; dx < maxDx; dx++ {
			if phi.get(Point{p.X + dx, p.Y + dy}) < 0 {
				f += k.weight(dx, dy)
			}
		}
	}
	return f
}
