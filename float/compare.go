package float

// rank orders the categories by magnitude.
func (c Category) rank() int {
	switch c {
	case CategoryZero:
		return 0
	case CategoryNormal:
		return 1
	}
	return 2
}

// cmpAbs compares the magnitudes of two numbers that are not NaN.
func cmpAbs[S Semantics](x, y Float[S]) int {
	if rx, ry := x.category.rank(), y.category.rank(); rx != ry {
		if rx < ry {
			return -1
		}
		return 1
	}
	if x.category != CategoryNormal {
		return 0
	}
	// Numbers are canonical: a larger exponent means a larger magnitude,
	// and subnormals share the minimum exponent with the smallest normals.
	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return 1
	}
	return x.mantissa.Cmp(y.mantissa)
}

// Cmp compares x and y and returns -1, 0 or +1. The second result is false
// when the numbers are unordered, i.e. one of them is a NaN. Zeros compare
// equal regardless of their sign.
func (x Float[S]) Cmp(y Float[S]) (int, bool) {
	if x.IsNaN() || y.IsNaN() {
		return 0, false
	}
	if x.IsZero() && y.IsZero() {
		return 0, true
	}
	if x.sign != y.sign {
		if x.sign {
			return -1, true
		}
		return 1, true
	}
	c := cmpAbs(x, y)
	if x.sign {
		c = -c
	}
	return c, true
}

func (x Float[S]) Equal(y Float[S]) bool {
	c, ok := x.Cmp(y)
	return ok && c == 0
}

func (x Float[S]) Less(y Float[S]) bool {
	c, ok := x.Cmp(y)
	return ok && c < 0
}

func (x Float[S]) LessEq(y Float[S]) bool {
	c, ok := x.Cmp(y)
	return ok && c <= 0
}

func (x Float[S]) Greater(y Float[S]) bool {
	c, ok := x.Cmp(y)
	return ok && c > 0
}

func (x Float[S]) GreaterEq(y Float[S]) bool {
	c, ok := x.Cmp(y)
	return ok && c >= 0
}

// Max returns the greater of x and y. A NaN is ignored when the other
// operand is a number, and +0 is greater than -0.
func (x Float[S]) Max(y Float[S]) Float[S] {
	switch {
	case x.IsNaN():
		return y
	case y.IsNaN():
		return x
	case x.sign != y.sign:
		if x.sign {
			return y
		}
		return x
	}
	if x.Greater(y) {
		return x
	}
	return y
}

// Min returns the smaller of x and y. A NaN is ignored when the other
// operand is a number, and -0 is smaller than +0.
func (x Float[S]) Min(y Float[S]) Float[S] {
	switch {
	case x.IsNaN():
		return y
	case y.IsNaN():
		return x
	case x.sign != y.sign:
		if x.sign {
			return x
		}
		return y
	}
	if x.Greater(y) {
		return y
	}
	return x
}
