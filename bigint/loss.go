package bigint

// LossFraction classifies the bits discarded by a right shift relative to
// half of the unit in the last retained place.
type LossFraction int

const (
	ExactlyZero  LossFraction = iota // 000000
	LessThanHalf                     // 0xxxxx
	ExactlyHalf                      // 100000
	MoreThanHalf                     // 1xxxxx
)

func (l LossFraction) String() string {
	switch l {
	case ExactlyZero:
		return "ExactlyZero"
	case LessThanHalf:
		return "LessThanHalf"
	case ExactlyHalf:
		return "ExactlyHalf"
	case MoreThanHalf:
		return "MoreThanHalf"
	}
	return "LossFraction(?)"
}

func (l LossFraction) IsExactlyZero() bool  { return l == ExactlyZero }
func (l LossFraction) IsLTHalf() bool       { return l == LessThanHalf }
func (l LossFraction) IsExactlyHalf() bool  { return l == ExactlyHalf }
func (l LossFraction) IsMTHalf() bool       { return l == MoreThanHalf }
func (l LossFraction) IsLTHalfOrZero() bool { return l == ExactlyZero || l == LessThanHalf }

// LossOf classifies the lowest k bits of x, the bits a right shift by k
// would discard. The most significant discarded bit decides which side of
// one half we are on, and the rest decide whether we are exactly there.
func LossOf(x Int, k uint) LossFraction {
	if k == 0 {
		return ExactlyZero
	}
	half := k <= uint(x.Width()) && x.Bit(int(k-1)) == 1
	rest := x.anyBelow(k - 1)
	switch {
	case half && rest:
		return MoreThanHalf
	case half:
		return ExactlyHalf
	case rest:
		return LessThanHalf
	}
	return ExactlyZero
}

// Combine merges l, the loss of the bits just shifted out, with lower, the
// loss recorded for bits discarded earlier and sitting below them.
func (l LossFraction) Combine(lower LossFraction) LossFraction {
	if lower == ExactlyZero {
		return l
	}
	switch l {
	case ExactlyZero:
		return LessThanHalf
	case ExactlyHalf:
		return MoreThanHalf
	}
	return l
}
