package engine

// Tokens is the gold token counter. It never goes negative.
type Tokens struct {
	count int
}

func (t *Tokens) Count() int { return t.count }

func (t *Tokens) Earn() { t.count++ }

// Take consumes one token; false when none is available.
func (t *Tokens) Take() bool {
	if t.count <= 0 {
		return false
	}
	t.count--
	return true
}

// Refund returns a token taken by a spend that had no effect.
func (t *Tokens) Refund() { t.count++ }
