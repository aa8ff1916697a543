package scheduler

// rotation draws band indices without repetition until every index has been used,
// then starts a new cycle on the next draw
type rotation struct {
	used  []bool
	count int
}

func newRotation(size int) *rotation {
	return &rotation{used: make([]bool, size)}
}

// draw returns a uniformly chosen index not yet used in the current cycle
func (r *rotation) draw(rng Rand) int {
	if r.count == len(r.used) {
		for i := range r.used {
			r.used[i] = false
		}
		r.count = 0
	}

	k := rng.Intn(len(r.used) - r.count)
	for i, u := range r.used {
		if u {
			continue
		}
		if k == 0 {
			r.used[i] = true
			r.count++
			return i
		}
		k--
	}
	panic("scheduler: rotation has no unused index")
}
