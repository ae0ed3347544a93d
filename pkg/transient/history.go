package transient

// Record is one accepted transient solution: the Newton iteration count
// that produced it, the solution vector, and the time it lands at.
type Record struct {
	NIters int
	X      []float64
	T      float64
}

// History is the ordered sequence of accepted transient records, used to
// compute the local truncation error via divided differences. Only the
// last four records are ever consulted (PLTE needs a third divided
// difference), but the whole sequence is kept; RunTran reads the newest
// record's iteration count for each result row.
type History struct {
	data []Record
}

func (h *History) Push(r Record) { h.data = append(h.data, r) }
func (h *History) Pop()          { h.data = h.data[:len(h.data)-1] }
func (h *History) Len() int      { return len(h.data) }
func (h *History) At(i int) Record {
	return h.data[i]
}
func (h *History) All() []Record { return h.data }

const c3 = -1.0 / 12.0

// PLTE estimates the local truncation error at the step ending at
// index n+1, using the last four recorded solutions (n-2..n+1). Walked
// iteratively over the classic Newton divided-difference table instead of
// the naive double-recursion, which is exponential in the table depth.
func (h *History) PLTE(n int) []float64 {
	hNext := h.data[n+1].T - h.data[n].T
	alpha := 6 * c3 * hNext * hNext * hNext

	dd3 := dividedDiff3(h.data[n+1], h.data[n], h.data[n-1], h.data[n-2])

	out := make([]float64, len(dd3))
	for i, v := range dd3 {
		out[i] = alpha * v
	}
	return out
}

// dividedDiff3 computes the third-order divided difference of x over four
// (t, x) samples ordered newest-first, component-wise.
func dividedDiff3(r3, r2, r1, r0 Record) []float64 {
	dd1 := func(a, b Record) []float64 {
		alpha := 1.0 / (a.T - b.T)
		out := make([]float64, len(a.X))
		for i := range out {
			out[i] = alpha * (a.X[i] - b.X[i])
		}
		return out
	}
	sub := func(a, b []float64) []float64 {
		out := make([]float64, len(a))
		for i := range out {
			out[i] = a[i] - b[i]
		}
		return out
	}
	scale := func(a []float64, s float64) []float64 {
		out := make([]float64, len(a))
		for i := range out {
			out[i] = a[i] * s
		}
		return out
	}

	d32 := dd1(r3, r2)
	d21 := dd1(r2, r1)
	d10 := dd1(r1, r0)

	d321 := scale(sub(d32, d21), 1.0/(r3.T-r1.T))
	d210 := scale(sub(d21, d10), 1.0/(r2.T-r0.T))

	return scale(sub(d321, d210), 1.0/(r3.T-r0.T))
}
