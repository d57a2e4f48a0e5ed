package features

// Vector is a feature vector aligned with the canonical feature order.
type Vector struct {
	names  []string
	index  map[string]int
	values []float64
}

func (v Vector) Len() int {
	return len(v.values)
}

// Values returns a copy of the numeric entries in canonical order.
func (v Vector) Values() []float64 {
	return append([]float64(nil), v.values...)
}

func (v Vector) Names() []string {
	return append([]string(nil), v.names...)
}

func (v Vector) Value(name string) (float64, bool) {
	i, ok := v.index[name]
	if !ok {
		return 0, false
	}
	return v.values[i], true
}

// Row returns the vector as a single-row matrix, the shape scalers and models take.
func (v Vector) Row() [][]float64 {
	return [][]float64{v.Values()}
}
