package model

// Field 二维场，行为并行轨道(track)，列为网格节点，行优先存储
type Field struct {
	M    int // 轨道数
	N    int // 节点数
	Data []float64
}

func NewField(m, n int) Field {
	return Field{M: m, N: n, Data: make([]float64, m*n)}
}

// 用同一个值填充整个场
func FilledField(m, n int, v float64) Field {
	f := NewField(m, n)
	for i := range f.Data {
		f.Data[i] = v
	}
	return f
}

func (f Field) At(j, i int) float64 {
	return f.Data[j*f.N+i]
}

func (f Field) Set(j, i int, v float64) {
	f.Data[j*f.N+i] = v
}

func (f Field) Add(j, i int, v float64) {
	f.Data[j*f.N+i] += v
}

// Row 返回第 j 条轨道的切片视图，修改会写回场
func (f Field) Row(j int) []float64 {
	return f.Data[j*f.N : (j+1)*f.N]
}

func (f Field) Clone() Field {
	c := NewField(f.M, f.N)
	copy(c.Data, f.Data)
	return c
}

func (f Field) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

func (f Field) SameShape(o Field) bool {
	return f.M == o.M && f.N == o.N
}
