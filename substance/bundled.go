package substance

// 内置物质，拟合系数均按比焓升幂排列

// 水，1 atm
var water = NewPolynomial(
	Poly{2.73074072e+02, 2.39343432e-04, -1.16571910e-12},
	Poly{9.99916857e+02, 7.09888943e-06, -3.55685672e-10, 2.48881337e-16},
	Poly{4.21790304e+03, -6.75046221e-04, 3.98071678e-09, -9.49490894e-15, 9.12725636e-21},
	Poly{5.57043098e-01, 5.22719636e-07, -5.78946472e-13},
	Poly{1.73113017e-03, -1.08887320e-08, 3.17381373e-14, -3.39233531e-20},
	Poly{1.30070174e+01, -9.03954950e-05, 2.76464299e-10, -3.02544350e-16},
)

// 空气，1 atm
var air = NewPolynomial(
	Poly{-9.47094244e+01, 9.41315014e-04},
	Poly{3.68623992e+00, -9.18059393e-06, 8.99511511e-12, -2.99101902e-18},
	Poly{1.08860162e+03, -4.95535470e-04, 8.48767643e-10, -3.31926950e-16},
	Poly{-6.32545058e-03, 8.53813872e-08, -1.91985865e-14},
	Poly{-2.65149023e-06, 5.64575734e-11, -1.49118910e-17},
	Poly{9.25357206e-01, -1.05637297e-06, 1.70869490e-12, -1.12907428e-18, 2.71884293e-25},
)

// 钠钾合金 NaK 22/78
var nak = NewPolynomial(
	Poly{258.145301176596, 1.13586014618602e-3},
	Poly{868.620522246425, -267.073587305967e-6},
	Poly{980.401559485058, -455.554064632647e-6, 474.869992698948e-12},
	Poly{21.5505803714445, 21.6513924586817e-6, -26.2590503127977e-12},
	Poly{625.420290036714e-6, -2.31891771547815e-9, 4.15934757530690e-15, -2.72327193790784e-21},
	Poly{25.4815572990799e-3, -105.180849961483e-9, 193.669437204884e-15, -125.757554730265e-21},
)

// 磁铁矿，常物性
var magnetite = NewConstant(1130, 5150, 1.9)

// 瑞典辉绿岩，常物性
var swedishDiabase = NewConstant(1272, 3007, 1.75)

// pcm 定比热的相变材料，凝固温度 Ts 到液相温度 Tl 之间线性吸收潜热
type pcm struct {
	Ts, Tl float64 // 凝固温度、液相温度
	Ks, Kl float64 // 固相、液相导热系数
	Hf     float64 // 相变潜热
	Cp     float64
	Rho    float64
}

// 表格上限，超出后按液相外推
const pcmTMax = 600.0

func (m pcm) table() *Table {
	hs := m.Ts * m.Cp
	hl := hs + m.Hf
	t, err := NewTable(
		[]float64{0, hs, hl, hl + m.Cp*(pcmTMax-m.Tl)},
		[]float64{0, m.Ts, m.Tl, pcmTMax},
		[]float64{m.Ks, m.Ks, m.Kl, m.Kl},
		[]float64{m.Rho, m.Rho, m.Rho, m.Rho},
		[]float64{m.Cp, m.Cp, m.Cp, m.Cp},
	)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	ats50 = pcm{Ts: 49 + 273.15, Tl: 50 + 273.15, Ks: 1, Kl: 0.6, Hf: 228000, Cp: 3000, Rho: 1300}
	ats58 = pcm{Ts: 56 + 273.15, Tl: 58 + 273.15, Ks: 1, Kl: 0.6, Hf: 240000, Cp: 3000, Rho: 1280}
)

func init() {
	register(Entry{Name: "water", Kind: Fluid, Range: Range{273.15, 373.15}, Model: water})
	register(Entry{Name: "air", Kind: Fluid, Range: Range{273.15, 1000}, Model: air})
	register(Entry{Name: "nak", Kind: Fluid, Range: Range{473.15, 873.15}, Model: nak})
	register(Entry{Name: "magnetite", Kind: Bed, Range: Range{273.15, 1273.15}, Model: magnetite})
	register(Entry{Name: "swedish_diabase", Kind: Bed, Range: Range{273.15, 1273.15}, Model: swedishDiabase})
	register(Entry{Name: "ats50", Kind: Bed, Range: Range{273.15, pcmTMax}, Model: ats50.table()})
	register(Entry{Name: "ats58", Kind: Bed, Range: Range{273.15, pcmTMax}, Model: ats58.table()})
}
