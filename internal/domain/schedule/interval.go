package schedule

// Interval é um intervalo meio-aberto [Start, End) dentro de um mesmo dia.
type Interval struct {
	Start LocalTime
	End   LocalTime
}

// Overlaps aplica a regra canônica de sobreposição para intervalos
// meio-abertos: [s1,e1) e [s2,e2) se sobrepõem sse s1 < e2 e s2 < e1.
// Intervalos que apenas se tocam na borda não conflitam.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}
