package schedule

// BusinessHours descreve a grade de atendimento de uma unidade.
// Antes era constante no código (9h–18h, passo de 30 min); agora vem da
// configuração e pode variar por unidade.
type BusinessHours struct {
	Open  LocalTime
	Close LocalTime
	Step  int // minutos entre candidatos
}

// Slot é um horário candidato da grade, com a flag de disponibilidade.
// Derivado, nunca persistido.
type Slot struct {
	Time      LocalTime `json:"time"`
	Available bool      `json:"available"`
}

// Slots enumera a grade inteira para um serviço de duração durationMin,
// marcando cada candidato contra os intervalos já ocupados.
//
// Candidatos cujo fim ultrapassa o fechamento são descartados; terminar
// exatamente no fechamento é permitido. A lista retornada contém tanto os
// livres quanto os ocupados, em ordem.
func (bh BusinessHours) Slots(durationMin int, busy []Interval) []Slot {
	slots := []Slot{}

	for start := bh.Open; start < bh.Close; start = start.Add(bh.Step) {
		end := start.Add(durationMin)
		if end > bh.Close {
			continue
		}

		candidate := Interval{Start: start, End: end}

		available := true
		for _, b := range busy {
			if candidate.Overlaps(b) {
				available = false
				break
			}
		}

		slots = append(slots, Slot{Time: start, Available: available})
	}

	return slots
}
