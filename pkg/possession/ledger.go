package possession

//Ledger records which team had the ball in every processed frame. It is append-only.
type Ledger struct {
	teams []int
}

func (l *Ledger) Append(team int) {
	l.teams = append(l.teams, team)
}

func (l *Ledger) Len() int {
	return len(l.teams)
}

//Last returns the most recent entry, ok is false on an empty ledger
func (l *Ledger) Last() (int, bool) {
	if len(l.teams) == 0 {
		return 0, false
	}
	return l.teams[len(l.teams)-1], true
}

//Teams returns a copy of the whole ledger, indexed by frame
func (l *Ledger) Teams() []int {
	out := make([]int, len(l.teams))
	copy(out, l.teams)
	return out
}

//Share returns the fraction (0..1) of frames 0..upTo (inclusive) where team had the ball
func (l *Ledger) Share(team, upTo int) float64 {
	if upTo >= len(l.teams) {
		upTo = len(l.teams) - 1
	}
	if upTo < 0 {
		return 0
	}

	count := 0
	for _, t := range l.teams[:upTo+1] {
		if t == team {
			count++
		}
	}

	return float64(count) / float64(upTo+1)
}
