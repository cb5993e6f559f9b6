package domain

// DefaultPar is used when no hole layout is known for a course.
const DefaultPar = 4

// standardLayout is the par sequence shared by the club's home courses.
var standardLayout = [18]int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 4, 3, 5, 4, 4, 3, 4, 5}

// courseLayouts maps course names to their per-hole par layouts.
var courseLayouts = map[string][18]int{
	"Karibana Golf Club":       standardLayout,
	"Club Campestre Cartagena": standardLayout,
}

// ParForHole returns the par for the given hole (1-18) on the named
// course, falling back to DefaultPar when the course or hole is unknown.
func ParForHole(course string, hole int) int {
	if hole < 1 || hole > 18 {
		return DefaultPar
	}
	layout, ok := courseLayouts[course]
	if !ok {
		return DefaultPar
	}
	return layout[hole-1]
}

// TotalScore sums all hole scores in the mapping.
func TotalScore(scores map[int]int) int {
	total := 0
	for _, s := range scores {
		total += s
	}
	return total
}

// ToPar returns the over/under-par delta for the scored holes.
func ToPar(course string, scores map[int]int) int {
	delta := 0
	for hole, s := range scores {
		delta += s - ParForHole(course, hole)
	}
	return delta
}
