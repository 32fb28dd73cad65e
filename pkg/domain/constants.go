package domain

// Kind identifies the simulation a Snapshot belongs to.
type Kind string

const (
	KindConway Kind = "conway" // Sparse N-dimensional automaton
	KindCups   Kind = "cups"   // Cup ring game
)

// MinDimensions and MaxDimensions bound the automaton grids the CLI can build.
const (
	MinDimensions = 2
	MaxDimensions = 4
)
