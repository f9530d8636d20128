package model

// Node is a single point of the sequencing problem. Identifiers are dense
// integers: 0 is the origin depot, the highest id is the destination depot and
// everything in between is an intermediate stop that must be visited exactly
// once. Nodes are created at load time and never mutated afterwards.
type Node struct {
	ID int
	X  float64
	Y  float64
}

// OriginID is the reserved identifier of the origin depot.
const OriginID = 0
