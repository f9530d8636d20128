package events

// IterationEvent is published after every orchestrator iteration.
type IterationEvent struct {
	Run            string
	Iteration      int
	Operation      string
	CandidateValue float64
	BestValue      float64
	Improved       bool
}

// ImprovementEvent is published when an iteration produced a route that was
// adopted as the new best. Delta is the objective reduction it achieved.
type ImprovementEvent struct {
	Run       string
	Iteration int
	Operation string
	Route     string
	Value     float64
	Delta     float64
}

// ResultEvent is published once per search run with the final outcome.
type ResultEvent struct {
	Run        string
	Route      string
	Value      float64
	Iterations int
}
