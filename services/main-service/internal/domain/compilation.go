package domain

type Compilation struct {
	ID     int64
	Title  string
	Pinned bool
	Events []Event
}

type CompilationPatch struct {
	Title    *string
	Pinned   *bool
	EventIDs *[]int64
}
