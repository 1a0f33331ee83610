package merge

// Progress receives the current phase of a running operation. Report must
// not block. Clear is called exactly once when the operation returns.
type Progress interface {
	Report(action string)
	Clear()
}

// ProgressFunc adapts a callback to Progress. Clear is delivered as an empty
// action.
type ProgressFunc func(action string)

func (f ProgressFunc) Report(action string) {
	f(action)
}

func (f ProgressFunc) Clear() {
	f("")
}

type noProgress struct{}

func (noProgress) Report(string) {}
func (noProgress) Clear()        {}
