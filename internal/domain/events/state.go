package events

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// State es el estado de aplicación: exactamente una fase activa.
// Err sólo viene seteado en PhaseFailed.
type State struct {
	Phase Phase
	Err   error
}

func Loading() State { return State{Phase: PhaseLoading} }
func Loaded() State  { return State{Phase: PhaseLoaded} }

func Failed(err error) State {
	return State{Phase: PhaseFailed, Err: err}
}

func (s State) IsLoading() bool { return s.Phase == PhaseLoading }
func (s State) IsFailed() bool  { return s.Phase == PhaseFailed }

func (s State) String() string {
	if s.Phase == PhaseFailed && s.Err != nil {
		return string(s.Phase) + ": " + s.Err.Error()
	}
	return string(s.Phase)
}
