package roadmap

// Phase is the orchestrator state. Phases only move forward.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseInitialized
	PhaseTitleSet
	PhaseTimelineSet
	PhaseGroupsFinalized
	PhaseRendered
	PhaseSaved
)

// String returns the phase name used in errors and logs.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseInitialized:
		return "initialized"
	case PhaseTitleSet:
		return "title-set"
	case PhaseTimelineSet:
		return "timeline-set"
	case PhaseGroupsFinalized:
		return "groups-finalized"
	case PhaseRendered:
		return "rendered"
	case PhaseSaved:
		return "saved"
	}
	return "unknown"
}

// ValidationMode selects how degenerate geometry is treated.
type ValidationMode string

const (
	// ValidationPermissive accepts zero-width tasks, milestones outside
	// their task and dates outside the timeline.
	ValidationPermissive ValidationMode = "permissive"
	// ValidationStrict rejects them when they are added.
	ValidationStrict ValidationMode = "strict"
)
