package policy

// UnknownOrchestratorError indicates an unsupported orchestrator type
type UnknownOrchestratorError struct {
	Type string
}

func (e *UnknownOrchestratorError) Error() string {
	return "unknown orchestrator type: " + e.Type
}
