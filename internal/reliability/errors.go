package reliability

import "fmt"

// NotImplementedError reports a failure model capability that was never
// supplied. It is a configuration defect and is not recovered from.
type NotImplementedError struct {
	Model      string
	Capability string
}

func (e *NotImplementedError) Error() string {
	if e.Model == "" {
		return e.Capability + " not implemented"
	}
	return fmt.Sprintf("%s not implemented for failure model %q", e.Capability, e.Model)
}

// InvalidSelectionError reports an attempt to remove a container that the
// microservice does not own.
type InvalidSelectionError struct {
	Microservice string
	Index        int
	Count        int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("microservice %s: container index %d out of range [0, %d)", e.Microservice, e.Index, e.Count)
}

// UnknownModelError indicates an unsupported failure distribution type
type UnknownModelError struct {
	Type string
}

func (e *UnknownModelError) Error() string {
	return "unknown failure model type: " + e.Type
}
