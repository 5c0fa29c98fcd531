package workflow

import (
	"context"
	"errors"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	apperrors "codeberg.org/algopatterns/codeassist/internal/errors"
)

// Service is the remote code service the controller drives
type Service interface {
	Generate(ctx context.Context, req codeassist.GenerateRequest) (*codeassist.GenerateResponse, error)
	Optimize(ctx context.Context, req codeassist.OptimizeRequest) (*codeassist.OptimizeResponse, error)
}

// Phase is the tagged state of a workflow instance
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhaseOptimizing
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGenerating:
		return "generating"
	case PhaseOptimizing:
		return "optimizing"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Operation names one of the two remote operations
type Operation string

const (
	OperationGenerate Operation = "generate"
	OperationOptimize Operation = "optimize"
)

// user-facing messages
const (
	MsgEmptyProblemStatement = "Please enter a problem statement"
	MsgGenerateFirst         = "Generate code first before optimizing"
	FallbackGenerate         = "Generation failed"
	FallbackOptimize         = "Optimization failed"
)

// returned by an operation whose result was discarded because a newer
// operation or a reset started after it
var ErrSuperseded = errors.New("workflow: operation superseded")

// OptimizationResult is the service's verdict on generated code
type OptimizationResult struct {
	Language        codeassist.Language
	OriginalCode    string
	OptimizedCode   string
	Improvements    []string
	PerformanceGain string
}

// reports whether there are improvement notes or a performance gain to show
func (r *OptimizationResult) HasNotes() bool {
	return r != nil && (len(r.Improvements) > 0 || r.PerformanceGain != "")
}

func (r *OptimizationResult) clone() *OptimizationResult {
	if r == nil {
		return nil
	}

	out := *r
	if r.Improvements != nil {
		out.Improvements = make([]string, len(r.Improvements))
		copy(out.Improvements, r.Improvements)
	}

	return &out
}

// State is a snapshot of one workflow instance.
// GeneratedCode == "" means absent, Optimization == nil means absent,
// Failure == nil means no error.
type State struct {
	Language         codeassist.Language
	ProblemStatement string
	GeneratedCode    string
	Optimization     *OptimizationResult
	Phase            Phase
	Failure          error
	FailedOperation  Operation
}

// reports whether an operation is outstanding
func (s State) Busy() bool {
	return s.Phase == PhaseGenerating || s.Phase == PhaseOptimizing
}

func (s State) HasGeneratedCode() bool {
	return s.GeneratedCode != ""
}

// renders the failure for display, "" when there is none
func (s State) ErrorMessage() string {
	if s.Failure == nil {
		return ""
	}

	fallback := FallbackGenerate
	if s.FailedOperation == OperationOptimize {
		fallback = FallbackOptimize
	}

	return apperrors.Message(s.Failure, fallback)
}

// reports whether generate should be offered to the user
func (s State) CanGenerate() bool {
	return !s.Busy() && hasText(s.ProblemStatement)
}

// reports whether optimize should be offered to the user
func (s State) CanOptimize() bool {
	return !s.Busy() && hasText(s.GeneratedCode)
}
