package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codeberg.org/algopatterns/codeassist/internal/codeassist"
	apperrors "codeberg.org/algopatterns/codeassist/internal/errors"
	"codeberg.org/algopatterns/codeassist/internal/logger"
)

// Controller owns the state of one workflow instance and is the only
// thing that mutates it. It is safe for concurrent use.
type Controller struct {
	service Service
	timeout time.Duration
	log     *slog.Logger

	mu     sync.Mutex
	state  State
	token  uint64
	cancel context.CancelFunc
}

type Option func(*Controller)

// sets the initial language
func WithLanguage(lang codeassist.Language) Option {
	return func(c *Controller) {
		if lang.Valid() {
			c.state.Language = lang
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// bounds every operation with a deadline, 0 means none
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		c.timeout = timeout
	}
}

// creates a controller in the initial state
func New(service Service, opts ...Option) *Controller {
	c := &Controller{
		service: service,
		state: State{
			Language: codeassist.DefaultLanguage,
			Phase:    PhaseIdle,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.With("component", "workflow")
	}

	return c
}

// Pending is an operation that has been started
type Pending struct {
	op    Operation
	token uint64
	done  chan struct{}
	err   error
}

// blocks until the operation has completed and its result was applied
// (or discarded, in which case ErrSuperseded is returned)
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

func (p *Pending) Operation() Operation {
	return p.op
}

// starts a generation request and returns without waiting for it.
// validation failures are applied to the state and returned directly.
func (c *Controller) StartGenerate(ctx context.Context, language codeassist.Language, problemStatement string) (*Pending, error) {
	if !hasText(problemStatement) {
		return nil, c.reject(OperationGenerate, apperrors.Validation(MsgEmptyProblemStatement))
	}

	if !language.Valid() {
		return nil, c.reject(OperationGenerate, apperrors.Validation(fmt.Sprintf("unsupported language: %s", language)))
	}

	ctx, cancel, token := c.begin(ctx, OperationGenerate, func(s *State) {
		s.Language = language
		s.ProblemStatement = problemStatement
		s.GeneratedCode = ""
		s.Optimization = nil
	})

	p := &Pending{op: OperationGenerate, token: token, done: make(chan struct{})}

	go func() {
		defer close(p.done)
		defer cancel()

		resp, err := c.service.Generate(ctx, codeassist.GenerateRequest{
			Language:         language,
			ProblemStatement: problemStatement,
		})
		if err == nil && resp == nil {
			err = apperrors.Malformed(fmt.Errorf("empty response"))
		}

		p.err = c.complete(token, OperationGenerate, err, func(s *State) {
			s.GeneratedCode = resp.Code
		})
	}()

	return p, nil
}

// starts an optimization request and returns without waiting for it
func (c *Controller) StartOptimize(ctx context.Context, language codeassist.Language, generatedCode string) (*Pending, error) {
	if !hasText(generatedCode) {
		return nil, c.reject(OperationOptimize, apperrors.Validation(MsgGenerateFirst))
	}

	if !language.Valid() {
		return nil, c.reject(OperationOptimize, apperrors.Validation(fmt.Sprintf("unsupported language: %s", language)))
	}

	ctx, cancel, token := c.begin(ctx, OperationOptimize, func(s *State) {
		s.Language = language
		s.GeneratedCode = generatedCode
		s.Optimization = nil
	})

	p := &Pending{op: OperationOptimize, token: token, done: make(chan struct{})}

	go func() {
		defer close(p.done)
		defer cancel()

		resp, err := c.service.Optimize(ctx, codeassist.OptimizeRequest{
			Language: language,
			Code:     generatedCode,
		})
		if err == nil && resp == nil {
			err = apperrors.Malformed(fmt.Errorf("empty response"))
		}

		p.err = c.complete(token, OperationOptimize, err, func(s *State) {
			s.Optimization = &OptimizationResult{
				Language:        resp.Language,
				OriginalCode:    resp.OriginalCode,
				OptimizedCode:   resp.OptimizedCode,
				Improvements:    resp.Improvements,
				PerformanceGain: resp.PerformanceGain,
			}
		})
	}()

	return p, nil
}

// requests generated code and waits for the result
func (c *Controller) Generate(ctx context.Context, language codeassist.Language, problemStatement string) error {
	p, err := c.StartGenerate(ctx, language, problemStatement)
	if err != nil {
		return err
	}

	return p.Wait()
}

// requests an optimized version of generatedCode and waits for the result
func (c *Controller) Optimize(ctx context.Context, language codeassist.Language, generatedCode string) error {
	p, err := c.StartOptimize(ctx, language, generatedCode)
	if err != nil {
		return err
	}

	return p.Wait()
}

// returns the workflow to its initial state, keeping the language.
// any outstanding operation is superseded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()

	c.state = State{
		Language: c.state.Language,
		Phase:    PhaseIdle,
	}

	c.log.Debug("workflow reset", "token", c.token)
}

// selects the target language without touching any other field
func (c *Controller) SetLanguage(language codeassist.Language) error {
	if !language.Valid() {
		return fmt.Errorf("unsupported language: %s", language)
	}

	c.mu.Lock()
	c.state.Language = language
	c.mu.Unlock()

	return nil
}

// records the user-editable problem statement
func (c *Controller) SetProblemStatement(text string) {
	c.mu.Lock()
	c.state.ProblemStatement = text
	c.mu.Unlock()
}

// returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Optimization = c.state.Optimization.clone()

	return s
}

// applies a local validation failure; nothing is sent
func (c *Controller) reject(op Operation, err *apperrors.Error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Failure = err
	c.state.FailedOperation = op
	if !c.state.Busy() {
		c.state.Phase = PhaseFailed
	}

	c.log.Debug("operation rejected", "operation", op, "reason", err.Message)

	return err
}

// moves the state into a busy phase and hands out a fresh token
func (c *Controller) begin(ctx context.Context, op Operation, mutate func(*State)) (context.Context, context.CancelFunc, uint64) {
	var cancel context.CancelFunc
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()
	c.cancel = cancel

	c.state.Failure = nil
	c.state.FailedOperation = ""
	mutate(&c.state)

	if op == OperationGenerate {
		c.state.Phase = PhaseGenerating
	} else {
		c.state.Phase = PhaseOptimizing
	}

	c.log.Debug("operation started", "operation", op, "token", c.token, "language", c.state.Language)

	return ctx, cancel, c.token
}

// applies the outcome of the operation holding token, unless it was superseded
func (c *Controller) complete(token uint64, op Operation, err error, apply func(*State)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		c.log.Debug("discarding superseded result", "operation", op, "token", token, "current", c.token)
		return ErrSuperseded
	}

	c.cancel = nil

	if err != nil {
		c.state.Failure = err
		c.state.FailedOperation = op
		c.state.Phase = PhaseFailed

		c.log.Info("operation failed",
			"operation", op,
			"token", token,
			"kind", apperrors.KindOf(err),
			"category", apperrors.Category(err),
		)

		return err
	}

	apply(&c.state)
	c.state.Phase = PhaseIdle

	c.log.Info("operation finished", "operation", op, "token", token)

	return nil
}

// advances the token and cancels the operation holding the previous one
func (c *Controller) supersedeLocked() {
	c.token++

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
