package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/knots/internal/grid"
	"github.com/roach88/knots/internal/ir"
	"github.com/roach88/knots/internal/move"
)

// DefaultMaxSteps is the default limit on move attempts per session.
const DefaultMaxSteps = 10000

// Recorder persists sessions and their steps.
// Implemented by *store.Store.
type Recorder interface {
	RecordSession(ctx context.Context, s ir.Session, initial ir.Diagram) error
	RecordStep(ctx context.Context, st ir.Step, after ir.Diagram) error
}

// Session is one editing session over a diagram.
//
// Thread-safety: a Session must be used from a single goroutine.
type Session struct {
	token    string
	diagram  *grid.Diagram
	initial  ir.Diagram
	clock    SeqSource
	recorder Recorder
	quota    *QuotaEnforcer
	revisits *RevisitTracker
	maxSize  int
	steps    []ir.Step

	tokenGen TokenGenerator
	maxSteps int
}

// Option configures a Session.
type Option func(*Session)

// WithTokenGenerator sets the session token source (default UUIDv7).
func WithTokenGenerator(g TokenGenerator) Option {
	return func(s *Session) { s.tokenGen = g }
}

// WithClock sets the sequence source (default a fresh Clock).
func WithClock(c SeqSource) Option {
	return func(s *Session) { s.clock = c }
}

// WithRecorder forwards the session header and every step to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithMaxSteps limits the number of move attempts. 0 means unlimited.
func WithMaxSteps(n int) Option {
	return func(s *Session) { s.maxSteps = n }
}

// WithMaxSize refuses stabilizations that would grow the grid beyond n.
// 0 means unlimited.
func WithMaxSize(n int) Option {
	return func(s *Session) { s.maxSize = n }
}

// NewSession starts a session on a copy of d. The caller's diagram is
// never modified. With a Recorder configured, the session header and the
// initial diagram are recorded before NewSession returns.
func NewSession(ctx context.Context, d *grid.Diagram, opts ...Option) (*Session, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		diagram:  d.Clone(),
		tokenGen: UUIDv7Generator{},
		maxSteps: DefaultMaxSteps,
		revisits: NewRevisitTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewClock()
	}
	s.token = s.tokenGen.Generate()
	s.quota = NewQuotaEnforcer(s.maxSteps)

	initial, err := Snapshot(s.diagram)
	if err != nil {
		return nil, err
	}
	s.initial = initial
	s.revisits.Observe(initial.ID, s.clock.Current())

	slog.Info("session started",
		"session", s.token,
		"size", initial.Size,
		"diagram_id", initial.ID,
	)

	if s.recorder != nil {
		hdr := ir.Session{Token: s.token, InitialID: initial.ID, EngineVersion: ir.EngineVersion}
		if err := s.recorder.RecordSession(ctx, hdr, initial); err != nil {
			slog.Error("session record failed", "session", s.token, "error", err)
			return nil, &SessionError{Code: ErrCodeRecordFailed, Token: s.token, Message: "record session", Err: err}
		}
	}
	return s, nil
}

// Apply attempts m on the session diagram.
//
// The returned step is always filled in for an attempt that reached the
// diagram, including rejected ones; the error is then the *move.Error. A
// *SessionError means the attempt was refused before it reached the
// diagram (quota, size limit) or could not be recorded; in the latter case
// the diagram change has already been committed and the step is kept in
// the in-memory log.
func (s *Session) Apply(ctx context.Context, m move.Move) (ir.Step, error) {
	if err := ctx.Err(); err != nil {
		return ir.Step{}, err
	}
	if err := s.quota.Check(s.token); err != nil {
		slog.Error("max steps quota exceeded",
			"session", s.token,
			"steps", s.quota.Current(),
			"limit", s.quota.MaxSteps(),
		)
		return ir.Step{}, err
	}
	if s.maxSize > 0 && m != nil && m.Kind() == move.KindStabilization && s.diagram.Size()+1 > s.maxSize {
		return ir.Step{}, &SessionError{
			Code:    ErrCodeSizeLimit,
			Token:   s.token,
			Message: fmt.Sprintf("stabilization would grow grid to %d > %d", s.diagram.Size()+1, s.maxSize),
		}
	}

	moveErr := move.Apply(m, s.diagram)

	after, err := Snapshot(s.diagram)
	if err != nil {
		return ir.Step{}, err
	}
	st := ir.Step{
		SessionToken: s.token,
		Seq:          s.clock.Next(),
		Move:         notation(m),
		Outcome:      ir.OutcomeOK,
		DiagramID:    after.ID,
		Size:         after.Size,
	}
	if moveErr != nil {
		st.Outcome = ir.OutcomeRejected
		st.Code = string(move.CodeOf(moveErr))
		slog.Info("move rejected",
			"session", s.token,
			"seq", st.Seq,
			"move", st.Move,
			"code", st.Code,
		)
	} else {
		slog.Debug("move applied",
			"session", s.token,
			"seq", st.Seq,
			"move", st.Move,
			"size", st.Size,
			"diagram_id", st.DiagramID,
		)
		if first, seen := s.revisits.Observe(st.DiagramID, st.Seq); seen {
			slog.Debug("layout revisited",
				"session", s.token,
				"seq", st.Seq,
				"first_seq", first,
			)
		}
	}
	s.steps = append(s.steps, st)

	if s.recorder != nil {
		if err := s.recorder.RecordStep(ctx, st, after); err != nil {
			slog.Error("step record failed",
				"session", s.token,
				"seq", st.Seq,
				"error", err,
			)
			return st, &SessionError{Code: ErrCodeRecordFailed, Token: s.token, Message: fmt.Sprintf("record step %d", st.Seq), Err: err}
		}
	}
	return st, moveErr
}

// Run applies moves in order and returns the steps it produced.
//
// A rejected move stops the run only when stopOnError is set; its error
// is then returned. Session errors and context cancellation always stop
// the run.
func (s *Session) Run(ctx context.Context, moves []move.Move, stopOnError bool) ([]ir.Step, error) {
	var out []ir.Step
	for _, m := range moves {
		st, err := s.Apply(ctx, m)
		// Zero step: refused before reaching the diagram.
		if st.Seq != 0 {
			out = append(out, st)
		}
		if err == nil {
			continue
		}
		var me *move.Error
		if errors.As(err, &me) && !stopOnError {
			continue
		}
		return out, err
	}
	return out, nil
}

// Token returns the session token.
func (s *Session) Token() string { return s.token }

// Diagram returns a copy of the current diagram.
func (s *Session) Diagram() *grid.Diagram { return s.diagram.Clone() }

// Initial returns the record of the diagram the session started from.
func (s *Session) Initial() ir.Diagram { return s.initial }

// Steps returns a copy of the in-memory step log.
func (s *Session) Steps() []ir.Step {
	return append([]ir.Step(nil), s.steps...)
}

// Distinct returns the number of distinct layouts the session has reached,
// including the initial one.
func (s *Session) Distinct() int { return s.revisits.Distinct() }

// Snapshot returns the ir record of d, ID included.
func Snapshot(d *grid.Diagram) (ir.Diagram, error) {
	rec, err := ir.NewDiagram(d.Size(), d.Rows())
	if err != nil {
		return ir.Diagram{}, fmt.Errorf("snapshot diagram: %w", err)
	}
	return rec, nil
}

func notation(m move.Move) string {
	if m == nil {
		return ""
	}
	return m.String()
}
