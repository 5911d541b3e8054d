// Package session implements the interactive calculator state machine. A
// Session consumes one input unit at a time, maintains the input,
// expression, and command buffers, dispatches to the numeral converter and
// evaluator, and records successful evaluations in the history log. It is
// renderer-free: callers read a Snapshot after each input unit and draw it
// however they like.
package session

import (
	"fmt"

	"basejump/internal/config"
	"basejump/internal/eval"
	"basejump/internal/history"
	"basejump/internal/log"
	"basejump/internal/numeral"
)

// Buffer capacities, carried over from the original fixed-size buffers as
// explicit invariants. Input past these limits is silently dropped.
const (
	MaxInputLen   = 64
	MaxCommandLen = 127
)

// Special input units. The session consumes plain bytes; the surrounding
// terminal layer maps its key events onto these.
const (
	KeyEnter     byte = '\n'
	KeyEscape    byte = 0x1b
	KeyBackspace byte = 0x7f
)

// Mode is the session state.
type Mode int

const (
	// Idle accepts digits, operators, and special keys.
	Idle Mode = iota
	// CommandMode accumulates a colon command until newline.
	CommandMode
	// ResultDisplayed follows an Enter; most keys fall through to Idle.
	ResultDisplayed
)

// ViewKind tells the renderer which screen the last input unit produced.
type ViewKind int

const (
	// PromptView shows the expression and input buffers plus the live
	// conversion of the pending input into every output base.
	PromptView ViewKind = iota
	// ResultView shows the evaluated expression and its result in the
	// input base and every output base.
	ResultView
	// HistoryView shows the full history log.
	HistoryView
	// ErrorView shows the single evaluation diagnostic line.
	ErrorView
)

// Session owns all mutable state for one interactive run. It is created
// once per run and must not be shared between goroutines.
type Session struct {
	mode        Mode
	inputBase   int
	outputBases []int

	input   []byte // raw digits being typed, in the input base
	expr    []byte // accumulated expression, in the input base
	command []byte // pending colon-command text

	history *history.Log

	view       ViewKind
	lastExpr   string
	lastResult uint64
}

// New creates a session from a validated configuration.
func New(cfg *config.Config) *Session {
	bases := make([]int, len(cfg.OutputBases))
	copy(bases, cfg.OutputBases)
	return &Session{
		mode:        Idle,
		inputBase:   cfg.InputBase,
		outputBases: bases,
		history:     history.New(),
	}
}

// HandleKey processes one input unit and updates the session state. The
// caller re-renders from Snapshot afterwards.
func (s *Session) HandleKey(ch byte) {
	if s.mode == ResultDisplayed && !s.leaveResultDisplayed(ch) {
		return
	}
	if s.mode == CommandMode {
		s.handleCommandMode(ch)
		return
	}

	switch {
	case ch == ':':
		s.command = s.command[:0]
		s.mode = CommandMode
	case ch == KeyEscape:
		s.input = s.input[:0]
		s.expr = s.expr[:0]
		s.view = PromptView
	case ch == KeyBackspace:
		if len(s.input) > 0 {
			s.input = s.input[:len(s.input)-1]
		}
		s.view = PromptView
	case ch == KeyEnter:
		s.handleEnter()
	case ch == '+' || ch == '-' || ch == '*' || ch == '/':
		s.handleOperator(ch)
	default:
		s.handleCharacter(ch)
	}
}

// leaveResultDisplayed decides what happens to the first key after a
// result. Action keys and digits valid under the current base fall through
// to normal Idle processing; anything else just clears back to the prompt
// and the key is dropped.
func (s *Session) leaveResultDisplayed(ch byte) bool {
	s.mode = Idle
	switch ch {
	case ':', KeyEscape, KeyBackspace, KeyEnter, '+', '-', '*', '/':
		return true
	}
	if numeral.IsDigitForBase(ch, s.inputBase) {
		return true
	}
	s.view = PromptView
	return false
}

func (s *Session) handleCharacter(ch byte) {
	if numeral.IsDigitForBase(ch, s.inputBase) && len(s.input) < MaxInputLen {
		s.input = append(s.input, ch)
	}
	// Re-render even when the character was invalid or dropped
	s.view = PromptView
}

func (s *Session) handleOperator(ch byte) {
	s.flushInput()
	s.expr = append(s.expr, ch)
	s.view = PromptView
}

// flushInput normalizes the pending input buffer through a decode/encode
// round trip (collapsing leading zeros and lowercase letter-digits) and
// appends it to the expression buffer. An empty input buffer contributes
// the placeholder digit "0".
func (s *Session) flushInput() {
	if len(s.input) == 0 {
		s.expr = append(s.expr, '0')
		return
	}
	s.expr = append(s.expr, s.normalizedInput()...)
	s.input = s.input[:0]
}

func (s *Session) normalizedInput() string {
	value, err := numeral.Decode(string(s.input), s.inputBase)
	if err != nil {
		// Only base-valid digits ever enter the buffer
		return string(s.input)
	}
	return numeral.Encode(value, s.inputBase)
}

func (s *Session) handleEnter() {
	if len(s.input) > 0 {
		s.expr = append(s.expr, s.normalizedInput()...)
		s.input = s.input[:0]
	}
	if len(s.expr) == 0 {
		s.expr = append(s.expr, '0')
	}
	s.input = s.input[:0]
	s.mode = ResultDisplayed

	exprText := string(s.expr)
	s.expr = s.expr[:0]
	s.lastExpr = exprText

	result, err := evaluateIn(exprText, s.inputBase)
	if err != nil {
		log.Debugf("evaluation failed for %q: %v", exprText, err)
		s.view = ErrorView
		return
	}
	s.history.Add(exprText, s.inputBase, result)
	s.lastResult = result
	s.view = ResultView
}

// evaluateIn transcodes an expression from the given base to decimal and
// evaluates it.
func evaluateIn(expr string, base int) (uint64, error) {
	decimal, err := numeral.Transcode(expr, base, 10)
	if err != nil {
		return 0, err
	}
	return eval.Evaluate(decimal)
}

func (s *Session) handleCommandMode(ch byte) {
	if ch != KeyEnter {
		if len(s.command) < MaxCommandLen {
			s.command = append(s.command, ch)
		}
		return
	}

	command := string(s.command)
	s.command = s.command[:0]
	s.mode = Idle
	if command == "" {
		return
	}

	switch command[0] {
	case 'i':
		s.setInputBase(command[1:])
		s.view = PromptView
	case 'o':
		s.setOutputBases(command[1:])
		s.view = PromptView
	case 'h':
		if command == "h" {
			s.view = HistoryView
		}
	}
	// Any other command is discarded with no feedback
}

// setInputBase handles the :i command. A malformed value is silently
// ignored and the buffers stay untouched; a valid one replaces the input
// base and clears both the input and expression buffers.
func (s *Session) setInputBase(arg string) {
	base, err := config.ParseBase(arg)
	if err != nil {
		log.Debugf("ignoring :i command %q: %v", arg, err)
		return
	}
	s.inputBase = base
	s.input = s.input[:0]
	s.expr = s.expr[:0]
	log.Info("input base set to %d", base)
}

// setOutputBases handles the :o command with the same batch validator used
// for the --obases flag. The whole command is ignored on any violation.
func (s *Session) setOutputBases(arg string) {
	bases, err := config.ParseOutputBases(arg)
	if err != nil {
		log.Debugf("ignoring :o command %q: %v", arg, err)
		return
	}
	s.outputBases = bases
	s.input = s.input[:0]
	s.expr = s.expr[:0]
	log.Info("output bases set to %v", bases)
}

// Mode returns the current session mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// View returns the screen the last input unit produced.
func (s *Session) View() ViewKind {
	return s.view
}

// InputBase returns the current input base.
func (s *Session) InputBase() int {
	return s.inputBase
}

// OutputBases returns the configured output bases in display order.
func (s *Session) OutputBases() []int {
	out := make([]int, len(s.outputBases))
	copy(out, s.outputBases)
	return out
}

// History returns the session's history log.
func (s *Session) History() *history.Log {
	return s.history
}

// Snapshot is the deterministic rendering input produced after each input
// unit.
type Snapshot struct {
	View        ViewKind
	Mode        Mode
	InputBase   int
	OutputBases []int
	Expression  string
	Input       string
	Command     string
	// LastExpression and Result back the ResultView and ErrorView.
	LastExpression string
	Result         uint64
	History        []history.Entry
}

// Snapshot captures the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		View:           s.view,
		Mode:           s.mode,
		InputBase:      s.inputBase,
		OutputBases:    s.OutputBases(),
		Expression:     string(s.expr),
		Input:          string(s.input),
		Command:        string(s.command),
		LastExpression: s.lastExpr,
		Result:         s.lastResult,
		History:        s.history.Entries(),
	}
}

// ErrorLine is the stable diagnostic for a failed evaluation.
func (s Snapshot) ErrorLine() string {
	return fmt.Sprintf("Cannot evaluate the expression \"%s\"", s.LastExpression)
}

// InputValue live-decodes the pending input buffer; an empty or
// undecodable buffer reads as zero. The prompt view shows this value in
// every output base while the user types.
func (s Snapshot) InputValue() uint64 {
	if s.Input == "" {
		return 0
	}
	value, err := numeral.Decode(s.Input, s.InputBase)
	if err != nil {
		return 0
	}
	return value
}
