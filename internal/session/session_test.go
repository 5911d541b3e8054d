package session

import (
	"strings"
	"testing"

	"basejump/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(inputBase int, outputBases ...int) *Session {
	if len(outputBases) == 0 {
		outputBases = []int{2, 10, 16}
	}
	cfg := &config.Config{InputBase: inputBase, OutputBases: outputBases}
	return New(cfg)
}

func feed(s *Session, input string) {
	for i := 0; i < len(input); i++ {
		s.HandleKey(input[i])
	}
}

func TestTypingDigits(t *testing.T) {
	t.Run("valid_digits_accumulate", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "42")
		assert.Equal(t, "42", s.Snapshot().Input)
		assert.Equal(t, PromptView, s.Snapshot().View)
	})

	t.Run("invalid_digit_dropped", func(t *testing.T) {
		s := newTestSession(8)
		feed(s, "79")
		assert.Equal(t, "7", s.Snapshot().Input)
	})

	t.Run("letter_digits_under_hex", func(t *testing.T) {
		s := newTestSession(16)
		feed(s, "fF")
		assert.Equal(t, "fF", s.Snapshot().Input)
	})

	t.Run("buffer_capacity_silent_drop", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, strings.Repeat("9", MaxInputLen+10))
		assert.Len(t, s.Snapshot().Input, MaxInputLen)
	})

	t.Run("live_input_value", func(t *testing.T) {
		s := newTestSession(16)
		feed(s, "ff")
		assert.Equal(t, uint64(255), s.Snapshot().InputValue())
	})
}

func TestOperatorFlush(t *testing.T) {
	t.Run("input_normalized_into_expression", func(t *testing.T) {
		s := newTestSession(16)
		feed(s, "0ff+")
		snap := s.Snapshot()
		assert.Equal(t, "FF+", snap.Expression)
		assert.Empty(t, snap.Input)
	})

	t.Run("empty_input_contributes_placeholder_zero", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "+5")
		assert.Equal(t, "0+", s.Snapshot().Expression)
		assert.Equal(t, "5", s.Snapshot().Input)
	})
}

func TestBackspaceAndEscape(t *testing.T) {
	t.Run("backspace_drops_last_input_char", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "123")
		s.HandleKey(KeyBackspace)
		assert.Equal(t, "12", s.Snapshot().Input)
	})

	t.Run("backspace_on_empty_input", func(t *testing.T) {
		s := newTestSession(10)
		s.HandleKey(KeyBackspace)
		assert.Empty(t, s.Snapshot().Input)
		assert.Equal(t, PromptView, s.Snapshot().View)
	})

	t.Run("escape_clears_both_buffers", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "12+34")
		s.HandleKey(KeyEscape)
		snap := s.Snapshot()
		assert.Empty(t, snap.Input)
		assert.Empty(t, snap.Expression)
	})
}

func TestEnterEvaluation(t *testing.T) {
	t.Run("successful_evaluation", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "2+3*4\n")

		snap := s.Snapshot()
		assert.Equal(t, ResultView, snap.View)
		assert.Equal(t, ResultDisplayed, snap.Mode)
		assert.Equal(t, "2+3*4", snap.LastExpression)
		assert.Equal(t, uint64(14), snap.Result)
		assert.Empty(t, snap.Expression)
		require.Equal(t, 1, s.History().Len())
	})

	t.Run("hex_expression", func(t *testing.T) {
		s := newTestSession(16)
		feed(s, "ff+1\n")

		snap := s.Snapshot()
		assert.Equal(t, ResultView, snap.View)
		assert.Equal(t, "FF+1", snap.LastExpression)
		assert.Equal(t, uint64(256), snap.Result)
	})

	t.Run("empty_enter_defaults_to_zero", func(t *testing.T) {
		s := newTestSession(10)
		s.HandleKey(KeyEnter)

		snap := s.Snapshot()
		assert.Equal(t, ResultView, snap.View)
		assert.Equal(t, "0", snap.LastExpression)
		assert.Equal(t, uint64(0), snap.Result)
		assert.Equal(t, 1, s.History().Len())
	})

	t.Run("failed_evaluation_no_history", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "5/0\n")

		snap := s.Snapshot()
		assert.Equal(t, ErrorView, snap.View)
		assert.Equal(t, `Cannot evaluate the expression "5/0"`, snap.ErrorLine())
		assert.Empty(t, snap.Expression)
		assert.Equal(t, 0, s.History().Len())
	})

	t.Run("negative_result_no_history", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "2-5\n")
		assert.Equal(t, ErrorView, s.Snapshot().View)
		assert.Equal(t, 0, s.History().Len())
	})

	t.Run("trailing_operator_fails", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "5+\n")
		// Enter flushes nothing; "5+" is malformed
		assert.Equal(t, ErrorView, s.Snapshot().View)
	})
}

func TestResultDisplayedFallThrough(t *testing.T) {
	t.Run("digit_starts_new_input", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "1+1\n")
		require.Equal(t, ResultDisplayed, s.Mode())

		s.HandleKey('7')
		snap := s.Snapshot()
		assert.Equal(t, Idle, snap.Mode)
		assert.Equal(t, "7", snap.Input)
		assert.Equal(t, PromptView, snap.View)
	})

	t.Run("operator_falls_through", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "1+1\n")
		s.HandleKey('+')
		snap := s.Snapshot()
		assert.Equal(t, Idle, snap.Mode)
		assert.Equal(t, "0+", snap.Expression)
	})

	t.Run("colon_enters_command_mode", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "1+1\n")
		s.HandleKey(':')
		assert.Equal(t, CommandMode, s.Mode())
	})

	t.Run("invalid_key_dropped", func(t *testing.T) {
		s := newTestSession(8)
		feed(s, "1+1\n")
		s.HandleKey('9') // not a digit under base 8
		snap := s.Snapshot()
		assert.Equal(t, Idle, snap.Mode)
		assert.Empty(t, snap.Input)
		assert.Equal(t, PromptView, snap.View)
	})

	t.Run("enter_falls_through_to_zero", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "1+1\n")
		s.HandleKey(KeyEnter)
		snap := s.Snapshot()
		assert.Equal(t, ResultView, snap.View)
		assert.Equal(t, "0", snap.LastExpression)
	})
}

func TestColonCommands(t *testing.T) {
	t.Run("set_input_base_clears_buffers", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "12+34")
		feed(s, ":i8\n")

		snap := s.Snapshot()
		assert.Equal(t, 8, s.InputBase())
		assert.Empty(t, snap.Input)
		assert.Empty(t, snap.Expression)
		assert.Equal(t, Idle, s.Mode())

		// Subsequent digits interpreted in base 8
		feed(s, "79")
		assert.Equal(t, "7", s.Snapshot().Input)
	})

	t.Run("malformed_input_base_ignored", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "12")
		for _, cmd := range []string{":i40\n", ":i\n", ":iabc\n", ":i 8\n"} {
			feed(s, cmd)
			assert.Equal(t, 10, s.InputBase(), "command %q", cmd)
			assert.Equal(t, "12", s.Snapshot().Input, "command %q", cmd)
		}
	})

	t.Run("set_output_bases", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "5")
		feed(s, ":o8,36\n")

		assert.Equal(t, []int{8, 36}, s.OutputBases())
		assert.Empty(t, s.Snapshot().Input)
	})

	t.Run("malformed_output_bases_ignored", func(t *testing.T) {
		s := newTestSession(10)
		for _, cmd := range []string{":o2,2\n", ":o40\n", ":o2,\n", ":o\n", ":o2,,8\n"} {
			feed(s, cmd)
			assert.Equal(t, []int{2, 10, 16}, s.OutputBases(), "command %q", cmd)
		}
	})

	t.Run("history_command", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "1+1\n")
		feed(s, ":h\n")
		assert.Equal(t, HistoryView, s.Snapshot().View)
		assert.Equal(t, Idle, s.Mode())
	})

	t.Run("history_command_with_suffix_ignored", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "1+1\n2") // leave ResultDisplayed with a fresh digit
		view := s.Snapshot().View
		feed(s, ":hh\n")
		assert.Equal(t, view, s.Snapshot().View)
	})

	t.Run("unknown_command_discarded", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, "12")
		feed(s, ":x123\n")
		assert.Equal(t, "12", s.Snapshot().Input)
		assert.Equal(t, Idle, s.Mode())
	})

	t.Run("empty_command_discarded", func(t *testing.T) {
		s := newTestSession(10)
		feed(s, ":\n")
		assert.Equal(t, Idle, s.Mode())
	})

	t.Run("command_buffer_capacity", func(t *testing.T) {
		s := newTestSession(10)
		s.HandleKey(':')
		feed(s, "i"+strings.Repeat("9", MaxCommandLen+20))
		s.HandleKey(KeyEnter)
		// Oversized value is out of range, so the command is ignored
		assert.Equal(t, 10, s.InputBase())
		assert.Equal(t, Idle, s.Mode())
	})
}

func TestHistoryAcrossBaseChanges(t *testing.T) {
	s := newTestSession(10)
	feed(s, "9+1\n")
	feed(s, ":i16\n")
	feed(s, "f+1\n")
	feed(s, ":i2\n")
	feed(s, "101\n")

	entries := s.History().Entries()
	require.Len(t, entries, 3)

	assert.Equal(t, "9+1", entries[0].Expression)
	assert.Equal(t, 10, entries[0].Base)
	assert.Equal(t, uint64(10), entries[0].Result)

	assert.Equal(t, "F+1", entries[1].Expression)
	assert.Equal(t, 16, entries[1].Base)
	assert.Equal(t, uint64(16), entries[1].Result)

	assert.Equal(t, "101", entries[2].Expression)
	assert.Equal(t, 2, entries[2].Base)
	assert.Equal(t, uint64(5), entries[2].Result)
}
