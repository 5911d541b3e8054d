// Package history keeps the append-only record of successful evaluations
// for one interactive session.
package history

// Entry records one successful evaluation: the expression text as typed,
// the input base it was typed in, and the result. Entries are immutable
// once added.
type Entry struct {
	Expression string
	Base       int
	Result     uint64
}

// Log is an ordered, append-only collection of entries. The zero value is
// ready to use; entries live until the session ends.
type Log struct {
	entries []Entry
}

// New returns an empty log.
func New() *Log {
	return &Log{}
}

// Add appends an entry. Insertion order is preserved for the lifetime of
// the log.
func (l *Log) Add(expression string, base int, result uint64) {
	l.entries = append(l.entries, Entry{
		Expression: expression,
		Base:       base,
		Result:     result,
	})
}

// Entries returns the recorded entries in insertion order. The returned
// slice is a copy; callers cannot mutate the log through it.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}
