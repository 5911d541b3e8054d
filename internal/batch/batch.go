// Package batch evaluates expressions from a line-oriented source: each
// line is one expression in the configured input base, and results are
// reported in the input base and every configured output base. One bad
// line never stops the run.
package batch

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"basejump/internal/config"
	"basejump/internal/eval"
	"basejump/internal/log"
	"basejump/internal/numeral"
)

// maxLineLen bounds one expression line. The default Scanner cap of 64 KiB
// would end the whole run on a single over-long line.
const maxLineLen = 1 << 20

// Processor runs expressions against a fixed configuration, writing
// results to out and diagnostics to errOut.
type Processor struct {
	inputBase   int
	outputBases []int
	out         io.Writer
	errOut      io.Writer
}

// New creates a processor from a validated configuration.
func New(cfg *config.Config, out, errOut io.Writer) *Processor {
	bases := make([]int, len(cfg.OutputBases))
	copy(bases, cfg.OutputBases)
	return &Processor{
		inputBase:   cfg.InputBase,
		outputBases: bases,
		out:         out,
		errOut:      errOut,
	}
}

// Run evaluates every line of r. Trailing line endings are stripped; blank
// lines evaluate (and fail) as empty expressions. A source with no lines
// at all still emits one empty-expression diagnostic.
func (p *Processor) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	hasContent := false
	for scanner.Scan() {
		hasContent = true
		line := strings.TrimRight(scanner.Text(), "\r")
		p.Evaluate(line)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if !hasContent {
		fmt.Fprintf(p.errOut, "Cannot evaluate the expression \"%s\"\n", "")
	}
	return nil
}

// Evaluate transcodes one expression to decimal, evaluates it, and writes
// the report. It returns false when the expression cannot be evaluated.
func (p *Processor) Evaluate(expr string) bool {
	result, err := evaluateIn(expr, p.inputBase)
	if err != nil {
		log.Debugf("cannot evaluate %q in base %d: %v", expr, p.inputBase, err)
		fmt.Fprintf(p.errOut, "Cannot evaluate the expression \"%s\"\n", expr)
		return false
	}

	fmt.Fprintf(p.out, "Expression (base %d): %s\n", p.inputBase, expr)
	fmt.Fprintf(p.out, "Result (base %d): %s\n", p.inputBase, numeral.Encode(result, p.inputBase))
	for _, base := range p.outputBases {
		fmt.Fprintf(p.out, "Base %d: %s\n", base, numeral.Encode(result, base))
	}
	return true
}

func evaluateIn(expr string, base int) (uint64, error) {
	decimal, err := numeral.Transcode(expr, base, 10)
	if err != nil {
		return 0, err
	}
	return eval.Evaluate(decimal)
}
