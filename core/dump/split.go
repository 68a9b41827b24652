package dump

import (
	"strings"

	"github.com/huangsam/confcast/schema"
	"go.uber.org/zap"
)

// Default number of SQL preamble and footer lines around the split dump.
const (
	DefaultSkipHead = 2
	DefaultSkipTail = 5
)

// splitFields cuts a block into tokens. A separator is one of:
//   - a comma preceded by a digit and followed by two or more spaces
//   - a space and a comma not followed by a space
//   - a comma preceded by a non-digit, a dash and two digits
//   - a newline
//
// Lookbehind checks always read the original block.
func splitFields(block string) []string {
	var tokens []string
	start := 0
	for i := 0; i < len(block); {
		n := separatorAt(block, i)
		if n == 0 {
			i++
			continue
		}
		tokens = append(tokens, block[start:i])
		i += n
		start = i
	}
	return append(tokens, block[start:])
}

// separatorAt returns the length of the separator starting at i, or 0.
func separatorAt(s string, i int) int {
	switch s[i] {
	case '\n':
		return 1
	case ' ':
		if i+1 < len(s) && s[i+1] == ',' && (i+2 >= len(s) || s[i+2] != ' ') {
			return 2
		}
	case ',':
		if i > 0 && isDigit(s[i-1]) && i+2 < len(s) && s[i+1] == ' ' && s[i+2] == ' ' {
			n := 3
			for i+n < len(s) && s[i+n] == ' ' {
				n++
			}
			return n
		}
		if i >= 4 && !isDigit(s[i-4]) && s[i-3] == '-' && isDigit(s[i-2]) && isDigit(s[i-1]) {
			return 1
		}
	}
	return 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// splitBlocks drops the SQL preamble and footer lines and cuts the rest on
// blank lines.
func splitBlocks(text string, skipHead, skipTail int) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if skipHead+skipTail >= len(lines) {
		return nil
	}
	body := strings.Join(lines[skipHead:len(lines)-skipTail], "")
	body = strings.TrimRight(body, "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n\n")
}

// splitState carries a partially assembled record between blocks. offset is
// the schema position the next block starts at; zero means aligned.
type splitState struct {
	offset  int
	pending []*string
}

// reset drops any partial record.
func (st *splitState) reset() {
	st.offset = 0
	st.pending = nil
}

// feed assigns a block's tokens to schema positions. It returns the completed
// token row once a record is whole.
//
// A block shorter than the remaining positions marks the next position absent
// and the following block resumes after it. This single-gap rule is tuned to
// dumps whose only optional field renders as an empty line.
func (st *splitState) feed(block string, width int) ([]*string, string) {
	tokens := splitFields(block)
	if st.offset == 0 {
		st.pending = make([]*string, width)
		if strings.TrimSpace(tokens[0]) == "" {
			return nil, "record starts with an empty anchor field"
		}
	} else if len(tokens) > 0 && tokens[0] == "" {
		return nil, "two consecutive fields are missing"
	}
	if len(tokens) > width-st.offset {
		return nil, "more tokens than remaining schema fields"
	}

	for j, tok := range tokens {
		st.pending[st.offset+j] = &tok
	}

	next := st.offset + len(tokens)
	if next < width-1 {
		// position next is absent
		st.offset = next + 1
		return nil, ""
	}
	st.offset = 0
	row := st.pending
	st.pending = nil
	return row, ""
}

// RecoverSplit recovers records by cutting the dump on blank lines and field
// separators. It is the fallback for dumps the positional layout cannot read.
func RecoverSplit(text string, s *Schema, opts Options) ([]schema.Record, int, error) {
	opts = opts.withDefaults()
	blocks := splitBlocks(normalize(text), opts.SkipHead, opts.SkipTail)

	var records []schema.Record
	var st splitState
	skipped := 0
	fail := func(i int, reason string, err error) error {
		if !opts.Lenient {
			return &MalformedRecordError{Record: i, Strategy: string(schema.SplitStrategy), Reason: reason, Err: err}
		}
		skipped++
		st.reset()
		opts.Logger.Warn("Skipping malformed block",
			zap.Int("block", i),
			zap.String("strategy", string(schema.SplitStrategy)),
			zap.String("reason", reason),
			zap.Error(err))
		return nil
	}

	for i, block := range blocks {
		row, reason := st.feed(block, s.Len())
		if reason != "" {
			if err := fail(i, reason, nil); err != nil {
				return nil, 0, err
			}
			continue
		}
		if row == nil {
			continue
		}
		rec, err := s.build(row)
		if err != nil {
			if !opts.Lenient {
				return nil, 0, err
			}
			if err := fail(i, "undecodable record", err); err != nil {
				return nil, 0, err
			}
			continue
		}
		records = append(records, rec)
	}
	if st.offset != 0 {
		if err := fail(len(blocks)-1, "input ends inside a record", nil); err != nil {
			return nil, 0, err
		}
	}
	return records, skipped, nil
}
