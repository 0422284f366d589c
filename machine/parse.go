package machine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single input line; machines are a few hundred bytes.
const maxLineBytes = 1 << 20

// Parse reads one machine from a line of the text format:
//
//	[.##.] (3) (1,3) (2) (2,3) (0,2) (0,1) {3,5,4,7}
//
// The bracketed light pattern is optional, any number of parenthesised
// buttons may follow (an empty "()" is a button that affects nothing) and
// exactly one braced target list is required. The result is validated.
func Parse(line string) (Machine, error) {
	var (
		m          Machine
		haveLights bool
		haveTarget bool
		i          int
	)
	for i < len(line) {
		ch := line[i]
		switch ch {
		case ' ', '\t', '\r':
			i++
			continue
		case '[', '(', '{':
		default:
			return Machine{}, fmt.Errorf("offset %d: unexpected %q: %w", i, ch, ErrSyntax)
		}
		end := strings.IndexByte(line[i+1:], closerOf(ch))
		if end < 0 {
			return Machine{}, fmt.Errorf("offset %d: unterminated %q: %w", i, ch, ErrSyntax)
		}
		body := line[i+1 : i+1+end]
		switch ch {
		case '[':
			if haveLights {
				return Machine{}, fmt.Errorf("offset %d: second light pattern: %w", i, ErrSyntax)
			}
			lights, err := parseLights(body)
			if err != nil {
				return Machine{}, fmt.Errorf("offset %d: %w", i, err)
			}
			m.Lights, haveLights = lights, true
		case '(':
			button, err := parseInts(body)
			if err != nil {
				return Machine{}, fmt.Errorf("offset %d: button: %w", i, err)
			}
			m.Buttons = append(m.Buttons, uniqueCounters(button))
		case '{':
			if haveTarget {
				return Machine{}, fmt.Errorf("offset %d: second target list: %w", i, ErrSyntax)
			}
			targets, err := parseInts(body)
			if err != nil {
				return Machine{}, fmt.Errorf("offset %d: targets: %w", i, err)
			}
			m.Targets, haveTarget = targets, true
		}
		i += end + 2
	}
	if !haveTarget {
		return Machine{}, fmt.Errorf("missing {targets}: %w", ErrSyntax)
	}
	if m.Targets == nil {
		m.Targets = []int{}
	}
	if err := m.Validate(); err != nil {
		return Machine{}, err
	}

	return m, nil
}

// ParseAll reads one machine per non-blank line. Errors name the 1-based line.
func ParseAll(r io.Reader) ([]Machine, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var (
		out    []Machine
		lineNo int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		m, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return out, nil
}

func closerOf(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '(':
		return ')'
	default:
		return '}'
	}
}

func parseLights(body string) ([]bool, error) {
	lights := make([]bool, len(body))
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '#':
			lights[i] = true
		case '.':
		default:
			return nil, fmt.Errorf("light %d: unexpected %q: %w", i, body[i], ErrSyntax)
		}
	}

	return lights, nil
}

// parseInts parses a comma separated list; an empty body is an empty list.
func parseInts(body string) ([]int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return []int{}, nil
	}
	parts := strings.Split(body, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("item %d %q: %w", i, p, ErrSyntax)
		}
		out[i] = v
	}

	return out, nil
}
