package linecat

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Sink receives assembled changes, one per emission, in order. Any error
// aborts the run immediately.
type Sink interface {
	Emit(change *Change) error
}

// binaryPlaceholder starts the numstat line for a binary file
// ("-\t-\tpath"); such lines carry no usable counts and are skipped.
const binaryPlaceholder = "-"

// maxLineSize bounds a single input line. Git log output can carry very long
// paths, so this is well above bufio.MaxScanTokenSize.
const maxLineSize = 10 * 1024 * 1024

type state int

const (
	// stateReset expects the next commit's header.
	stateReset state = iota
	// stateAwaitingPath has a header and expects a numstat line, a binary
	// marker, a blank separator, or the next commit's header.
	stateAwaitingPath
	// stateReady holds a complete record that has not been emitted yet.
	stateReady
)

// Stats counts what a run consumed and produced.
type Stats struct {
	Lines   int
	Commits int
	Emitted int
	Binary  int
}

// Machine is the streaming line classifier. It consumes git log output one
// line at a time and emits one Change per recognized file stat through its
// sink.
//
// Emission is deferred by one line: a record assembled from a numstat line is
// only emitted once the following line arrives, and that following line is
// consumed solely to decide the next state. Interior stat lines of multi-file
// commits are therefore dropped rather than emitted. This matches the
// behavior of the original tool and its fixtures; see DESIGN.md before
// changing it.
type Machine struct {
	repo string
	sink Sink

	state   state
	header  Header
	pending PathStat

	stats Stats
}

// NewMachine returns a machine that labels every change with repo and hands
// it to sink.
func NewMachine(repo string, sink Sink) *Machine {
	return &Machine{repo: repo, sink: sink}
}

// Feed advances the machine by one input line. The first error is fatal to
// the run; callers must not feed further lines after one.
func (m *Machine) Feed(line string) error {
	m.stats.Lines++

	switch m.state {
	case stateReset:
		header, err := ParseHeader(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", m.stats.Lines, err)
		}

		m.header = header
		m.stats.Commits++
		m.state = stateAwaitingPath

	case stateAwaitingPath:
		switch {
		case line == "":
			m.state = stateReset
		case strings.HasPrefix(line, binaryPlaceholder):
			log.Debugf("skipping binary file line %q", line)
			m.stats.Binary++
		default:
			stat, statErr := ParsePathStat(line)
			if statErr == nil {
				m.pending = stat
				m.state = stateReady

				break
			}

			// The previous commit had no file changes, so this line may be
			// the next commit's header instead.
			header, headerErr := ParseHeader(line)
			if headerErr != nil {
				return fmt.Errorf("line %d: %w", m.stats.Lines, statErr)
			}

			m.header = header
			m.stats.Commits++
		}

	case stateReady:
		if err := m.emit(); err != nil {
			return err
		}

		if line == "" {
			m.state = stateReset
		} else {
			// The line itself is not reparsed; it only tells us the commit
			// continues.
			m.state = stateAwaitingPath
		}
	}

	return nil
}

// Finish marks end of input and returns the run's stats. A record still
// pending when the input ends is dropped, matching the original protocol
// which has no end-of-stream flush.
func (m *Machine) Finish() Stats {
	if m.state == stateReady {
		log.Debugf("input ended with a pending record for %q; not emitted", m.pending.Path)
	}

	m.state = stateReset

	return m.stats
}

// Run feeds every line of r through the machine and finishes. It returns the
// stats so far and the first fatal error, if any.
func (m *Machine) Run(r io.Reader) (Stats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := m.Feed(scanner.Text()); err != nil {
			return m.stats, err
		}
	}

	if err := scanner.Err(); err != nil {
		return m.stats, fmt.Errorf("reading input: %w", err)
	}

	return m.Finish(), nil
}

func (m *Machine) emit() error {
	change := NewChange(m.repo, m.header, m.pending)
	if err := m.sink.Emit(&change); err != nil {
		return fmt.Errorf("line %d: emitting change for %s: %w", m.stats.Lines, change.Path, err)
	}

	m.stats.Emitted++

	return nil
}
