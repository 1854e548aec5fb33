// Package logger implements a central store for log entries. Log entries are
// tagged with a short reference string and can be echoed to an io.Writer as
// they arrive.
//
// Logging is gated by a Permission. Most callers can use the package-wide
// Allow instance but parts of the machine that can generate a log entry on
// every guest access should take a Permission from their creation context so
// that logging can be turned off in tight loops.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission implementations decide whether a log request is acted upon
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow is a Permission that always allows the log entry to be made
var Allow allow

// the maximum number of entries in the log. once reached the oldest entries
// are discarded
const maxEntries = 256

type entry struct {
	tag    string
	detail string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.detail)
}

type central struct {
	crit    sync.Mutex
	entries []entry
	echo    io.Writer
}

var log = central{
	entries: make([]entry, 0, maxEntries),
}

func (c *central) add(tag string, detail string) {
	c.crit.Lock()
	defer c.crit.Unlock()

	// split multi-line details into separate entries. it keeps the Tail()
	// output tidy
	for _, d := range strings.Split(detail, "\n") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		e := entry{tag: tag, detail: d}
		if len(c.entries) >= maxEntries {
			c.entries = c.entries[1:]
		}
		c.entries = append(c.entries, e)
		if c.echo != nil {
			io.WriteString(c.echo, e.String())
			io.WriteString(c.echo, "\n")
		}
	}
}

// Log adds an entry to the central log. The detail can be a string, an error
// or anything else with a reasonable String() representation
func Log(perm Permission, tag string, detail any) {
	if !perm.AllowLogging() {
		return
	}

	switch d := detail.(type) {
	case string:
		log.add(tag, d)
	case error:
		log.add(tag, d.Error())
	case fmt.Stringer:
		log.add(tag, d.String())
	default:
		log.add(tag, fmt.Sprintf("%v", d))
	}
}

// Logf adds a formatted entry to the central log
func Logf(perm Permission, tag string, format string, args ...any) {
	if !perm.AllowLogging() {
		return
	}
	log.add(tag, fmt.Sprintf(format, args...))
}

// Tail writes the last n entries to the io.Writer. A value of -1 writes every
// entry held by the log
func Tail(w io.Writer, n int) {
	log.crit.Lock()
	defer log.crit.Unlock()

	if n < 0 || n > len(log.entries) {
		n = len(log.entries)
	}
	for _, e := range log.entries[len(log.entries)-n:] {
		io.WriteString(w, e.String())
		io.WriteString(w, "\n")
	}
}

// SetEcho instructs the logger to echo new entries to the io.Writer. A nil
// writer turns echoing off. The writeRecent flag additionally writes the
// entries already held by the log
func SetEcho(w io.Writer, writeRecent bool) {
	log.crit.Lock()
	log.echo = w
	log.crit.Unlock()

	if w != nil && writeRecent {
		Tail(w, -1)
	}
}
