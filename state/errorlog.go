package state

// ErrorLog is a bounded, append-only message list that evicts the oldest entry.
// Values are immutable: Append returns a new log sharing no storage.
type ErrorLog struct {
	entries []string
	limit   int
}

// NewErrorLog creates an empty log keeping at most limit entries
func NewErrorLog(limit int) ErrorLog {
	if limit < 1 {
		limit = 1
	}
	return ErrorLog{limit: limit}
}

// Append returns a log with msg added and the oldest entries evicted past the limit
func (l ErrorLog) Append(msg string) ErrorLog {
	limit := l.limit
	if limit < 1 {
		limit = 1
	}

	start := 0
	if len(l.entries)+1 > limit {
		start = len(l.entries) + 1 - limit
	}

	next := make([]string, 0, limit)
	next = append(next, l.entries[start:]...)
	next = append(next, msg)
	return ErrorLog{entries: next, limit: limit}
}

// Clear returns an empty log with the same limit
func (l ErrorLog) Clear() ErrorLog {
	return ErrorLog{limit: l.limit}
}

// Entries returns a copy of the messages, oldest first
func (l ErrorLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of messages
func (l ErrorLog) Len() int {
	return len(l.entries)
}

// Limit returns the maximum number of messages kept
func (l ErrorLog) Limit() int {
	return l.limit
}
