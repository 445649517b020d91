package domain

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ErrorSentinelPrefix marks an exported state table that carries a resolution failure instead of entries.
const ErrorSentinelPrefix = "ERROR: "

// StateTag identifies one package's full dependency closure, every member's fingerprint and the toolchain.
type StateTag uint64

// String renders the tag in the decimal form used by the exported table.
func (t StateTag) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// StateEntry pairs a root package name with its state tag.
type StateEntry struct {
	Name string
	Tag  StateTag
}

// StateTable is the build-wide export: either a list of entries or the failure that prevented
// computing them. Readers must check Err before using Entries.
type StateTable struct {
	entries []StateEntry
	failure string
	failed  bool
}

// OkTable builds a successful table.
func OkTable(entries []StateEntry) StateTable {
	return StateTable{entries: entries}
}

// ErrTable builds a poisoned table carrying the failure message.
func ErrTable(message string) StateTable {
	return StateTable{failure: message, failed: true}
}

// Err returns the resolution failure the table carries, or nil for a successful table.
func (t StateTable) Err() error {
	if !t.failed {
		return nil
	}
	return zerr.With(zerr.Wrap(ErrResolution, ""), "cause", t.failure)
}

// Entries returns the table entries. It is empty for a poisoned table.
func (t StateTable) Entries() []StateEntry {
	return t.entries
}

// Lookup returns the tag of the single entry named owner.
// A poisoned table returns its resolution failure; zero or several matches are a configuration error.
func (t StateTable) Lookup(owner string) (StateTag, error) {
	if err := t.Err(); err != nil {
		return 0, err
	}

	var (
		tag     StateTag
		matches int
	)
	for _, e := range t.entries {
		if e.Name == owner {
			tag = e.Tag
			matches++
		}
	}
	if matches != 1 {
		err := zerr.With(zerr.Wrap(ErrConfiguration, ""), "owner", owner)
		return 0, zerr.With(err, "matches", matches)
	}
	return tag, nil
}

// String encodes the table in its wire form: comma separated name:tag pairs, or the error sentinel.
func (t StateTable) String() string {
	if t.failed {
		return ErrorSentinelPrefix + t.failure
	}
	parts := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		parts = append(parts, e.Name+":"+e.Tag.String())
	}
	return strings.Join(parts, ",")
}

// ParseStateTable decodes the wire form produced by StateTable.String.
func ParseStateTable(s string) (StateTable, error) {
	if msg, ok := strings.CutPrefix(s, ErrorSentinelPrefix); ok {
		return ErrTable(msg), nil
	}
	if s == "" {
		return OkTable(nil), nil
	}

	fields := strings.Split(s, ",")
	entries := make([]StateEntry, 0, len(fields))
	for _, field := range fields {
		i := strings.LastIndexByte(field, ':')
		if i <= 0 {
			return StateTable{}, zerr.With(zerr.Wrap(ErrMalformedStateTable, ""), "entry", field)
		}
		tag, err := strconv.ParseUint(field[i+1:], 10, 64)
		if err != nil {
			return StateTable{}, zerr.With(zerr.Wrap(ErrMalformedStateTable, err.Error()), "entry", field)
		}
		entries = append(entries, StateEntry{Name: field[:i], Tag: StateTag(tag)})
	}
	return OkTable(entries), nil
}

// StateHasher accumulates closure members and the toolchain into a StateTag.
type StateHasher struct {
	digest *xxhash.Digest
}

// NewStateHasher creates an empty hasher.
func NewStateHasher() *StateHasher {
	return &StateHasher{digest: xxhash.New()}
}

// Add feeds one closure member. Callers must add members in canonical closure order.
func (h *StateHasher) Add(name string, fp Fingerprint) {
	_, _ = h.digest.WriteString(name)
	_, _ = h.digest.Write([]byte{0})
	_, _ = h.digest.WriteString(fp.String())
	_, _ = h.digest.Write([]byte{0})
}

// Sum finishes the tag with the toolchain fingerprint.
func (h *StateHasher) Sum(toolchain Toolchain) StateTag {
	_, _ = h.digest.WriteString(toolchain.Fingerprint())
	return StateTag(h.digest.Sum64())
}
