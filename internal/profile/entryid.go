package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Class says what a repeating-section entry is, and therefore which remote
// call (if any) a save or delete must make.
type Class int

const (
	// ClassUnsaved is the blank placeholder row ("new"). It has no backend
	// counterpart and is skipped on save while it stays blank.
	ClassUnsaved Class = iota
	// ClassPending is a row added this session ("temp_<millis>"). Save
	// issues a CREATE and promotes the id to the server-assigned one.
	ClassPending
	// ClassPersisted is a row the backend knows (decimal id). Save issues
	// an UPDATE; delete issues a remote DELETE before local removal.
	ClassPersisted
	// ClassUnknown is anything else. No remote call, log only.
	ClassUnknown
)

func (c Class) String() string {
	switch c {
	case ClassUnsaved:
		return "unsaved"
	case ClassPending:
		return "pending"
	case ClassPersisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// EntryID is the identity of one repeating-section entry. The frontend
// contract encodes it as a plain string ("new", "temp_1712345678901", or a
// decimal primary key); internally we keep it as a tagged value so dispatch
// is exhaustive instead of prefix sniffing at every call site.
type EntryID struct {
	class    Class
	serverID int64
	raw      string
}

const (
	sentinelNew = "new"
	tempPrefix  = "temp_"
)

// Unsaved returns the blank-placeholder sentinel id.
func Unsaved() EntryID {
	return EntryID{class: ClassUnsaved, raw: sentinelNew}
}

// NewPending mints a client-only placeholder id keyed by the current time.
func NewPending(now time.Time) EntryID {
	return EntryID{class: ClassPending, raw: fmt.Sprintf("%s%d", tempPrefix, now.UnixMilli())}
}

// Persisted returns the id of a row the backend has confirmed.
func Persisted(serverID int64) EntryID {
	return EntryID{class: ClassPersisted, serverID: serverID, raw: strconv.FormatInt(serverID, 10)}
}

// ParseEntryID classifies a wire-form id string. Rules, in order: the
// literal "new" is the unsaved sentinel; a "temp_" prefix is a pending row;
// a parseable integer is a persisted row; anything else is unknown.
func ParseEntryID(s string) EntryID {
	switch {
	case s == sentinelNew:
		return Unsaved()
	case strings.HasPrefix(s, tempPrefix):
		return EntryID{class: ClassPending, raw: s}
	default:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return EntryID{class: ClassPersisted, serverID: n, raw: s}
		}
		return EntryID{class: ClassUnknown, raw: s}
	}
}

func (id EntryID) Class() Class {
	return id.class
}

// ServerID returns the backend primary key for persisted ids.
func (id EntryID) ServerID() (int64, bool) {
	if id.class == ClassPersisted {
		return id.serverID, true
	}
	return 0, false
}

// String renders the wire form. The zero EntryID renders as the unsaved
// sentinel so an uninitialized entry is still a valid blank row.
func (id EntryID) String() string {
	if id.raw == "" {
		return sentinelNew
	}
	return id.raw
}

func (id EntryID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(id.String())), nil
}

func (id *EntryID) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("entry id must be a JSON string: %w", err)
	}
	*id = ParseEntryID(s)
	return nil
}
