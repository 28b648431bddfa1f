// Package history is the append-only audit log of canvas mutations. Every
// successful place and delete appends one immutable entry; deletions
// append a new entry with a nil record rather than touching the placement
// entry. The log drives leaderboards and time-lapse playback.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/cbodonnell/worldcanvas/pkg/store"
)

// Entry is one committed mutation. PlacedObject is the serialized object
// record for a placement and nil for a deletion. Ordering is the order of
// commits as observed by the log writer; Seq is assigned by the store's
// ordered append and breaks timestamp ties deterministically.
type Entry struct {
	Key          string  `json:"key"`
	ChunkID      string  `json:"chunkId,omitempty"`
	PlacedObject *string `json:"placedObject"`
	Timestamp    int64   `json:"timestamp"`
	Username     string  `json:"username,omitempty"`
	Seq          int64   `json:"-"`
}

// IsPlacement reports whether the entry records a placement.
func (e *Entry) IsPlacement() bool {
	return e.PlacedObject != nil
}

// Log appends and reads history entries in the replicated store.
type Log struct {
	store store.Store
}

func NewLog(s store.Store) *Log {
	return &Log{store: s}
}

// Append writes an entry to the log and returns its sequence number.
func (l *Log) Append(ctx context.Context, entry *Entry) (int64, error) {
	b, err := json.Marshal(entry)
	if err != nil {
		return 0, fmt.Errorf("failed to encode history entry: %v", err)
	}
	seq, err := l.store.Append(ctx, store.PathHistory, string(b))
	if err != nil {
		return 0, fmt.Errorf("failed to append history entry: %v", err)
	}
	return seq, nil
}

// ReadAll returns every entry in append order.
func (l *Log) ReadAll(ctx context.Context) ([]Entry, error) {
	records, err := l.store.ReadLog(ctx, store.PathHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to read history log: %v", err)
	}
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entry := Entry{}
		if err := json.Unmarshal([]byte(record.Value), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode history entry %d: %v", record.Seq, err)
		}
		entry.Seq = record.Seq
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReplayTarget receives mutations during playback.
type ReplayTarget interface {
	ApplyAdd(chunkID, key, record string)
	ApplyRemove(chunkID, key string)
}

// Replay applies entries to target in timestamp order (sequence order for
// equal timestamps). Replaying the full log against a fresh target
// reproduces the final world state; a deletion whose key is absent is
// applied as-is and the target is expected to ignore it.
func Replay(entries []Entry, target ReplayTarget) {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Timestamp != ordered[j].Timestamp {
			return ordered[i].Timestamp < ordered[j].Timestamp
		}
		return ordered[i].Seq < ordered[j].Seq
	})
	for i := range ordered {
		entry := &ordered[i]
		if entry.IsPlacement() {
			target.ApplyAdd(entry.ChunkID, entry.Key, *entry.PlacedObject)
		} else {
			target.ApplyRemove(entry.ChunkID, entry.Key)
		}
	}
}

// UserTotals is one leaderboard row.
type UserTotals struct {
	Username string `json:"username"`
	Placed   int    `json:"placed"`
	Deleted  int    `json:"deleted"`
}

// Toplist aggregates per-user placement and deletion counts, sorted by
// placements descending. Entries without a username (pre-index commits)
// are skipped. A non-positive limit returns all users.
func Toplist(entries []Entry, limit int) []UserTotals {
	placed := make(map[string]int)
	deleted := make(map[string]int)
	for i := range entries {
		entry := &entries[i]
		if entry.Username == "" {
			continue
		}
		if entry.IsPlacement() {
			placed[entry.Username]++
		} else {
			deleted[entry.Username]++
		}
	}

	users := make(map[string]struct{}, len(placed)+len(deleted))
	for u := range placed {
		users[u] = struct{}{}
	}
	for u := range deleted {
		users[u] = struct{}{}
	}

	totals := make([]UserTotals, 0, len(users))
	for u := range users {
		totals = append(totals, UserTotals{Username: u, Placed: placed[u], Deleted: deleted[u]})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Placed != totals[j].Placed {
			return totals[i].Placed > totals[j].Placed
		}
		return totals[i].Username < totals[j].Username
	})

	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// Totals returns the overall placement and deletion counts.
func Totals(entries []Entry) (placed, deleted int) {
	for i := range entries {
		if entries[i].IsPlacement() {
			placed++
		} else {
			deleted++
		}
	}
	return placed, deleted
}
