// Package accounts manages user accounts and the username index on top of
// the replicated store.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cbodonnell/worldcanvas/pkg/store"
)

// Account is a user's persistent record. Timestamps are unix
// milliseconds; zero means the action has never happened.
type Account struct {
	Username    string `json:"username"`
	LastPlaced  int64  `json:"lastPlaced"`
	LastDeleted int64  `json:"lastDeleted"`
	// PlaceCooldownSec and DeleteCooldownSec override the global
	// defaults when non-nil.
	PlaceCooldownSec  *int `json:"placeCooldownSec,omitempty"`
	DeleteCooldownSec *int `json:"deleteCooldownSec,omitempty"`
	Admin             bool `json:"admin,omitempty"`
}

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "account not found"
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,16}$`)

// usernameDenylist holds names that can never be claimed, compared
// case-insensitively.
var usernameDenylist = map[string]struct{}{
	"admin":     {},
	"moderator": {},
	"server":    {},
	"system":    {},
	"deleted":   {},
}

// ValidateUsername checks the fixed character/length pattern and the
// denylist. It does not check availability.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username must be 3-16 characters of a-z, A-Z, 0-9, _ or -")
	}
	if _, denied := usernameDenylist[strings.ToLower(username)]; denied {
		return fmt.Errorf("username %q is reserved", username)
	}
	return nil
}

// Manager reads and writes accounts in the replicated store.
type Manager struct {
	store store.Store
}

func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Get loads the account for a uid.
func (m *Manager) Get(ctx context.Context, uid string) (*Account, error) {
	value, ok, err := m.store.Get(ctx, store.UserDataPath(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to read account: %v", err)
	}
	if !ok {
		return nil, &ErrNotFound{}
	}
	account := &Account{}
	if err := json.Unmarshal([]byte(value), account); err != nil {
		return nil, fmt.Errorf("failed to decode account for %s: %v", uid, err)
	}
	return account, nil
}

// Put writes the account for a uid.
func (m *Manager) Put(ctx context.Context, uid string, account *Account) error {
	b, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to encode account: %v", err)
	}
	if err := m.store.Set(ctx, store.UserDataPath(uid), string(b)); err != nil {
		return fmt.Errorf("failed to write account: %v", err)
	}
	return nil
}

// ClaimUsername reserves the lowercase form of username for uid and
// reports whether the claim succeeded. Usernames are globally unique
// case-insensitively.
func (m *Manager) ClaimUsername(ctx context.Context, username, uid string) (bool, error) {
	claimed, err := m.store.SetIfAbsent(ctx, store.UserNamePath(strings.ToLower(username)), uid)
	if err != nil {
		return false, fmt.Errorf("failed to claim username: %v", err)
	}
	return claimed, nil
}

// ReleaseUsername frees a claimed username. Used to unwind a partial
// account creation.
func (m *Manager) ReleaseUsername(ctx context.Context, username string) error {
	return m.store.Delete(ctx, store.UserNamePath(strings.ToLower(username)))
}

// IncrementUserCount bumps the global account counter.
func (m *Manager) IncrementUserCount(ctx context.Context) (int64, error) {
	return m.store.IncrementCounter(ctx, store.PathUserCount, 1)
}

// TouchLastPlaced moves the user's last-placed timestamp forward to
// now. The timestamp never moves backward.
func (m *Manager) TouchLastPlaced(ctx context.Context, uid string, now int64) error {
	account, err := m.Get(ctx, uid)
	if err != nil {
		return err
	}
	if now <= account.LastPlaced {
		return nil
	}
	account.LastPlaced = now
	return m.Put(ctx, uid, account)
}

// TouchLastDeleted moves the user's last-deleted timestamp forward to
// now. The timestamp never moves backward.
func (m *Manager) TouchLastDeleted(ctx context.Context, uid string, now int64) error {
	account, err := m.Get(ctx, uid)
	if err != nil {
		return err
	}
	if now <= account.LastDeleted {
		return nil
	}
	account.LastDeleted = now
	return m.Put(ctx, uid, account)
}
