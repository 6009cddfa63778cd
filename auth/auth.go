// Package auth models the closed set of identity strategies a launch can use.
//
// Method is sealed: only types in this package implement it, and every
// variant must produce an Identity. Adding a variant without Identity fails
// to compile wherever a Method is expected.
package auth

import (
	"crypto/md5"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidIdentity is returned when a variant lacks the fields it needs.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the resolved set of values the game reads from its arguments.
type Identity struct {
	PlayerName  string
	UUID        string // undashed hex, as the game expects
	AccessToken string
	UserType    string // "legacy" for offline, "msa" for Microsoft accounts
	XUID        string
	ClientID    string
}

// Method is one authentication strategy. Exactly one is active per launch.
type Method interface {
	// Identity validates the variant and returns its launch identity.
	Identity() (Identity, error)
	// Kind names the variant for logs and the UI.
	Kind() string

	sealed()
}

// Offline is a local identity that needs only a display name.
type Offline struct {
	PlayerName string
	UUID       string // optional; derived from PlayerName when empty
}

// Microsoft carries an account whose token was obtained elsewhere.
type Microsoft struct {
	PlayerName  string
	UUID        string
	AccessToken string
	XUID        string
	ClientID    string
}

func (Offline) sealed()   {}
func (Microsoft) sealed() {}

func (Offline) Kind() string   { return "offline" }
func (Microsoft) Kind() string { return "microsoft" }

func (o Offline) Identity() (Identity, error) {
	name := strings.TrimSpace(o.PlayerName)
	if name == "" {
		return Identity{}, fmt.Errorf("%w: offline player name is empty", ErrInvalidIdentity)
	}

	id := OfflineUUID(name)
	if o.UUID != "" {
		parsed, err := uuid.Parse(o.UUID)
		if err != nil {
			return Identity{}, fmt.Errorf("%w: bad uuid %q: %v", ErrInvalidIdentity, o.UUID, err)
		}
		id = parsed
	}

	return Identity{
		PlayerName:  name,
		UUID:        undashed(id),
		AccessToken: "0",
		UserType:    "legacy",
	}, nil
}

func (m Microsoft) Identity() (Identity, error) {
	if strings.TrimSpace(m.PlayerName) == "" {
		return Identity{}, fmt.Errorf("%w: microsoft account has no player name", ErrInvalidIdentity)
	}
	if m.AccessToken == "" {
		return Identity{}, fmt.Errorf("%w: microsoft account has no access token", ErrInvalidIdentity)
	}
	id, err := uuid.Parse(m.UUID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad uuid %q: %v", ErrInvalidIdentity, m.UUID, err)
	}

	return Identity{
		PlayerName:  m.PlayerName,
		UUID:        undashed(id),
		AccessToken: m.AccessToken,
		UserType:    "msa",
		XUID:        m.XUID,
		ClientID:    m.ClientID,
	}, nil
}

// OfflineUUID derives the same name-based v3 UUID the game server uses for
// offline players: MD5 of "OfflinePlayer:<name>" with no namespace prefix.
func OfflineUUID(playerName string) uuid.UUID {
	sum := md5.Sum([]byte("OfflinePlayer:" + playerName))
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.UUID(sum)
}

func undashed(id uuid.UUID) string {
	return strings.ReplaceAll(id.String(), "-", "")
}
