// Package versioned implements the versioned, shareable entry schema: an
// envelope carrying timestamps, a semantic version, sharing settings and an
// optional encrypted payload around arbitrary data.
//
// This schema is independent of the memory and integration stores; entries
// are never fed to their reducers.
package versioned

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/agent-console/internal/vault"
)

// InitialVersion is assigned to new entries.
const InitialVersion = "1.0.0"

// ErrMalformedVersion is returned when a version is not major.minor.patch.
var ErrMalformedVersion = errors.New("malformed version")

// SharingLevel controls who may see an entry.
type SharingLevel string

const (
	SharingPrivate SharingLevel = "private"
	SharingTeam    SharingLevel = "team"
	// SharingPublic entries have no collaborator list; empty means
	// unrestricted, not "nobody".
	SharingPublic SharingLevel = "public"
)

func (l SharingLevel) Valid() bool {
	switch l {
	case SharingPrivate, SharingTeam, SharingPublic:
		return true
	}
	return false
}

// Meta is the versioning and sharing envelope.
type Meta struct {
	ID                 string       `json:"id"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
	Version            string       `json:"version"`
	CollaboratorIDs    []string     `json:"collaboratorIds,omitempty"`
	SharingPermissions SharingLevel `json:"sharingPermissions,omitempty"`
	IsEncrypted        bool         `json:"isEncrypted"`
	EncryptionMethod   string       `json:"encryptionMethod,omitempty"`
}

// Entry wraps data with versioning metadata.
type Entry[T any] struct {
	Meta
	Data T `json:"data"`
}

// Clock returns the current time. Replace it in tests.
var Clock = time.Now

var (
	entropyMu sync.Mutex
	entropy   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// NewID returns a fresh ULID.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(Clock()), entropy).String()
}

// Create wraps data in a new entry at version 1.0.0. An empty id is
// replaced with a fresh ULID.
func Create[T any](data T, id string) Entry[T] {
	if id == "" {
		id = NewID()
	}
	now := Clock().UTC()
	return Entry[T]{
		Meta: Meta{
			ID:        id,
			CreatedAt: now,
			UpdatedAt: now,
			Version:   InitialVersion,
		},
		Data: data,
	}
}

// Version is a parsed major.minor.patch triple.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses "major.minor.patch". Each part is a run of ASCII
// digits with no sign and no leading zero.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}
	var nums [3]int
	for i, p := range parts {
		if !isVersionPart(p) {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func isVersionPart(p string) bool {
	if p == "" || (len(p) > 1 && p[0] == '0') {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}

// UpdateVersion returns a copy of e with the patch component bumped and
// UpdatedAt refreshed. UpdatedAt always moves strictly forward, even if the
// clock has not.
func UpdateVersion[T any](e Entry[T]) (Entry[T], error) {
	v, err := ParseVersion(e.Version)
	if err != nil {
		return e, err
	}
	v.Patch++

	now := Clock().UTC()
	if !now.After(e.UpdatedAt) {
		now = e.UpdatedAt.Add(time.Millisecond)
	}

	e.Version = v.String()
	e.UpdatedAt = now
	return e, nil
}

// SanitizeForSharing returns a copy of e prepared for the given sharing
// level: private keeps only the current user, team keeps existing
// collaborators (or the current user when there are none), and public
// clears the list. An unrecognized level is treated as private.
func SanitizeForSharing[T any](e Entry[T], currentUserID string, level SharingLevel) Entry[T] {
	if !level.Valid() {
		level = SharingPrivate
	}
	e.SharingPermissions = level
	switch level {
	case SharingPrivate:
		e.CollaboratorIDs = []string{currentUserID}
	case SharingTeam:
		if len(e.CollaboratorIDs) == 0 {
			e.CollaboratorIDs = []string{currentUserID}
		} else {
			e.CollaboratorIDs = append([]string(nil), e.CollaboratorIDs...)
		}
	case SharingPublic:
		e.CollaboratorIDs = []string{}
	}
	return e
}

// Sealed is an entry whose payload is encrypted.
type Sealed struct {
	Meta
	Payload string `json:"payload"`
}

// Seal encrypts the entry's data with key.
func Seal[T any](e Entry[T], key string) (Sealed, error) {
	blob, err := vault.Encrypt(e.Data, key)
	if err != nil {
		return Sealed{}, fmt.Errorf("seal %s: %w", e.ID, err)
	}
	m := e.Meta
	m.IsEncrypted = true
	m.EncryptionMethod = vault.Method
	return Sealed{Meta: m, Payload: blob}, nil
}

// Open decrypts a sealed entry. A wrong key yields vault.ErrDecrypt.
func Open[T any](s Sealed, key string) (Entry[T], error) {
	var data T
	if err := vault.Decrypt(s.Payload, key, &data); err != nil {
		return Entry[T]{}, fmt.Errorf("open %s: %w", s.ID, err)
	}
	m := s.Meta
	m.IsEncrypted = false
	m.EncryptionMethod = ""
	return Entry[T]{Meta: m, Data: data}, nil
}
