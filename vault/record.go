// Package vault is the top-level facade: it ties together the byte store,
// record codec, and key resolver into load/save/add/remove/unlock/lock
// operations over a single vault file (spec §4.8).
package vault

import (
	"fmt"

	"github.com/ladzaretti/kevi/recordcodec"
	"github.com/ladzaretti/kevi/vaulterrors"
)

// SecretString wraps a value that must never render in logs, error
// messages, or debug output. Its zero value is the empty secret.
type SecretString struct {
	value string
}

// NewSecretString wraps s.
func NewSecretString(s string) SecretString { return SecretString{value: s} }

// Expose returns the wrapped value. Call sites are expected to be narrow:
// encrypting, copying to clipboard, or printing under an explicit reveal
// flag.
func (s SecretString) Expose() string { return s.value }

// String never reveals the wrapped value, so a Record printed with %v or
// via a logger does not leak a password.
func (SecretString) String() string { return "<redacted>" }

// GoString mirrors String for %#v / debug formatting.
func (SecretString) GoString() string { return "<redacted>" }

// Record is a single vault entry. Password is always present; Username and
// Notes are optional free text. Username is a secret string, like Password,
// since it is frequently an email address or account identifier.
type Record struct {
	Label    string
	Username SecretString
	Password SecretString
	Notes    string
}

// NewRecord validates and constructs a Record. Label and Password must be
// non-empty; Username and Notes are optional.
func NewRecord(label, username, password, notes string) (Record, error) {
	if label == "" {
		return Record{}, vaulterrors.ErrEmptyLabel
	}

	if password == "" {
		return Record{}, vaulterrors.ErrEmptyPassword
	}

	return Record{
		Label:    label,
		Username: NewSecretString(username),
		Password: NewSecretString(password),
		Notes:    notes,
	}, nil
}

// String never reveals the username or password.
func (r Record) String() string {
	return fmt.Sprintf("Record{Label:%q, Username:<redacted>, Password:<redacted>, Notes:%q}", r.Label, r.Notes)
}

func toWireRecord(r Record) recordcodec.Record {
	return recordcodec.Record{
		Label:    r.Label,
		Username: r.Username.Expose(),
		Password: r.Password.Expose(),
		Notes:    r.Notes,
	}
}

func fromWireRecord(r recordcodec.Record) Record {
	return Record{
		Label:    r.Label,
		Username: NewSecretString(r.Username),
		Password: NewSecretString(r.Password),
		Notes:    r.Notes,
	}
}
