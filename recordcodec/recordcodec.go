// Package recordcodec encodes and decodes the plaintext record list that is
// sealed inside a vault file (spec §4.1, §4.3). The wire format is a TOML
// document of `[[record]]` array-of-tables, matching the teacher stack's
// existing go-toml/v2 dependency rather than inventing a bespoke format.
package recordcodec

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/ladzaretti/kevi/vaulterrors"
)

// Record is the wire shape of one vault entry. Secret-carrying fields are
// plain strings at this layer; redaction is the concern of package vault,
// which sits above the codec.
type Record struct {
	Label    string `toml:"label"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Notes    string `toml:"notes,omitempty"`
}

type document struct {
	Record []Record `toml:"record"`
}

// Encode serializes records into the plaintext form that [vaultcrypto.Encrypt]
// seals. An empty or nil slice encodes to a valid, empty document.
func Encode(records []Record) ([]byte, error) {
	doc := document{Record: records}

	b, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", vaulterrors.ErrEncode, err)
	}

	return b, nil
}

// Decode parses the plaintext produced by [Encode]. A malformed document is
// reported as [vaulterrors.ErrDecode]; the caller is not expected to
// recover from it since the plaintext should only ever have come from a
// prior successful [Encode]/[vaultcrypto.Decrypt] round trip.
func Decode(data []byte) ([]Record, error) {
	var doc document

	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", vaulterrors.ErrDecode, err)
	}

	return doc.Record, nil
}
