package recordcodec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ladzaretti/kevi/recordcodec"
	"github.com/ladzaretti/kevi/vaulterrors"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	records := []recordcodec.Record{
		{Label: "github", Username: "alice", Password: "hunter2"},
		{Label: "github", Username: "bob", Password: "s3cr3t", Notes: "work account"},
	}

	encoded, err := recordcodec.Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := recordcodec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_Empty(t *testing.T) {
	encoded, err := recordcodec.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := recordcodec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := recordcodec.Decode([]byte("this is not = valid [[[ toml"))
	if !errors.Is(err, vaulterrors.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestDecode_PreservesDuplicateLabels(t *testing.T) {
	records := []recordcodec.Record{
		{Label: "dup", Username: "a", Password: "x"},
		{Label: "dup", Username: "b", Password: "y"},
	}

	encoded, err := recordcodec.Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := recordcodec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 records preserved, got %d", len(got))
	}
}
