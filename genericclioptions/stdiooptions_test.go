package genericclioptions

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func TestStdioOptionsComplete_DetectsPipedInput(t *testing.T) {
	fi := NewMockFileInfo("stdin", 0, os.ModeNamedPipe, false, time.Time{})
	in := NewTestFdReader(bytes.NewBufferString("piped"), 0, fi)

	iostreams, _, _, _ := NewTestIOStreams(in)
	o := &StdioOptions{IOStreams: iostreams}

	if err := o.Complete(); err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}

	if !o.NonInteractive {
		t.Fatal("expected NonInteractive to be true for piped input")
	}
}

func TestStdioOptionsComplete_InteractiveTerminalStaysInteractive(t *testing.T) {
	fi := NewMockFileInfo("stdin", 0, os.ModeCharDevice, false, time.Time{})
	in := NewTestFdReader(bytes.NewBufferString(""), 0, fi)

	iostreams, _, _, _ := NewTestIOStreams(in)
	o := &StdioOptions{IOStreams: iostreams}

	if err := o.Complete(); err != nil {
		t.Fatalf("Complete() returned error: %v", err)
	}

	if o.NonInteractive {
		t.Fatal("expected NonInteractive to remain false for a character device")
	}
}

func TestStdioOptionsValidate_RejectsStdinFlagWithoutPipe(t *testing.T) {
	fi := NewMockFileInfo("stdin", 0, os.ModeCharDevice, false, time.Time{})
	in := NewTestFdReader(bytes.NewBufferString(""), 0, fi)

	iostreams := NewTestIOStreamsDiscard(in)
	o := &StdioOptions{IOStreams: iostreams, NonInteractive: true}

	if err := o.Validate(); err != ErrInvalidStdinUsage {
		t.Fatalf("expected ErrInvalidStdinUsage, got %v", err)
	}
}
