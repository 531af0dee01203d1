package debug

import (
	"testing"
	"time"
)

func TestSetEnabled(t *testing.T) {
	defer SetEnabled(false)

	SetEnabled(true)
	if !Enabled() {
		t.Fatal("Enabled() should report true after SetEnabled(true)")
	}

	// All helpers must be callable with the logger initialized.
	Log("check %d", 1)
	LogTiming("reload.load", 3*time.Millisecond)
	LogFunc("reload finished")()

	SetEnabled(false)
	if Enabled() {
		t.Fatal("Enabled() should report false after SetEnabled(false)")
	}
	Log("dropped")
	LogFunc("dropped")()
}
