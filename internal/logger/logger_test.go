package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsRouteToWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters("run", &out, &errOut)

	l.Info("started")
	l.Warnf("fps %d is high", 240)
	l.Event("settings", "size=40")
	l.Errorf("write failed: %s", "disk full")

	info := out.String()
	for _, want := range []string{"[run] INFO  started", "[run] WARN  fps 240 is high", "[EVENT:settings] size=40"} {
		if !strings.Contains(info, want) {
			t.Fatalf("stdout missing %q:\n%s", want, info)
		}
	}
	if strings.Contains(info, "disk full") {
		t.Fatal("error line written to stdout")
	}
	if !strings.Contains(errOut.String(), "[run] ERROR write failed: disk full") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}
