package console

import (
	"bytes"
	"testing"
)

func TestConsolePlainOutput(t *testing.T) {
	var out bytes.Buffer
	c := New(&out)
	c.Println("Too small.")
	c.Errorf("Could not save %s.", "statistics")
	c.Hint("Hint: the number is in [1, 5].")
	c.Prompt("> ")

	want := "Too small.\n[Error] Could not save statistics.\nHint: the number is in [1, 5].\n> "
	if out.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out.String(), want)
	}
}
