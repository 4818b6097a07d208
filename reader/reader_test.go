package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rsilicon/rsdspemu/base"
)

func writeVectors(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vectors.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func Test_ReadVectors(t *testing.T) {
	path := writeVectors(t, `
# plain multiply
a=5 b=3 unsigned_a=1 unsigned_b=1

reset=1
a=0xFFFFF b=0b11 feedback=3 load_acc=1 shift_right=4 round=1 saturate=1 subtract=1 acc_fir=2
`)

	vectors, err := ReadVectors(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 3 {
		t.Fatalf("expected 3 cycles, got %d", len(vectors))
	}

	if vectors[0].A != 5 || vectors[0].B != 3 ||
		!vectors[0].UnsignedA || !vectors[0].UnsignedB {
		t.Errorf("cycle 0 parsed wrong: %+v", vectors[0])
	}
	if !vectors[1].Reset {
		t.Errorf("cycle 1: reset not parsed")
	}

	v := vectors[2]
	if v.A != 0xFFFFF || v.B != 0b11 || v.Feedback != base.FeedbackAcc ||
		!v.LoadAcc || v.ShiftRight != 4 || !v.Round || !v.Saturate ||
		!v.Subtract || v.AccFir != 2 {
		t.Errorf("cycle 2 parsed wrong: %+v", v)
	}
}

func Test_ReadVectorsErrors(t *testing.T) {
	cases := map[string]string{
		"unknown port":    "bogus=1",
		"malformed field": "a",
		"bad value":       "a=xyz",
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadVectors(writeVectors(t, content)); err == nil {
				t.Errorf("'%s' accepted", content)
			}
		})
	}
}

func Test_ReadVectorsMissingFile(t *testing.T) {
	if _, err := ReadVectors("does-not-exist.txt"); err == nil {
		t.Errorf("missing file accepted")
	}
}
