package oifits

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// corruptFirstDatasum flips one digit of the first DATASUM card's value in
// a FITS file written to disk, byte-for-byte, without going through the
// fits package (spec.md §8 scenario 8 "checksum bad").
func corruptFirstDatasum(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	key := []byte("DATASUM")
	ki := bytes.Index(data, key)
	if ki < 0 {
		t.Fatal("no DATASUM card found in written file")
	}
	qi := bytes.IndexByte(data[ki:], '\'')
	if qi < 0 {
		t.Fatal("no quoted value following DATASUM card")
	}
	digitPos := ki + qi + 1
	if digitPos >= len(data) || data[digitPos] < '0' || data[digitPos] > '9' {
		t.Fatalf("expected a digit at position %d, found %q", digitPos, data[digitPos])
	}
	data[digitPos] = '0' + (data[digitPos]-'0'+1)%10
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing corrupted file: %v", err)
	}
}

func TestReadFITSWarnsOnCorruptedDatasum(t *testing.T) {
	d := newTestDataset()
	path := filepath.Join(t.TempDir(), "corrupt_datasum.fits")
	if err := WriteFITS(path, d); err != nil {
		t.Fatalf("WriteFITS: %v", err)
	}
	corruptFirstDatasum(t, path)

	got, err := ReadFITS(path)
	if err != nil {
		t.Fatalf("ReadFITS should succeed on a corrupted DATASUM, got error: %v", err)
	}
	found := false
	for _, w := range got.ReadWarnings {
		if strings.Contains(w, "DATASUM verification failed") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected a DATASUM-mismatch warning, got: %v", got.ReadWarnings)
	}
}
