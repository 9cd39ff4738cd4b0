// SPDX-License-Identifier: GPL-2.0-or-later

package pack

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

// buildPak writes a pack with the given files, in order.
func buildPak(files ...[2]string) []byte {
	var body bytes.Buffer
	var dir bytes.Buffer
	for _, f := range files {
		var n [56]byte
		copy(n[:], f[0])
		dir.Write(n[:])
		binary.Write(&dir, binary.LittleEndian, [2]int32{int32(12 + body.Len()), int32(len(f[1]))})
		body.WriteString(f[1])
	}
	var b bytes.Buffer
	b.WriteString("PACK")
	binary.Write(&b, binary.LittleEndian, [2]int32{int32(12 + body.Len()), int32(dir.Len())})
	b.Write(body.Bytes())
	b.Write(dir.Bytes())
	return b.Bytes()
}

func TestPak(t *testing.T) {
	data := buildPak(
		[2]string{"doc1.txt", "this is the first doc 2. version\r\n"},
		[2]string{"testdir/doc4.txt", "this is the fourth doc 2. version"},
		[2]string{"Maps/C1A0.bsp", "bsp"},
	)
	p, err := New("pak1.pak", bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("could not open pak1.pak: %v", err)
	}
	if p.String() != "pak1.pak" {
		t.Errorf("pack String error: want %v got %v", "pak1.pak", p.String())
	}
	f1, err := p.Open("doc1.txt")
	if err != nil {
		t.Fatalf("Got no file 'doc1.txt: %v", err)
	}
	b1, err := io.ReadAll(f1)
	if err != nil {
		t.Fatalf("Could not read f1: %v", err)
	}
	if string(b1) != "this is the first doc 2. version\r\n" {
		t.Errorf("f1 contents is '%v'", b1)
	}
	f5, err := p.Open("/testdir/doc4.txt")
	if err != nil {
		t.Fatalf("Got no file 'testdir/doc4.txt: %v", err)
	}
	b5, _ := io.ReadAll(f5)
	if string(b5) != `this is the fourth doc 2. version` {
		t.Errorf("f5 contents is '%v'", string(b5))
	}
	if _, err := p.Open("maps\\c1a0.bsp"); err != nil {
		t.Errorf("Open is not case insensitive: %v", err)
	}
	if _, err := p.Open("doc4.txt"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open(doc4.txt) err = %v want ErrNotExist", err)
	}
	want := []string{"doc1.txt", "maps/c1a0.bsp", "testdir/doc4.txt"}
	got := p.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names() = %v want %v", got, want)
		}
	}
}

func TestPakFromDisk(t *testing.T) {
	name := filepath.Join(t.TempDir(), "pak0.pak")
	if err := os.WriteFile(name, buildPak([2]string{"a.txt", "a"}), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := NewPackReader(name)
	if err != nil {
		t.Fatalf("NewPackReader(%s): %v", name, err)
	}
	defer p.Close()
	if _, err := p.Open("a.txt"); err != nil {
		t.Errorf("Open(a.txt): %v", err)
	}
}

func TestNotAPak(t *testing.T) {
	data := []byte("WAD3\x00\x00\x00\x00\x00\x00\x00\x00")
	if _, err := New("x", bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrNotPack) {
		t.Errorf("New(WAD3) err = %v want ErrNotPack", err)
	}
	data = buildPak([2]string{"a.txt", "a"})
	if _, err := New("x", bytes.NewReader(data), int64(len(data)-10)); err == nil {
		t.Errorf("New with short size succeeded")
	}
}
