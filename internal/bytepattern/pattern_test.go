package bytepattern_test

import (
	"testing"

	"github.com/binpatch/orw/internal/bytepattern"
)

func TestParseLiteral(t *testing.T) {
	p := bytepattern.Parse("48 8B 05")
	if len(p) != 3 {
		t.Fatalf("len = %d, want 3", len(p))
	}

	want := []byte{0x48, 0x8B, 0x05}
	for i, b := range want {
		if p[i].Wildcard || p[i].Literal != b {
			t.Fatalf("token %d = %+v, want literal %#x", i, p[i], b)
		}
	}
}

func TestParseWildcards(t *testing.T) {
	p := bytepattern.Parse("48 8B 05 ?? ?? ?? ??")
	if len(p) != 7 {
		t.Fatalf("len = %d, want 7", len(p))
	}

	for i := 3; i < 7; i++ {
		if !p[i].Wildcard {
			t.Fatalf("token %d should be a wildcard", i)
		}
	}

	if p.HasWildcard() != true {
		t.Fatal("HasWildcard should be true")
	}
}

func TestParseIgnoresJunk(t *testing.T) {
	p := bytepattern.Parse("  de,ad;BE:EF  ")
	if len(p) != 4 {
		t.Fatalf("len = %d, want 4", len(p))
	}
}

func TestParseOddTrailingNibbleDiscarded(t *testing.T) {
	p := bytepattern.Parse("de a")
	if len(p) != 1 {
		t.Fatalf("len = %d, want 1 (trailing 'a' discarded)", len(p))
	}
}

func TestParseEmpty(t *testing.T) {
	p := bytepattern.Parse("   ")
	if len(p) != 0 {
		t.Fatalf("len = %d, want 0", len(p))
	}
}

func TestBytes(t *testing.T) {
	p := bytepattern.Parse("deadbeef")
	got := p.Bytes()
	want := []byte{0xde, 0xad, 0xbe, 0xef}

	if len(got) != len(want) {
		t.Fatalf("Bytes() len = %d", len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Bytes()[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}
