package utils

import (
	"testing"
)

func TestMask(t *testing.T) {
	if Mask(0) != 0 {
		t.Errorf("Mask(0) != 0")
	}
	if Mask(1) != 1 {
		t.Errorf("Mask(1) != 1")
	}
	if Mask(18) != 0x3FFFF {
		t.Errorf("Mask(18) != 0x3FFFF. Got 0x%x", Mask(18))
	}
	if Mask(38) != 0x3FFFFFFFFF {
		t.Errorf("Mask(38) != 0x3FFFFFFFFF. Got 0x%x", Mask(38))
	}
	if Mask(64) != ^uint64(0) {
		t.Errorf("Mask(64) != all ones")
	}
}

func TestSignExtend(t *testing.T) {
	if SignExtend(0x80000, 20) != -524288 {
		t.Errorf("0x80000 as S20 != -2^19. Got %d", SignExtend(0x80000, 20))
	}
	if SignExtend(0x7FFFF, 20) != 524287 {
		t.Errorf("0x7FFFF as S20 != 2^19-1. Got %d", SignExtend(0x7FFFF, 20))
	}
	if SignExtend(0xFFFFF, 20) != -1 {
		t.Errorf("0xFFFFF as S20 != -1. Got %d", SignExtend(0xFFFFF, 20))
	}
	if SignExtend(0x3FFFF, 18) != -1 {
		t.Errorf("0x3FFFF as S18 != -1. Got %d", SignExtend(0x3FFFF, 18))
	}
	if SignExtend(5, 18) != 5 {
		t.Errorf("positive value mangled. Got %d", SignExtend(5, 18))
	}
}

func TestSignBit(t *testing.T) {
	if !SignBit(0x80000, 20) {
		t.Errorf("bit 19 of 0x80000 not seen")
	}
	if SignBit(0x7FFFF, 20) {
		t.Errorf("0x7FFFF claimed negative")
	}
	if !SignBit(0x20000, 18) {
		t.Errorf("bit 17 of 0x20000 not seen")
	}
}
