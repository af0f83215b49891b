package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSliceToBytes(t *testing.T) {
	data := []uint16{2, 1, 0, 3}
	b := SliceToBytes(data)
	if len(b) != 8 {
		t.Fatalf("len = %d, want 8", len(b))
	}
	for i, want := range data {
		if got := binary.LittleEndian.Uint16(b[i*2:]); got != want {
			t.Errorf("element %d = %d, want %d", i, got, want)
		}
	}
}

func TestSliceToBytesEmpty(t *testing.T) {
	if b := SliceToBytes([]float32(nil)); b != nil {
		t.Errorf("SliceToBytes(nil) = %v, want nil", b)
	}
	if b := SliceToBytes([]float32{}); b != nil {
		t.Errorf("SliceToBytes(empty) = %v, want nil", b)
	}
}

func TestStructToBytes(t *testing.T) {
	type vertex struct {
		Position [3]float32
		Color    [3]float32
	}
	v := vertex{Position: [3]float32{1, 2, 3}, Color: [3]float32{0.5, 0, 1}}
	b := StructToBytes(&v)
	if len(b) != 24 {
		t.Fatalf("len = %d, want 24", len(b))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b)); got != 1 {
		t.Errorf("first float = %v, want 1", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(b[12:])); got != 0.5 {
		t.Errorf("color red = %v, want 0.5", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 3); got != 7 {
		t.Errorf("Coalesce = %d, want 7", got)
	}
	if got := Coalesce("", "a"); got != "a" {
		t.Errorf("Coalesce = %q, want a", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce of zeros = %d, want 0", got)
	}
}
