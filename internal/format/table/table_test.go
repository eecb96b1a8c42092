package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Partition", "FS", "Label"},
		{"sda1", "ext4", "Salix_14"},
		{"nvme0n1p5", "xfs", "Arch_Linux"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight, AlignLeft})
	want := []string{
		"Partition    FS  Label",
		"sda1       ext4  Salix_14",
		"nvme0n1p5   xfs  Arch_Linux",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected layout:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatIgnoresANSIWidth(t *testing.T) {
	rows := [][]string{
		{"\x1b[1msda1\x1b[0m", "x"},
		{"sda10", "y"},
	}
	got := Format(rows, nil)
	if got[0] != "\x1b[1msda1\x1b[0m   x" {
		t.Fatalf("styled cell padded by raw length: %q", got[0])
	}
	if got[1] != "sda10  y" {
		t.Fatalf("unexpected plain row %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatal("expected nil for no rows")
	}
	if w := Widths([][]string{{"ab"}, {"abc", "d"}}); !reflect.DeepEqual(w, []int{3, 1}) {
		t.Fatalf("unexpected widths %v", w)
	}
}
