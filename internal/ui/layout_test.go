package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func threeChildren(w, h float32) []LayoutChild {
	c := LayoutChild{Size: mgl32.Vec2{w, h}}
	return []LayoutChild{c, c, c}
}

func xs(rects []Rect) []float32 {
	out := make([]float32, len(rects))
	for i, r := range rects {
		out[i] = r.X
	}
	return out
}

func TestRowJustify(t *testing.T) {
	cases := []struct {
		name    string
		justify JustifyContent
		want    []float32
	}{
		{"start", JustifyStart, []float32{0, 50, 100}},
		{"center", JustifyCenter, []float32{75, 125, 175}},
		{"end", JustifyEnd, []float32{150, 200, 250}},
		{"space-between", JustifySpaceBetween, []float32{0, 125, 250}},
		{"space-around", JustifySpaceAround, []float32{25, 125, 225}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rects, content := RowLayout.Arrange(LayoutInput{
				Size:     mgl32.Vec2{300, 50},
				Justify:  tc.justify,
				Children: threeChildren(50, 50),
			})
			if content != (mgl32.Vec2{300, 50}) {
				t.Errorf("content = %v", content)
			}
			got := xs(rects)
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("x = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestRowSpacingAndPadding(t *testing.T) {
	rects, content := RowLayout.Arrange(LayoutInput{
		Size:     mgl32.Vec2{0, 0},
		Padding:  5,
		Spacing:  10,
		Children: threeChildren(20, 30),
	})
	if content != (mgl32.Vec2{90, 40}) {
		t.Errorf("content = %v, want [90 40]", content)
	}
	want := []float32{5, 35, 65}
	for i, r := range rects {
		if r.X != want[i] || r.Y != 5 {
			t.Errorf("child %d at (%v,%v), want (%v,5)", i, r.X, r.Y, want[i])
		}
	}
}

func TestRowCenterDoesNotCountSpacingAsFreeSpace(t *testing.T) {
	rects, _ := RowLayout.Arrange(LayoutInput{
		Spacing:  10,
		Justify:  JustifyCenter,
		Children: threeChildren(20, 20),
	})
	if rects[0].X != 0 {
		t.Errorf("tight-packed row should start at 0, got %v", rects[0].X)
	}
}

func TestRowEndKeepsLastChildInside(t *testing.T) {
	rects, _ := RowLayout.Arrange(LayoutInput{
		Size:     mgl32.Vec2{200, 20},
		Spacing:  10,
		Justify:  JustifyEnd,
		Children: threeChildren(20, 20),
	})
	if got := xs(rects); got[0] != 120 || got[2] != 180 {
		t.Errorf("x = %v, want [120 150 180]", got)
	}
}

func TestColumnCrossAlignment(t *testing.T) {
	children := []LayoutChild{
		{Size: mgl32.Vec2{20, 10}},
		{Size: mgl32.Vec2{60, 10}},
	}
	for _, tc := range []struct {
		align Alignment
		want  float32
	}{
		{AlignStart, 0}, {AlignCenter, 40}, {AlignEnd, 80},
	} {
		rects, content := ColumnLayout.Arrange(LayoutInput{
			Size:     mgl32.Vec2{100, 10},
			Align:    tc.align,
			Children: children,
		})
		if content != (mgl32.Vec2{100, 20}) {
			t.Errorf("content = %v, want [100 20]", content)
		}
		if rects[0].X != tc.want || rects[1].Y != 10 {
			t.Errorf("align %d: first x=%v second y=%v", tc.align, rects[0].X, rects[1].Y)
		}
	}
}

func TestAnchorLayoutUsesPaddedArea(t *testing.T) {
	rects, content := AnchorLayout.Arrange(LayoutInput{
		Size:    mgl32.Vec2{100, 100},
		Padding: 10,
		Children: []LayoutChild{
			{Size: mgl32.Vec2{20, 20}, Anchor: TopLeft},
			{Size: mgl32.Vec2{20, 20}, Anchor: BottomRight},
		},
	})
	if content != (mgl32.Vec2{100, 100}) {
		t.Errorf("content = %v", content)
	}
	if rects[0].Min() != (mgl32.Vec2{10, 10}) {
		t.Errorf("top-left child at %v", rects[0].Min())
	}
	if rects[1].Min() != (mgl32.Vec2{70, 70}) {
		t.Errorf("bottom-right child at %v", rects[1].Min())
	}
}

func TestAnchorLayoutGrowsForPadding(t *testing.T) {
	_, content := AnchorLayout.Arrange(LayoutInput{
		Size:     mgl32.Vec2{50, 50},
		Padding:  5,
		Children: []LayoutChild{{Size: mgl32.Vec2{50, 10}}},
	})
	if content != (mgl32.Vec2{60, 50}) {
		t.Errorf("content = %v, want [60 50]", content)
	}
}

func BenchmarkLayout(b *testing.B) {
	children := make([]LayoutChild, 64)
	for i := range children {
		children[i] = LayoutChild{Size: mgl32.Vec2{float32(10 + i%7), 20}}
	}
	in := LayoutInput{
		Size:     mgl32.Vec2{2000, 40},
		Padding:  4,
		Spacing:  2,
		Justify:  JustifySpaceAround,
		Align:    AlignCenter,
		Children: children,
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		RowLayout.Arrange(in)
	}
}
