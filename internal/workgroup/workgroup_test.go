package workgroup

import "testing"

func TestBestLocalDimension(t *testing.T) {
	tests := []struct {
		max  int
		want int
	}{
		{max: 0, want: 1},
		{max: 1, want: 1},
		{max: 4, want: 1},
		{max: 5, want: 2},
		{max: 16, want: 2},
		{max: 64, want: 4},
		{max: 256, want: 8},
		{max: 1024, want: 16},
		{max: 1025, want: 32},
	}
	for _, tt := range tests {
		if got := BestLocalDimension(tt.max); got != tt.want {
			t.Errorf("BestLocalDimension(%d) = %d, want %d", tt.max, got, tt.want)
		}
	}
}

func TestBestLocalDimensionFitsLimit(t *testing.T) {
	for max := 1; max <= 4096; max++ {
		edge := BestLocalDimension(max)
		if edge < 1 {
			t.Fatalf("BestLocalDimension(%d) = %d, want >= 1", max, edge)
		}
		if edge > 1 && edge*edge >= max {
			t.Fatalf("BestLocalDimension(%d) = %d, tile %d does not fit", max, edge, edge*edge)
		}
	}
}

func TestGlobalShapeCoversGrid(t *testing.T) {
	t.Parallel()
	for _, local := range []int{1, 2, 4, 8, 16} {
		for width := 1; width <= 40; width++ {
			for height := 1; height <= 40; height += 3 {
				gx, gy := GlobalShape(local, width, height)
				if gx%local != 0 || gy%local != 0 {
					t.Fatalf("GlobalShape(%d, %d, %d) = (%d, %d), not a multiple of local", local, width, height, gx, gy)
				}
				if gx < width || gy < height {
					t.Fatalf("GlobalShape(%d, %d, %d) = (%d, %d), smaller than grid", local, width, height, gx, gy)
				}
				if gx-width >= local || gy-height >= local {
					t.Fatalf("GlobalShape(%d, %d, %d) = (%d, %d), padded by a whole tile", local, width, height, gx, gy)
				}
			}
		}
	}
}

func TestGlobalShapeZeroLocal(t *testing.T) {
	gx, gy := GlobalShape(0, 30, 20)
	if gx != 30 || gy != 20 {
		t.Errorf("GlobalShape(0, 30, 20) = (%d, %d), want (30, 20)", gx, gy)
	}
}

func TestPlan(t *testing.T) {
	g := Plan(256, 30, 20)
	if g.Local != 8 || g.GlobalX != 32 || g.GlobalY != 24 {
		t.Fatalf("Plan(256, 30, 20) = %+v, want {8 32 24}", g)
	}
	if gx, gy := g.Groups(); gx != 4 || gy != 3 {
		t.Errorf("Groups() = (%d, %d), want (4, 3)", gx, gy)
	}
	if l := g.LocalShape(); l[0] != 8 || l[1] != 8 {
		t.Errorf("LocalShape() = %v, want [8 8]", l)
	}
	if gs := g.GlobalShape(); gs[0] != 32 || gs[1] != 24 {
		t.Errorf("GlobalShape() = %v, want [32 24]", gs)
	}
}
