package httpkit

import "testing"

func TestNewListMeta(t *testing.T) {
	tests := []struct {
		name           string
		total, page    int
		limit          int
		wantTotalPages int
	}{
		{"exact division", 20, 1, 10, 2},
		{"partial last page", 21, 1, 10, 3},
		{"empty result", 0, 1, 10, 0},
		{"single item", 1, 1, 10, 1},
		{"zero limit", 5, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewListMeta(tt.total, tt.page, tt.limit)
			if meta.TotalPages != tt.wantTotalPages {
				t.Fatalf("NewListMeta(%d, %d, %d).TotalPages = %d, want %d",
					tt.total, tt.page, tt.limit, meta.TotalPages, tt.wantTotalPages)
			}
			if meta.Total != tt.total || meta.Page != tt.page || meta.Limit != tt.limit {
				t.Fatalf("meta fields not carried through: %+v", meta)
			}
		})
	}
}
