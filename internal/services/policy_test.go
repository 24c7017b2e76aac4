package services

import (
	"math"
	"testing"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{name: "defaults", page: 0, perPage: 0, wantPage: 1, wantPerPage: 10, wantOffset: 0},
		{name: "second page", page: 2, perPage: 5, wantPage: 2, wantPerPage: 5, wantOffset: 5},
		{name: "per page capped", page: 1, perPage: 1000, wantPage: 1, wantPerPage: MaxPerPage, wantOffset: 0},
		{name: "huge page clamped", page: math.MaxInt, perPage: MaxPerPage, wantPage: MaxPage, wantPerPage: MaxPerPage, wantOffset: (MaxPage - 1) * MaxPerPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage, limit, offset := pageBounds(tt.page, tt.perPage, 10)
			if page != tt.wantPage || perPage != tt.wantPerPage || limit != tt.wantPerPage {
				t.Errorf("pageBounds() page=%d per_page=%d limit=%d", page, perPage, limit)
			}
			if offset != tt.wantOffset || offset < 0 {
				t.Errorf("offset = %d, want %d", offset, tt.wantOffset)
			}
		})
	}
}
