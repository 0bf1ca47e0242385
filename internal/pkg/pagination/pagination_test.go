package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name     string
		in       Params
		wantPage int
		wantSize int
		wantSort string
	}{
		{"zero values", Params{}, 1, 10, ""},
		{"negative page", Params{Page: -3, Size: 20}, 1, 20, ""},
		{"zero size", Params{Page: 2, Size: 0}, 2, 10, ""},
		{"sort key lowered and trimmed", Params{Page: 1, Size: 5, SortBy: "  Name "}, 1, 5, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage || got.Size != tt.wantSize || got.SortBy != tt.wantSort {
				t.Fatalf("Normalize() = %+v, want page=%d size=%d sortBy=%q", got, tt.wantPage, tt.wantSize, tt.wantSort)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Size: 10}.Normalize()
	if got := p.Offset(); got != 20 {
		t.Fatalf("Offset() = %d, want 20", got)
	}
}

func TestOrderClause(t *testing.T) {
	columns := map[string]string{"name": "name", "borrowdate": "borrow_date"}

	tests := []struct {
		name string
		p    Params
		want string
	}{
		{"known key ascending", Params{SortBy: "name", Ascending: true}, "name ASC"},
		{"known key descending", Params{SortBy: "borrowdate", Ascending: false}, "borrow_date DESC"},
		{"unknown key falls back to default", Params{SortBy: "evil; DROP TABLE", Ascending: true}, "borrow_date DESC"},
		{"empty key falls back to default", Params{}, "borrow_date DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Normalize().OrderClause(columns, "borrow_date", false); got != tt.want {
				t.Fatalf("OrderClause() = %q, want %q", got, tt.want)
			}
		})
	}
}
