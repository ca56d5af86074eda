package pkg

import (
	"testing"
	"time"

	"github.com/simp-lee/waystar/internal/domain"
)

func intPtr(v int) *int { return &v }

type listQuery struct {
	domain.PageQuery
	Username string          `json:"username,omitempty"`
	Status   *int            `json:"status,omitempty"`
	IDs      []int64         `json:"ids,omitempty"`
	Since    domain.DateTime `json:"since,omitempty"`
	Limit    int             `json:"limit"`
	Hidden   string          `json:"-"`
	internal string
}

func TestQueryValues(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  map[string][]string
	}{
		{
			name:  "nil input",
			input: nil,
			want:  map[string][]string{},
		},
		{
			name:  "zero values with omitempty are skipped",
			input: listQuery{},
			want:  map[string][]string{"limit": {"0"}},
		},
		{
			name: "embedded page and pointer zero kept",
			input: &listQuery{
				PageQuery: domain.PageQuery{PageNum: 2, PageSize: 20},
				Status:    intPtr(0),
				Limit:     5,
				Hidden:    "x",
				internal:  "y",
			},
			want: map[string][]string{
				"pageNum":  {"2"},
				"pageSize": {"20"},
				"status":   {"0"},
				"limit":    {"5"},
			},
		},
		{
			name: "slices repeat and times use server layout",
			input: listQuery{
				Username: "bob",
				IDs:      []int64{3, 4},
				Since:    domain.DateTime{Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)},
				Limit:    1,
			},
			want: map[string][]string{
				"username": {"bob"},
				"ids":      {"3", "4"},
				"since":    {"2025-01-02 03:04:05"},
				"limit":    {"1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QueryValues(tt.input)
			if err != nil {
				t.Fatalf("QueryValues() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("QueryValues() = %v; want %v", got, tt.want)
			}
			for k, want := range tt.want {
				vals := got[k]
				if len(vals) != len(want) {
					t.Errorf("%s = %v; want %v", k, vals, want)
					continue
				}
				for i := range want {
					if vals[i] != want[i] {
						t.Errorf("%s[%d] = %q; want %q", k, i, vals[i], want[i])
					}
				}
			}
		})
	}
}

func TestQueryValues_Unsupported(t *testing.T) {
	if _, err := QueryValues("plain"); err == nil {
		t.Error("expected error for non-struct input")
	}
	type bad struct {
		M map[string]string `json:"m"`
	}
	if _, err := QueryValues(bad{M: map[string]string{"a": "b"}}); err == nil {
		t.Error("expected error for map field")
	}
}
