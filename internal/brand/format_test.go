package brand

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatContext(t *testing.T) {
	tests := []struct {
		name   string
		manual Manual
		want   string
	}{
		{
			name:   "empty manual",
			manual: Manual{},
			want:   "",
		},
		{
			name:   "name only",
			manual: Manual{Name: "Northwind"},
			want:   "Brand name: Northwind",
		},
		{
			name: "all fields in fixed order",
			manual: Manual{
				Name:           "Northwind",
				Product:        "Sparkling water",
				Tone:           "playful",
				TargetAudience: "young adults",
				Restrictions:   "no health claims",
				Markdown:       "# Manual",
			},
			want: "Brand name: Northwind\n" +
				"Product: Sparkling water\n" +
				"Tone: playful\n" +
				"Target audience: young adults\n" +
				"Restrictions: no health claims\n" +
				"\nBrand manual:\n# Manual",
		},
		{
			name: "empty fields are skipped without blank lines",
			manual: Manual{
				Name:         "Northwind",
				Restrictions: "no health claims",
			},
			want: "Brand name: Northwind\nRestrictions: no health claims",
		},
		{
			name:   "markdown only",
			manual: Manual{Markdown: "# Manual"},
			want:   "\nBrand manual:\n# Manual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatContext(tt.manual))
		})
	}
}

func TestFormatContextDeterministic(t *testing.T) {
	m := Manual{Name: "Northwind", Product: "Sparkling water", Markdown: "# Manual"}
	require.Equal(t, FormatContext(m), FormatContext(m))
}
