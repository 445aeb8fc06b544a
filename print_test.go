package sitepdf_test

import (
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"96px", 1},
		{"48", 0.5},
		{"1in", 1},
		{"2.54cm", 1},
		{"25.4mm", 1},
		{" 0.5 IN ", 0.5},
		{"0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := sitepdf.ParseLength(tt.in)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "px", "ten", "-1cm", "1em"} {
			_, err := sitepdf.ParseLength(in)
			assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err), in)
		}
	})
}

func TestPaperSize(t *testing.T) {
	t.Parallel()

	w, h, err := sitepdf.PaperSize("")
	require.NoError(t, err)
	assert.InDelta(t, 8.27, w, 1e-9)
	assert.InDelta(t, 11.7, h, 1e-9)

	w, h, err = sitepdf.PaperSize(" Ledger ")
	require.NoError(t, err)
	assert.InDelta(t, 17.0, w, 1e-9)
	assert.InDelta(t, 11.0, h, 1e-9)

	_, _, err = sitepdf.PaperSize("B5")
	assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
}

func TestPrintOptions_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts defaults", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, sitepdf.PrintOptions{}.Validate())
	})

	t.Run("accepts units", func(t *testing.T) {
		t.Parallel()

		opts := sitepdf.PrintOptions{
			Format:  "letter",
			Margins: sitepdf.Margins{Top: "1cm", Right: "0.5in", Bottom: "20px", Left: "10mm"},
		}

		assert.NoError(t, opts.Validate())
	})

	t.Run("rejects bad margin", func(t *testing.T) {
		t.Parallel()

		err := sitepdf.PrintOptions{Margins: sitepdf.Margins{Top: "1xx"}}.Validate()

		require.Error(t, err)
		assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
		assert.Contains(t, sitepdf.ErrorMessage(err), "top margin")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		err := sitepdf.PrintOptions{Format: "foolscap"}.Validate()

		assert.Equal(t, sitepdf.EINVALID, sitepdf.ErrorCode(err))
	})
}
