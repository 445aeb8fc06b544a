package sitepdf_test

import (
	"testing"

	"github.com/fwojciec/sitepdf"
	"github.com/stretchr/testify/assert"
)

func TestImage_DataURI(t *testing.T) {
	t.Parallel()

	img := &sitepdf.Image{ContentType: "image/png", Data: []byte("png")}

	assert.Equal(t, "data:image/png;base64,cG5n", img.DataURI())
}

func TestStopReason_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cycle", sitepdf.StopCycle.String())
	assert.Equal(t, "no-next-link", sitepdf.StopNoNextLink.String())
	assert.Equal(t, "print-target", sitepdf.StopPrintTarget.String())
	assert.Equal(t, "max-pages", sitepdf.StopMaxPages.String())
}
