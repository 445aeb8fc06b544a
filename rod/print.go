package rod

import (
	"strings"

	"github.com/fwojciec/sitepdf"
	"github.com/go-rod/rod/lib/proto"
)

// PrintRequest translates print options into a Chrome print command.
// An empty paper format means A4; empty margins keep Chrome's defaults.
func PrintRequest(opts sitepdf.PrintOptions) (*proto.PagePrintToPDF, error) {
	width, height, err := sitepdf.PaperSize(opts.Format)
	if err != nil {
		return nil, err
	}

	req := &proto.PagePrintToPDF{
		PaperWidth:          &width,
		PaperHeight:         &height,
		PrintBackground:     opts.PrintBackground,
		DisplayHeaderFooter: opts.HeaderTemplate != "" || opts.FooterTemplate != "",
		HeaderTemplate:      opts.HeaderTemplate,
		FooterTemplate:      opts.FooterTemplate,
	}

	margins := []struct {
		value string
		dst   **float64
	}{
		{opts.Margins.Top, &req.MarginTop},
		{opts.Margins.Right, &req.MarginRight},
		{opts.Margins.Bottom, &req.MarginBottom},
		{opts.Margins.Left, &req.MarginLeft},
	}
	for _, m := range margins {
		if strings.TrimSpace(m.value) == "" {
			continue
		}
		inches, err := sitepdf.ParseLength(m.value)
		if err != nil {
			return nil, err
		}
		*m.dst = &inches
	}
	return req, nil
}
