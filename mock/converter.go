package mock

import "github.com/fwojciec/sitepdf"

var _ sitepdf.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitepdf.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
