package mock

import "github.com/fwojciec/htmlmd"

var _ htmlmd.Converter = (*Converter)(nil)

// Converter is a mock implementation of htmlmd.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
