package mock

import "github.com/fwojciec/sitepdf"

var _ sitepdf.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of sitepdf.PageParser.
type PageParser struct {
	ExtractFn  func(snap *sitepdf.Snapshot, opts sitepdf.ExtractOptions, ids sitepdf.IDAllocator) (*sitepdf.PageFragment, error)
	NextLinkFn func(snap *sitepdf.Snapshot, selector string) (string, error)
	KeywordsFn func(snap *sitepdf.Snapshot) ([]string, error)
}

func (p *PageParser) Extract(snap *sitepdf.Snapshot, opts sitepdf.ExtractOptions, ids sitepdf.IDAllocator) (*sitepdf.PageFragment, error) {
	return p.ExtractFn(snap, opts, ids)
}

func (p *PageParser) NextLink(snap *sitepdf.Snapshot, selector string) (string, error) {
	return p.NextLinkFn(snap, selector)
}

func (p *PageParser) Keywords(snap *sitepdf.Snapshot) ([]string, error) {
	return p.KeywordsFn(snap)
}
