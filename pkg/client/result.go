package client

import "fmt"

// Handle dispatches on the result variant. Exactly one callback runs; a
// result carrying an unknown strategy is an error.
func (r ExportResult) Handle(single func(SingleResult) error, chunked func(ChunkedResult) error) error {
	if payload, ok := r.Single(); ok {
		if single == nil {
			return fmt.Errorf("no handler for single-file result")
		}
		return single(payload)
	}
	if payload, ok := r.Chunked(); ok {
		if chunked == nil {
			return fmt.Errorf("no handler for multi-file result")
		}
		return chunked(payload)
	}
	return fmt.Errorf("export result has no payload")
}
