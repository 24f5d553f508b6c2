package dataset

import (
	"context"

	"qaeval/pkg/core"
)

// SliceDataset serves in-memory records, mainly for retry runs and
// tests.
type SliceDataset struct {
	NameHint string
	Items    []core.QAInput
}

func NewSliceDataset(records []core.QAInput, name string) *SliceDataset {
	if name == "" {
		name = "retry"
	}
	return &SliceDataset{NameHint: name, Items: records}
}

func (d *SliceDataset) Name() string {
	return d.NameHint
}

func (d *SliceDataset) Len(_ context.Context) (int, error) {
	return len(d.Items), nil
}

func (d *SliceDataset) Records(ctx context.Context) (<-chan core.QAInput, <-chan error) {
	recordCh := make(chan core.QAInput)
	errCh := make(chan error, 1)
	go func() {
		defer close(recordCh)
		defer close(errCh)
		for _, record := range d.Items {
			select {
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			case recordCh <- record:
			}
		}
	}()
	return recordCh, errCh
}
