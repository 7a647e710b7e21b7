package barcode

import "errors"

var (
	ErrNilRecord       = errors.New("barcode: nil record")
	ErrMissingBatchLot = errors.New("barcode: batch and lot numbers are required")
)
