package station

import "context"

// StickerStation is the print-sticker hook. Sticker rendering happens
// outside this workflow core; the station exists so the router can hand
// every assignment title to a workstation.
type StickerStation struct {
	printer func(imeiNo string) error
}

// NewStickerStation constructs the station. The printer callback may be
// nil, making printing a no-op.
func NewStickerStation(printer func(imeiNo string) error) *StickerStation {
	return &StickerStation{printer: printer}
}

// WorkTitle returns the assignment title this station serves.
func (s *StickerStation) WorkTitle() string {
	return "Print Sticker"
}

// Refresh is a no-op; the sticker station holds no worklist.
func (s *StickerStation) Refresh(ctx context.Context) error {
	_ = ctx
	return nil
}

// Print invokes the external sticker renderer for a unit.
func (s *StickerStation) Print(imeiNo string) error {
	if s.printer == nil {
		return nil
	}
	return s.printer(imeiNo)
}
