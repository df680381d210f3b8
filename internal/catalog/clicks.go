package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const clicksKey = "affiliateClicks"

// TrackAffiliateClick appends a click record to the persisted log. The log is
// append-only: nothing prunes or deduplicates it, and the product does not
// have to exist.
func (s *MemStore) TrackAffiliateClick(ctx context.Context, productID int) error {
	s.clickMu.Lock()
	defer s.clickMu.Unlock()

	var clicks []AffiliateClick
	if _, err := s.state.Get(clicksKey, &clicks); err != nil {
		return err
	}

	clicks = append(clicks, AffiliateClick{
		ID:        "c_" + uuid.NewString(),
		ProductID: productID,
		Timestamp: time.Now().UTC(),
	})
	return s.state.Set(clicksKey, clicks)
}

func (s *MemStore) Clicks(ctx context.Context) ([]AffiliateClick, error) {
	s.clickMu.Lock()
	defer s.clickMu.Unlock()

	clicks := []AffiliateClick{}
	if _, err := s.state.Get(clicksKey, &clicks); err != nil {
		return nil, err
	}
	return clicks, nil
}
