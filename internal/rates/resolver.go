package rates

import "github.com/Jhonaiker2309/supermarket-administration/pkg/model"

// Resolve selects the "current" exchange rate for price display. If selected
// names a rate still present in the collection, that rate wins; otherwise the
// most recently dated rate does, ties broken last-inserted-wins. An empty
// collection resolves to nil.
//
// The caller re-resolves whenever collection membership changes: a deleted
// selection falls back to the newest remaining rate as an explicit step, never
// as a silently retained stale pointer. Pure function over its inputs.
func Resolve(rs []model.ExchangeRate, selected model.ID) *model.ExchangeRate {
	if selected != "" {
		for i := range rs {
			if rs[i].ID == selected {
				r := rs[i]
				return &r
			}
		}
	}

	var best *model.ExchangeRate
	for i := range rs {
		if best == nil || !rs[i].Date.Before(best.Date) {
			best = &rs[i]
		}
	}
	if best == nil {
		return nil
	}
	r := *best
	return &r
}
