// Package aggregator reduces filtered ride records into the fixed summary
// views rendered by the dashboard.
package aggregator

import (
	"cmp"
	"slices"

	"bikeshare-dashboard/models"
)

// Row is one (group key, ride type, count) entry of a view.
type Row[K cmp.Ordered] struct {
	GroupKey K               `json:"group_key"`
	RideType models.RideType `json:"ride_type"`
	Count    int64           `json:"count"`
}

// AggregatedView is the long-form output of AggregateBy: three rows per key,
// keys ascending, ride types in models.RideTypes order.
type AggregatedView[K cmp.Ordered] struct {
	Rows []Row[K] `json:"rows"`
}

type sums struct {
	casual, registered, total int64
}

// AggregateBy partitions records by keyFn and emits casual, registered and
// total sums for every distinct key. Empty input yields an empty view.
func AggregateBy[K cmp.Ordered](records []models.RideRecord, keyFn func(models.RideRecord) K) AggregatedView[K] {
	groups := make(map[K]*sums)
	for _, r := range records {
		k := keyFn(r)
		s, ok := groups[k]
		if !ok {
			s = &sums{}
			groups[k] = s
		}
		s.casual += int64(r.Casual)
		s.registered += int64(r.Registered)
		s.total += int64(r.Total)
	}

	keys := make([]K, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rows := make([]Row[K], 0, len(keys)*len(models.RideTypes))
	for _, k := range keys {
		s := groups[k]
		rows = append(rows,
			Row[K]{GroupKey: k, RideType: models.RideTypeCasual, Count: s.casual},
			Row[K]{GroupKey: k, RideType: models.RideTypeRegistered, Count: s.registered},
			Row[K]{GroupKey: k, RideType: models.RideTypeTotal, Count: s.total},
		)
	}
	return AggregatedView[K]{Rows: rows}
}

// Keys returns the distinct group keys in view order.
func (v AggregatedView[K]) Keys() []K {
	var keys []K
	for i, row := range v.Rows {
		if i == 0 || row.GroupKey != v.Rows[i-1].GroupKey {
			keys = append(keys, row.GroupKey)
		}
	}
	return keys
}

// Sum adds up the counts of one ride type across all keys.
func (v AggregatedView[K]) Sum(rt models.RideType) int64 {
	var total int64
	for _, row := range v.Rows {
		if row.RideType == rt {
			total += row.Count
		}
	}
	return total
}

// Series is the wide form of a view: one slice per ride type aligned with Keys.
type Series[K cmp.Ordered] struct {
	Keys       []K
	Casual     []int64
	Registered []int64
	Total      []int64
}

// Pivot reshapes the long rows into aligned per-ride-type series.
func (v AggregatedView[K]) Pivot() Series[K] {
	var s Series[K]
	for _, row := range v.Rows {
		switch row.RideType {
		case models.RideTypeCasual:
			s.Keys = append(s.Keys, row.GroupKey)
			s.Casual = append(s.Casual, row.Count)
		case models.RideTypeRegistered:
			s.Registered = append(s.Registered, row.Count)
		case models.RideTypeTotal:
			s.Total = append(s.Total, row.Count)
		}
	}
	return s
}

// ByType returns the series for rt.
func (s Series[K]) ByType(rt models.RideType) []int64 {
	switch rt {
	case models.RideTypeCasual:
		return s.Casual
	case models.RideTypeRegistered:
		return s.Registered
	default:
		return s.Total
	}
}
