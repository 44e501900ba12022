package repository

import (
	"context"
	"fmt"
	"strings"

	"ship_berth/internal/app/ds"
)

// BerthSearch holds the optional filters of a berth search. Zero values mean
// "not filtered".
type BerthSearch struct {
	Location string
	MinSize  int
	Status   ds.BerthStatus
}

// IgnoredFilter describes a filter value that could not be interpreted and was
// therefore not applied.
type IgnoredFilter struct {
	Name   string
	Value  string
	Reason string
}

func (f IgnoredFilter) String() string {
	return fmt.Sprintf("%s=%q (%s)", f.Name, f.Value, f.Reason)
}

// NewBerthSearch builds a search from raw request values. The location is
// kept verbatim and only "" disables it. An unrecognized status is reported
// back instead of silently dropped.
func NewBerthSearch(location string, minSize int, status string) (BerthSearch, []IgnoredFilter) {
	search := BerthSearch{
		Location: location,
	}
	var ignored []IgnoredFilter

	if minSize > 0 {
		search.MinSize = minSize
	} else if minSize < 0 {
		ignored = append(ignored, IgnoredFilter{Name: "minSize", Value: fmt.Sprint(minSize), Reason: "negative size"})
	}

	if status = strings.TrimSpace(status); status != "" {
		parsed, ok := ds.ParseBerthStatus(status)
		if ok {
			search.Status = parsed
		} else {
			ignored = append(ignored, IgnoredFilter{Name: "status", Value: status, Reason: "unknown berth status"})
		}
	}

	return search, ignored
}

// SearchBerths applies all set filters with AND. The location match is
// case-sensitive.
func (r *Repository) SearchBerths(ctx context.Context, search BerthSearch) ([]ds.Berth, error) {
	query := r.db.WithContext(ctx).Model(&ds.Berth{})

	if search.Location != "" {
		// LIKE is case-insensitive on some drivers, so the result is
		// narrowed again below.
		query = query.Where("location LIKE ?", "%"+escapeLike(search.Location)+"%")
	}
	if search.MinSize > 0 {
		query = query.Where("max_ship_size >= ?", search.MinSize)
	}
	if search.Status != "" {
		query = query.Where("status = ?", search.Status)
	}

	var berths []ds.Berth
	if err := query.Order("id").Find(&berths).Error; err != nil {
		return nil, err
	}

	if search.Location == "" {
		return berths, nil
	}
	matched := berths[:0]
	for _, b := range berths {
		if strings.Contains(b.Location, search.Location) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// escapeLike drops the LIKE wildcards from user input. The post-filter keeps
// the result exact, the pattern only needs to be a superset.
func escapeLike(s string) string {
	return strings.NewReplacer("%", "_", "\\", "_").Replace(s)
}
