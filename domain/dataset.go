package domain

import (
	"iter"
	"slices"
)

// Dataset is the read-only launch table shared by the loader and the query engine.
// It is built once by NewDataset and never mutated afterwards, so any number of
// goroutines may read from it without synchronisation.
type Dataset struct {
	records    []LaunchRecord
	sites      []string
	siteIndex  map[string]int
	aggregates []SiteSuccessAggregate
	siteCounts []int
	minPayload float64
	maxPayload float64
}

// NewDataset copies records and derives the payload bounds, the first-seen site order
// and the per-site success totals.
// An empty record set is valid and yields zero bounds and no sites.
func NewDataset(records []LaunchRecord) *Dataset {
	ds := &Dataset{
		records:   slices.Clone(records),
		siteIndex: make(map[string]int),
	}

	for i, record := range ds.records {
		if i == 0 || record.PayloadMassKg < ds.minPayload {
			ds.minPayload = record.PayloadMassKg
		}
		if i == 0 || record.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = record.PayloadMassKg
		}

		idx, ok := ds.siteIndex[record.LaunchSite]
		if !ok {
			idx = len(ds.sites)
			ds.siteIndex[record.LaunchSite] = idx
			ds.sites = append(ds.sites, record.LaunchSite)
			ds.aggregates = append(ds.aggregates, SiteSuccessAggregate{LaunchSite: record.LaunchSite})
			ds.siteCounts = append(ds.siteCounts, 0)
		}
		ds.aggregates[idx].TotalSuccessCount += record.OutcomeClass
		ds.siteCounts[idx]++
	}

	return ds
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// Record returns the record at index i.
func (ds *Dataset) Record(i int) LaunchRecord {
	return ds.records[i]
}

// All iterates over the records in their original order.
func (ds *Dataset) All() iter.Seq2[int, LaunchRecord] {
	return func(yield func(int, LaunchRecord) bool) {
		for i, record := range ds.records {
			if !yield(i, record) {
				return
			}
		}
	}
}

// Records returns a copy of every record in original order.
func (ds *Dataset) Records() []LaunchRecord {
	return slices.Clone(ds.records)
}

// Sites returns the distinct launch sites in first-seen order.
func (ds *Dataset) Sites() []string {
	return slices.Clone(ds.sites)
}

// HasSite reports whether site was observed when the dataset was built.
func (ds *Dataset) HasSite(site string) bool {
	_, ok := ds.siteIndex[site]
	return ok
}

// SiteRecordCount returns the number of records at site, or 0 if the site is unknown.
func (ds *Dataset) SiteRecordCount(site string) int {
	idx, ok := ds.siteIndex[site]
	if !ok {
		return 0
	}
	return ds.siteCounts[idx]
}

// Aggregates returns one success total per site, in Sites order.
func (ds *Dataset) Aggregates() []SiteSuccessAggregate {
	return slices.Clone(ds.aggregates)
}

// MinPayload returns the smallest payload mass in the dataset.
func (ds *Dataset) MinPayload() float64 {
	return ds.minPayload
}

// MaxPayload returns the largest payload mass in the dataset.
func (ds *Dataset) MaxPayload() float64 {
	return ds.maxPayload
}

// PayloadSpan returns [MinPayload, MaxPayload].
func (ds *Dataset) PayloadSpan() PayloadRange {
	return PayloadRange{Low: ds.minPayload, High: ds.maxPayload}
}

// TotalSuccesses returns the sum of OutcomeClass over every record.
func (ds *Dataset) TotalSuccesses() int {
	total := 0
	for _, agg := range ds.aggregates {
		total += agg.TotalSuccessCount
	}
	return total
}
