// Package query implements the filtering and aggregation behind the dashboard charts.
//
// Every function here is a pure function of its arguments: nothing is cached and
// nothing is mutated, so callers may invoke them concurrently against a shared
// *domain.Dataset.
package query

import (
	"fmt"

	"github.com/tfkr-ae/launchboard/domain"
)

// AllSitesLabel is the selector label shown for domain.AllSites.
const AllSitesLabel = "All Sites"

// ResolveFilter validates raw against the sites observed in ds.
func ResolveFilter(ds *domain.Dataset, raw string) (domain.SiteFilter, error) {
	filter := domain.SiteFilter(raw)
	if filter.IsAll() || ds.HasSite(raw) {
		return filter, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidSiteFilter, raw)
}

// SuccessShare returns the pie series for filter.
//
// For domain.AllSites the series holds one category per site with its total success
// count, in site order. For a single site it holds exactly two categories, Success then
// Fail, counted over that site's records.
func SuccessShare(ds *domain.Dataset, filter domain.SiteFilter) (domain.ChartSeries, error) {
	if _, err := ResolveFilter(ds, string(filter)); err != nil {
		return domain.ChartSeries{}, err
	}

	if filter.IsAll() {
		aggregates := ds.Aggregates()
		categories := make([]domain.Category, len(aggregates))
		for i, agg := range aggregates {
			categories[i] = domain.Category{Label: agg.LaunchSite, Count: agg.TotalSuccessCount}
		}
		return domain.ChartSeries{Categories: categories}, nil
	}

	var success, fail int
	for _, record := range ds.All() {
		if record.LaunchSite != string(filter) {
			continue
		}
		switch record.OutcomeClass {
		case domain.OutcomeSuccess:
			success++
		case domain.OutcomeFailure:
			fail++
		}
	}

	return domain.ChartSeries{Categories: []domain.Category{
		{Label: domain.CategorySuccess, Count: success},
		{Label: domain.CategoryFail, Count: fail},
	}}, nil
}

// PayloadOutcomeSeries returns one scatter point per record at the selected site, or per
// record for domain.AllSites, preserving dataset order. No payload range is applied.
func PayloadOutcomeSeries(ds *domain.Dataset, filter domain.SiteFilter) ([]domain.ScatterPoint, error) {
	if _, err := ResolveFilter(ds, string(filter)); err != nil {
		return nil, err
	}

	points := make([]domain.ScatterPoint, 0, seriesCapacity(ds, filter))
	for _, record := range ds.All() {
		if !filter.IsAll() && record.LaunchSite != string(filter) {
			continue
		}
		points = append(points, domain.ScatterPoint{
			PayloadMassKg:          record.PayloadMassKg,
			OutcomeClass:           record.OutcomeClass,
			BoosterVersionCategory: record.BoosterVersionCategory,
		})
	}
	return points, nil
}

// PayloadOutcome returns the scatter series for filter together with the range the
// renderer should clip to. A nil rng resolves to the dataset's payload span; any other
// range is returned unchanged, even when it lies outside the data.
func PayloadOutcome(ds *domain.Dataset, filter domain.SiteFilter, rng *domain.PayloadRange) (domain.ScatterView, error) {
	resolved, err := ResolveRange(ds, rng)
	if err != nil {
		return domain.ScatterView{}, err
	}

	points, err := PayloadOutcomeSeries(ds, filter)
	if err != nil {
		return domain.ScatterView{}, err
	}

	return domain.ScatterView{Points: points, Range: resolved}, nil
}

// ResolveRange returns rng, or the dataset payload span when rng is nil.
func ResolveRange(ds *domain.Dataset, rng *domain.PayloadRange) (domain.PayloadRange, error) {
	if rng == nil {
		return ds.PayloadSpan(), nil
	}
	if !rng.Valid() {
		return domain.PayloadRange{}, fmt.Errorf("%w: [%g, %g]", domain.ErrInvalidPayloadRange, rng.Low, rng.High)
	}
	return *rng, nil
}

// SiteOptions returns the selector entries: All Sites first, then every site in
// first-seen order.
func SiteOptions(ds *domain.Dataset) []domain.SiteOption {
	sites := ds.Sites()
	options := make([]domain.SiteOption, 0, len(sites)+1)
	options = append(options, domain.SiteOption{Label: AllSitesLabel, Value: domain.AllSites})
	for _, site := range sites {
		options = append(options, domain.SiteOption{Label: site, Value: domain.SiteFilter(site)})
	}
	return options
}

func seriesCapacity(ds *domain.Dataset, filter domain.SiteFilter) int {
	if filter.IsAll() {
		return ds.Len()
	}
	return ds.SiteRecordCount(string(filter))
}
