package domain

// Category labels used by a single-site success share.
const (
	CategorySuccess = "Success"
	CategoryFail    = "Fail"
)

// Category is one labelled slice of a pie series.
type Category struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ChartSeries is the ordered set of categories handed to a pie renderer.
type ChartSeries struct {
	Categories []Category `json:"categories"`
}

// Total returns the sum of every category count.
func (s ChartSeries) Total() int {
	total := 0
	for _, c := range s.Categories {
		total += c.Count
	}
	return total
}

// ScatterPoint is one payload/outcome observation coloured by booster category.
type ScatterPoint struct {
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	OutcomeClass           int     `json:"class"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// ScatterView is the per-site scatter series together with the payload range the
// renderer should clip its x axis to. The range never removes points from the series.
type ScatterView struct {
	Points []ScatterPoint `json:"points"`
	Range  PayloadRange   `json:"range"`
}

// SiteOption is one entry of the launch-site selector.
type SiteOption struct {
	Label string     `json:"label"`
	Value SiteFilter `json:"value"`
}
