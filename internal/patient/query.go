package patient

// Filter is the scope dimension for a roster screen: which admission
// statuses are shown.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterAdmitted    Filter = "admitted"
	FilterObservation Filter = "observation"
	FilterDischarged  Filter = "discharged"
)

// Filters returns all filters, in tab order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterAdmitted, FilterObservation, FilterDischarged}
}

// status returns the status the filter selects, or the zero status for all.
func (f Filter) status() Status {
	switch f {
	case FilterAdmitted:
		return StatusAdmitted
	case FilterObservation:
		return StatusObservation
	case FilterDischarged:
		return StatusDischarged
	default:
		return ""
	}
}

// Query identifies one fetch of the roster. Identical search text, filter
// and page size always build an equal query, which is what the controller's
// redundant reload detection relies upon.
type Query struct {
	// Search matches case-insensitively against patient name and MRN. Empty
	// means unfiltered.
	Search string
	Filter Filter
	// PageSize is the number of patients per page.
	PageSize int
}
