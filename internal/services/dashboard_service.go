package services

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"sinandash/internal/dataset"
	"sinandash/internal/infrastructure"
)

// Chart kinds understood by the dashboard page.
const (
	ChartBar           = "bar"
	ChartHorizontalBar = "hbar"
	ChartPie           = "pie"
	ChartDonut         = "donut"
)

// Chart is one renderable chart: labeled counts plus presentation hints.
type Chart struct {
	Kind  string                  `json:"kind"`
	Title string                  `json:"title"`
	Data  []dataset.CategoryCount `json:"data"`
	// Color is a single-series color hint; ColorMap colors pie slices by
	// label. Both optional.
	Color    string            `json:"color,omitempty"`
	ColorMap map[string]string `json:"color_map,omitempty"`
}

// Summary holds the four headline metrics. The pointer fields are omitted
// when their source column is absent from the workbook.
type Summary struct {
	TotalNotifications    int      `json:"total_notifications"`
	PhysicalViolenceCases *int     `json:"physical_violence_cases,omitempty"`
	PerpetratorAlcoholPct *float64 `json:"perpetrator_alcohol_pct,omitempty"`
	TopAgeBracket         string   `json:"top_age_bracket"`
}

// Meta describes the dashboard and its filter state.
type Meta struct {
	Title           string `json:"title"`
	Source          string `json:"source"`
	AvailableYears  []int  `json:"available_years"`
	SelectedYears   []int  `json:"selected_years,omitempty"`
	FilteredRecords int    `json:"filtered_records"`
}

// Dashboard is the full payload for one render: metadata, the four summary
// metrics and the charts keyed by name. Charts whose source columns are
// missing from the workbook are simply absent from the map.
type Dashboard struct {
	Meta    Meta              `json:"meta"`
	Summary Summary           `json:"summary"`
	Charts  map[string]*Chart `json:"charts"`
}

// DashboardService builds dashboard payloads from the memoized dataset.
type DashboardService struct {
	store  *dataset.Store
	logger *slog.Logger

	loadMetricOnce sync.Once
}

// NewDashboardService creates a dashboard service over the given store.
func NewDashboardService(store *dataset.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  store,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// Status reports the dataset store lifecycle state without forcing a load.
func (s *DashboardService) Status() dataset.Status {
	return s.store.Status()
}

// Years returns the distinct notification years available for filtering.
func (s *DashboardService) Years(ctx context.Context) ([]int, error) {
	d, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return d.Years(), nil
}

// Dashboard builds the payload for the given year selection. A nil selection
// means all years; an empty selection matches nothing.
func (s *DashboardService) Dashboard(ctx context.Context, years []int) (*Dashboard, error) {
	d, err := s.dataset(ctx)
	if err != nil {
		infrastructure.DashboardRequests.WithLabelValues("unavailable").Inc()
		return nil, err
	}

	view := d.All().FilterYears(years)

	db := &Dashboard{
		Meta: Meta{
			Title:           "Violence Surveillance Dashboard",
			Source:          "HGR / SINAN notifications (women and girls)",
			AvailableYears:  d.Years(),
			SelectedYears:   years,
			FilteredRecords: view.Len(),
		},
		Summary: s.buildSummary(view),
		Charts:  s.buildCharts(view),
	}

	s.logger.DebugContext(ctx, "dashboard built",
		slog.Int("filtered_records", view.Len()),
		slog.Int("charts", len(db.Charts)))
	infrastructure.DashboardRequests.WithLabelValues("success").Inc()

	return db, nil
}

// dataset resolves the memoized dataset, recording the load outcome metrics
// exactly once per process.
func (s *DashboardService) dataset(ctx context.Context) (*dataset.Dataset, error) {
	d, err := s.store.Dataset(ctx)
	s.loadMetricOnce.Do(func() {
		if err != nil {
			infrastructure.DatasetLoads.WithLabelValues("failure").Inc()
			return
		}
		infrastructure.DatasetLoads.WithLabelValues("success").Inc()
		infrastructure.DatasetRecords.Set(float64(d.Len()))
	})
	return d, err
}

func (s *DashboardService) buildSummary(view dataset.View) Summary {
	summary := Summary{
		TotalNotifications: view.Len(),
		TopAgeBracket:      topAgeBracket(view),
	}

	if view.HasColumn(dataset.ColViolencePhysical) {
		n := view.CountWhere(dataset.ColViolencePhysical, dataset.PresentCode)
		summary.PhysicalViolenceCases = &n
	}
	if view.HasColumn(dataset.ColPerpetratorAlcohol) {
		pct := view.Percent(view.CountWhere(dataset.ColPerpetratorAlcohol, dataset.PresentCode))
		summary.PerpetratorAlcoholPct = &pct
	}

	return summary
}

// topAgeBracket returns the most frequent bracket, "-" when the filtered
// subset is empty or no record has a bracket. Ties resolve to the youngest
// bracket.
func topAgeBracket(view dataset.View) string {
	top, best := "-", 0
	for _, cc := range view.CountByOrdered(bracketOf, dataset.AgeBracketLabels()) {
		if cc.Count > best {
			top, best = cc.Label, cc.Count
		}
	}
	return top
}

func bracketOf(r dataset.Record) string { return r.AgeBracket }

func (s *DashboardService) buildCharts(view dataset.View) map[string]*Chart {
	charts := make(map[string]*Chart)

	if view.HasColumn(dataset.ColNotificationDate) {
		charts["years"] = &Chart{
			Kind:  ChartBar,
			Title: "Notifications per year",
			Data:  view.CountByOrdered(yearLabel, yearOrder(view)),
			Color: "#C44E52",
		}
	}

	if view.HasColumn(dataset.ColNotificationDate) && view.HasColumn(dataset.ColBirthDate) {
		charts["age_brackets"] = &Chart{
			Kind:  ChartBar,
			Title: "Age bracket distribution",
			Data:  view.CountByOrdered(bracketOf, dataset.AgeBracketLabels()),
			Color: "#FF6B6B",
		}
	}

	if view.HasColumn(dataset.ColMaritalStatus) {
		charts["marital_status"] = &Chart{
			Kind:  ChartDonut,
			Title: "Marital status",
			Data:  view.CountBy(func(r dataset.Record) string { return r.MaritalStatus }),
		}
	}

	if data := view.IndicatorCounts(dataset.ViolenceTypeColumns()); data != nil {
		charts["violence_types"] = &Chart{
			Kind:  ChartHorizontalBar,
			Title: "Violence types (multiple choice)",
			Data:  data,
		}
	}

	if view.HasIndicatorFamily(dataset.MeansPrefix, dataset.MeansExcludedColumn) {
		charts["means_used"] = &Chart{
			Kind:  ChartBar,
			Title: "Means used (top 5)",
			Data:  view.IndicatorGroup(dataset.MeansPrefix, dataset.MeansExcludedColumn, 5),
			Color: "#FFA07A",
		}
	}

	if view.HasIndicatorFamily(dataset.RelationPrefix, dataset.RelationExcludedColumn) {
		charts["relationship"] = &Chart{
			Kind:  ChartBar,
			Title: "Relationship to the victim (top 7)",
			Data:  view.IndicatorGroup(dataset.RelationPrefix, dataset.RelationExcludedColumn, 7),
			Color: "#4682B4",
		}
	}

	if view.HasColumn(dataset.ColPerpetratorAlcohol) {
		charts["perpetrator_alcohol"] = &Chart{
			Kind:  ChartPie,
			Title: "Suspected alcohol use by perpetrator",
			Data:  view.CountBy(func(r dataset.Record) string { return r.PerpetratorAlcohol }),
			ColorMap: map[string]string{
				"Yes":                "#FF4B4B",
				"No":                 "#87CEEB",
				dataset.LabelIgnored: "#D3D3D3",
			},
		}
	}

	if view.HasColumn(dataset.ColPerpetratorSex) {
		charts["perpetrator_sex"] = &Chart{
			Kind:  ChartDonut,
			Title: "Perpetrator sex",
			Data:  view.CountBy(func(r dataset.Record) string { return r.PerpetratorSex }),
		}
	}

	return charts
}

func yearLabel(r dataset.Record) string {
	if r.Year == 0 {
		return ""
	}
	return strconv.Itoa(r.Year)
}

func yearOrder(view dataset.View) []string {
	years := view.Years()
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	return labels
}
