package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) *Dataset {
	t.Helper()
	columns := []string{
		ColSex, ColNotificationDate, ColBirthDate,
		ColViolencePhysical, ColViolencePsychological,
		"AG_ENFORCAMENTO", "AG_ARMA_FOGO", "AG_OBJETO", "AG_OUTROS",
		"REL_CONJUGE", "REL_PAI", "REL_TRAB",
		ColPerpetratorAlcohol,
	}
	rows := [][]string{
		{"2", "2019-06-01", "1990-01-01", "1", "2", "1", "1", "2", "1", "1", "2", "1", "1"},
		{"2", "2020-02-15", "2005-07-20", "1", "1", "2", "1", "2", "2", "1", "2", "2", "1"},
		{"2", "2020-11-30", "1958-03-02", "2", "1", "2", "2", "2", "2", "2", "1", "2", "2"},
		{"2", "2021-08-10", "2016-04-04", "1", "2", "2", "1", "2", "2", "1", "2", "2", "9"},
		{"2", "2022-01-05", "", "2", "2", "2", "2", "2", "2", "2", "2", "2", "1"},
	}
	return Build(columns, rows)
}

func TestView_FilterYears(t *testing.T) {
	d := buildFixture(t)

	t.Run("subset of years", func(t *testing.T) {
		view := d.All().FilterYears([]int{2020, 2022})
		assert.Equal(t, 3, view.Len())
		for _, r := range view.Records() {
			assert.Contains(t, []int{2020, 2022}, r.Year)
		}
	})

	t.Run("nil selection keeps everything", func(t *testing.T) {
		assert.Equal(t, d.Len(), d.All().FilterYears(nil).Len())
	})

	t.Run("empty selection matches nothing", func(t *testing.T) {
		assert.Equal(t, 0, d.All().FilterYears([]int{}).Len())
	})

	t.Run("unknown year matches nothing", func(t *testing.T) {
		assert.Equal(t, 0, d.All().FilterYears([]int{1999}).Len())
	})
}

func TestView_CountWhere(t *testing.T) {
	d := buildFixture(t)
	assert.Equal(t, 3, d.All().CountWhere(ColViolencePhysical, PresentCode))
	assert.Equal(t, 0, d.All().CountWhere("NO_SUCH_COLUMN", PresentCode))
}

func TestView_Percent(t *testing.T) {
	d := buildFixture(t)

	view := d.All()
	n := view.CountWhere(ColPerpetratorAlcohol, PresentCode)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 60.0, view.Percent(n), 0.001)

	t.Run("empty subset yields exactly zero", func(t *testing.T) {
		empty := d.All().FilterYears([]int{})
		assert.Zero(t, empty.Percent(10), "numerator is irrelevant on an empty subset")
	})

	t.Run("one decimal place", func(t *testing.T) {
		view := d.All().FilterYears([]int{2019, 2020, 2021})
		// 2 alcohol-positive of 4 filtered records: 50.0.
		assert.InDelta(t, 50.0, view.Percent(view.CountWhere(ColPerpetratorAlcohol, PresentCode)), 0.001)
	})
}

func TestView_IndicatorGroup(t *testing.T) {
	d := buildFixture(t)

	t.Run("drops zero counts and excluded column", func(t *testing.T) {
		got := d.All().IndicatorGroup(MeansPrefix, MeansExcludedColumn, 0)
		require.Len(t, got, 2)
		assert.Equal(t, CategoryCount{Label: "Arma Fogo", Count: 3}, got[0])
		assert.Equal(t, CategoryCount{Label: "Enforcamento", Count: 1}, got[1])
		for _, cc := range got {
			assert.NotZero(t, cc.Count)
			assert.NotEqual(t, "Outros", cc.Label)
		}
	})

	t.Run("top-N truncation keeps non-increasing order", func(t *testing.T) {
		got := d.All().IndicatorGroup(MeansPrefix, MeansExcludedColumn, 1)
		require.Len(t, got, 1)
		assert.Equal(t, "Arma Fogo", got[0].Label)
	})

	t.Run("relationship family excludes REL_TRAB", func(t *testing.T) {
		got := d.All().IndicatorGroup(RelationPrefix, RelationExcludedColumn, 7)
		require.Len(t, got, 2)
		assert.Equal(t, "Conjuge", got[0].Label)
		assert.Equal(t, 3, got[0].Count)
		assert.Equal(t, "Pai", got[1].Label)
		assert.Equal(t, 1, got[1].Count)
	})
}

func TestView_IndicatorCounts(t *testing.T) {
	d := buildFixture(t)
	got := d.All().IndicatorCounts(ViolenceTypeColumns())

	require.Len(t, got, 2, "absent columns and zero counts are dropped")
	assert.Equal(t, CategoryCount{Label: "Physical", Count: 3}, got[0])
	assert.Equal(t, CategoryCount{Label: "Psychological", Count: 2}, got[1])
}

func TestView_CountByOrdered(t *testing.T) {
	d := buildFixture(t)

	got := d.All().CountByOrdered(func(r Record) string { return r.AgeBracket }, AgeBracketLabels())
	require.Len(t, got, 5, "ordered grouping keeps zero-count brackets")

	byLabel := make(map[string]int)
	for _, cc := range got {
		byLabel[cc.Label] = cc.Count
	}
	assert.Equal(t, 1, byLabel["Child (0-9)"])
	assert.Equal(t, 1, byLabel["Adolescent (10-19)"])
	assert.Equal(t, 0, byLabel["Young adult (20-24)"])
	assert.Equal(t, 1, byLabel["Adult (25-59)"])
	assert.Equal(t, 1, byLabel["Elderly (60+)"])
	assert.Equal(t, AgeBracketLabels()[0], got[0].Label, "natural order preserved")
}

func TestView_CountByDescending(t *testing.T) {
	d := buildFixture(t)
	got := d.All().CountBy(func(r Record) string { return r.PerpetratorAlcohol })

	require.Len(t, got, 3)
	assert.Equal(t, "Yes", got[0].Label)
	assert.Equal(t, 3, got[0].Count)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestView_Years(t *testing.T) {
	d := buildFixture(t)
	assert.Equal(t, []int{2019, 2020, 2021, 2022}, d.Years())
	assert.Equal(t, []int{2020}, d.All().FilterYears([]int{2020}).Years())
}

func TestIndicatorLabel(t *testing.T) {
	assert.Equal(t, "Arma Fogo", indicatorLabel("AG_ARMA_FOGO", MeansPrefix))
	assert.Equal(t, "Enforcamento", indicatorLabel("AG_ENFORCAMENTO", MeansPrefix))
	assert.Equal(t, "Conjuge", indicatorLabel("REL_CONJUGE", RelationPrefix))
}
