package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_FemaleFilter(t *testing.T) {
	tests := []struct {
		name     string
		sex      string
		wantKept bool
	}{
		{name: "numeric female code", sex: "2", wantKept: true},
		{name: "numeric female code with excel float", sex: "2.0", wantKept: true},
		{name: "letter female code", sex: "F", wantKept: true},
		{name: "male code excluded", sex: "1", wantKept: false},
		{name: "letter male code excluded", sex: "M", wantKept: false},
		{name: "missing sex excluded", sex: "", wantKept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Build([]string{ColSex, ColNotificationDate}, [][]string{{tt.sex, "2021-03-10"}})
			if tt.wantKept {
				assert.Equal(t, 1, d.Len())
			} else {
				assert.Equal(t, 0, d.Len())
			}
		})
	}
}

func TestBuild_NoSexColumnPassesAllRows(t *testing.T) {
	d := Build([]string{ColNotificationDate}, [][]string{
		{"2020-01-01"},
		{"2021-01-01"},
	})
	assert.Equal(t, 2, d.Len(), "population filter is skipped when the sex column is absent")
}

func TestBuild_DateAndYearDerivation(t *testing.T) {
	d := Build(
		[]string{ColSex, ColNotificationDate, ColBirthDate, ColOccurrenceDate},
		[][]string{
			{"2", "2021-03-10", "10/03/2011", "2021-03-09"},
			{"F", "not-a-date", "", ""},
		},
	)
	require.Equal(t, 2, d.Len())

	r := d.All().Records()[0]
	assert.Equal(t, time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC), r.NotificationDate)
	assert.Equal(t, time.Date(2011, 3, 10, 0, 0, 0, 0, time.UTC), r.BirthDate, "day-first layout")
	assert.Equal(t, 2021, r.Year)

	bad := d.All().Records()[1]
	assert.True(t, bad.NotificationDate.IsZero(), "unparseable date degrades to the no-value marker")
	assert.Zero(t, bad.Year)
	assert.Equal(t, AgeUnknown, bad.Age)
	assert.Empty(t, bad.AgeBracket)
}

func TestBuild_AgeScenario(t *testing.T) {
	// Notification one day short of the tenth birthday: floor(3652/365.25) = 9.
	d := Build(
		[]string{ColSex, ColNotificationDate, ColBirthDate},
		[][]string{{"2", "2021-03-10", "2011-03-11"}},
	)
	require.Equal(t, 1, d.Len())

	r := d.All().Records()[0]
	assert.Equal(t, 9, r.Age)
	assert.Equal(t, "Child (0-9)", r.AgeBracket)
}

func TestBracketForAge_RightClosedBoundaries(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{0, "Child (0-9)"},
		{9, "Child (0-9)"},
		{10, "Adolescent (10-19)"},
		{19, "Adolescent (10-19)"},
		{20, "Young adult (20-24)"},
		{24, "Young adult (20-24)"},
		{25, "Adult (25-59)"},
		{59, "Adult (25-59)"},
		{60, "Elderly (60+)"},
		{120, "Elderly (60+)"},
		{121, ""},
		{-1, ""},
		{AgeUnknown, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BracketForAge(tt.age), "age %d", tt.age)
	}
}

func TestBuild_CategoricalDecoding(t *testing.T) {
	d := Build(
		[]string{ColSex, ColPerpetratorAlcohol, ColMaritalStatus, ColPerpetratorSex},
		[][]string{
			{"2", "1", "2", "1"},
			{"2", "9", "9", "9"},
			{"2", "7", "", "x"},
		},
	)
	require.Equal(t, 3, d.Len())
	records := d.All().Records()

	assert.Equal(t, "Yes", records[0].PerpetratorAlcohol)
	assert.Equal(t, "Married/united", records[0].MaritalStatus)
	assert.Equal(t, "Male", records[0].PerpetratorSex)

	assert.Equal(t, LabelIgnored, records[1].PerpetratorAlcohol)
	assert.Equal(t, LabelIgnored, records[1].MaritalStatus)
	assert.Equal(t, LabelIgnored, records[1].PerpetratorSex)

	// Unknown and missing codes both fall back, never error out.
	assert.Equal(t, LabelIgnored, records[2].PerpetratorAlcohol)
	assert.Equal(t, LabelIgnored, records[2].MaritalStatus)
	assert.Equal(t, LabelIgnored, records[2].PerpetratorSex)
}

func TestBuild_ShortAndLongRows(t *testing.T) {
	d := Build(
		[]string{ColSex, ColNotificationDate, ColMaritalStatus},
		[][]string{
			{"2"},
			{"2", "2020-05-01", "1", "spilled", "cells"},
		},
	)
	require.Equal(t, 2, d.Len())
	records := d.All().Records()

	assert.Empty(t, records[0].Cell(ColMaritalStatus))
	assert.Equal(t, "Single", records[1].MaritalStatus)
}

func TestParseDate_ExcelSerial(t *testing.T) {
	// 44265 is 2021-03-10 in the 1900 date system.
	got := parseDate("44265")
	assert.Equal(t, time.Date(2021, 3, 10, 0, 0, 0, 0, time.UTC), got)
}
