package dataset

// Column names from the SINAN violence notification schema. All columns are
// optional in the source workbook except the two date columns required for
// the age-dependent charts.
const (
	ColSex                = "CS_SEXO"
	ColNotificationDate   = "DT_NOTIFIC"
	ColBirthDate          = "DT_NASC"
	ColOccurrenceDate     = "DT_OCOR"
	ColMaritalStatus      = "SIT_CONJUG"
	ColPerpetratorSex     = "AUTOR_SEXO"
	ColPerpetratorAlcohol = "AUTOR_ALCO"
)

// Violence-type indicator columns, in display order.
const (
	ColViolencePhysical      = "VIOL_FISIC"
	ColViolencePsychological = "VIOL_PSICO"
	ColViolenceSexual        = "VIOL_SEXU"
	ColViolenceTorture       = "VIOL_TORT"
	ColViolenceFinancial     = "VIOL_FINAN"
	ColViolenceNeglect       = "VIOL_NEGLI"
)

// PresentCode is the SINAN code meaning "this condition is present".
const PresentCode = "1"

// Indicator column families aggregated as a group. One column of each
// family is a free-text catch-all and is excluded from the aggregation.
const (
	MeansPrefix            = "AG_"
	MeansExcludedColumn    = "AG_OUTROS"
	RelationPrefix         = "REL_"
	RelationExcludedColumn = "REL_TRAB"
)

// LabelIgnored is the mandatory fallback label for any categorical code not
// present in its decode table, including missing values. Decoding never
// yields an empty label and never fails.
const LabelIgnored = "Ignored"

// femaleSexCodes holds the accepted encodings of the female sex code.
// SINAN exports carry either the letter form or the numeric code 2; cell
// normalization collapses "2.0" style numerics to "2" before lookup.
var femaleSexCodes = map[string]bool{
	"F": true,
	"f": true,
	"2": true,
}

// IsFemaleCode reports whether a normalized sex cell matches any accepted
// encoding of "female".
func IsFemaleCode(code string) bool {
	return femaleSexCodes[code]
}

// yesNoCodes is the standard SINAN yes/no/ignored table shared by the
// perpetrator alcohol-use field.
var yesNoCodes = map[string]string{
	"1": "Yes",
	"2": "No",
	"3": "Not applicable",
	"8": "Not applicable",
	"9": LabelIgnored,
}

// maritalStatusCodes decodes SIT_CONJUG.
var maritalStatusCodes = map[string]string{
	"1": "Single",
	"2": "Married/united",
	"3": "Widowed",
	"4": "Separated",
	"8": "Not applicable",
	"9": LabelIgnored,
}

// perpetratorSexCodes decodes AUTOR_SEXO.
var perpetratorSexCodes = map[string]string{
	"1": "Male",
	"2": "Female",
	"3": "Both",
	"9": LabelIgnored,
}

// decode translates a categorical code through its table, falling back to
// LabelIgnored for unknown or missing codes.
func decode(table map[string]string, code string) string {
	if label, ok := table[code]; ok {
		return label
	}
	return LabelIgnored
}

// DecodeYesNo decodes a SINAN yes/no/ignored code.
func DecodeYesNo(code string) string { return decode(yesNoCodes, code) }

// DecodeMaritalStatus decodes a marital-status code.
func DecodeMaritalStatus(code string) string { return decode(maritalStatusCodes, code) }

// DecodePerpetratorSex decodes a perpetrator-sex code.
func DecodePerpetratorSex(code string) string { return decode(perpetratorSexCodes, code) }

// ViolenceTypeColumns maps each violence-type indicator column to its
// display label, in display order.
func ViolenceTypeColumns() []ColumnLabel {
	return []ColumnLabel{
		{Column: ColViolencePhysical, Label: "Physical"},
		{Column: ColViolencePsychological, Label: "Psychological"},
		{Column: ColViolenceSexual, Label: "Sexual"},
		{Column: ColViolenceTorture, Label: "Torture"},
		{Column: ColViolenceFinancial, Label: "Financial"},
		{Column: ColViolenceNeglect, Label: "Neglect"},
	}
}

// ColumnLabel pairs an indicator column with its display label.
type ColumnLabel struct {
	Column string
	Label  string
}
