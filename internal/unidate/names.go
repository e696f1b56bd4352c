package unidate

// festiveDays lists the reserved yeardays, in festive-index order: the
// four quarter markers, year end, and leap day. These days are always
// festive regardless of weekday arithmetic; leap day exists only in
// Gregorian leap years.
var festiveDays = [6]int{1, 92, 183, 274, 365, 366}

// festiveShort holds the short festive codes, indexed like festiveDays.
// They double as lookup keys into the month tables.
var festiveShort = [6]string{"Q1", "Q2", "Q3", "Q4", "YE", "LD"}

// weekdayNames maps each of the six weekday names to the three
// month-day offsets it covers. Weeks always start on a Firstday and end
// on a Sixthday. The spellings are canonical.
var weekdayNames = [6]struct {
	Name    string
	Offsets [3]int
}{
	{"Firstday", [3]int{1, 7, 13}},
	{"Seconday", [3]int{2, 8, 14}},
	{"Thirday", [3]int{3, 9, 15}},
	{"Fourthday", [3]int{4, 10, 16}},
	{"Fifthday", [3]int{5, 11, 17}},
	{"Sixthday", [3]int{6, 12, 18}},
}

// monthTable is one naming scheme: the 20 regular months indexed 1..20
// plus festive entries keyed by short festive code. The regional tables
// carry no festive entries of their own; festiveEntry falls back to the
// Unified long table for them.
type monthTable struct {
	regular [21]MonthInfo // index 0 unused
	festive map[string]MonthInfo
}

func (t *monthTable) month(n int) MonthInfo {
	return t.regular[n]
}

func (t *monthTable) festiveEntry(code string) MonthInfo {
	if m, ok := t.festive[code]; ok {
		return m
	}
	return monthsUnifiedLong.festive[code]
}

// longTable selects the long-form table for a variant. Unknown variants
// resolve as Unified.
func longTable(variant Variant) *monthTable {
	switch variant {
	case VariantTerritorian:
		return &monthsTerritorian
	case VariantAustral:
		return &monthsAustral
	}
	return &monthsUnifiedLong
}

var monthsUnifiedLong = monthTable{
	regular: [21]MonthInfo{
		1:  {Name: "Quarter one-A", Quarter: 1, Month: 1},
		2:  {Name: "Quarter one-B", Quarter: 1, Month: 2},
		3:  {Name: "Quarter one-C", Quarter: 1, Month: 3},
		4:  {Name: "Quarter one-D", Quarter: 1, Month: 4},
		5:  {Name: "Quarter one-E", Quarter: 1, Month: 5},
		6:  {Name: "Quarter two-A", Quarter: 2, Month: 1},
		7:  {Name: "Quarter two-B", Quarter: 2, Month: 2},
		8:  {Name: "Quarter two-C", Quarter: 2, Month: 3},
		9:  {Name: "Quarter two-D", Quarter: 2, Month: 4},
		10: {Name: "Quarter two-E", Quarter: 2, Month: 5},
		11: {Name: "Quarter three-A", Quarter: 3, Month: 1},
		12: {Name: "Quarter three-B", Quarter: 3, Month: 2},
		13: {Name: "Quarter three-C", Quarter: 3, Month: 3},
		14: {Name: "Quarter three-D", Quarter: 3, Month: 4},
		15: {Name: "Quarter three-E", Quarter: 3, Month: 5},
		16: {Name: "Quarter four-A", Quarter: 4, Month: 1},
		17: {Name: "Quarter four-B", Quarter: 4, Month: 2},
		18: {Name: "Quarter four-C", Quarter: 4, Month: 3},
		19: {Name: "Quarter four-D", Quarter: 4, Month: 4},
		20: {Name: "Quarter four-E", Quarter: 4, Month: 5},
	},
	festive: map[string]MonthInfo{
		"Q1": {Name: "Quarter one", Quarter: 1, Month: 0},
		"Q2": {Name: "Quarter two", Quarter: 2, Month: 0},
		"Q3": {Name: "Quarter three", Quarter: 3, Month: 0},
		"Q4": {Name: "Quarter four", Quarter: 4, Month: 0},
		"YE": {Name: "Year end", Quarter: 5, Month: 0},
		"LD": {Name: "Leap day", Quarter: 6, Month: 0},
	},
}

// The short table's month 15 and Q4 marker keep long-form names; both
// are canonical, not typos.
var monthsUnifiedShort = monthTable{
	regular: [21]MonthInfo{
		1:  {Name: "Q1A", Quarter: 1, Month: 1},
		2:  {Name: "Q1B", Quarter: 1, Month: 2},
		3:  {Name: "Q1C", Quarter: 1, Month: 3},
		4:  {Name: "Q1D", Quarter: 1, Month: 4},
		5:  {Name: "Q1E", Quarter: 1, Month: 5},
		6:  {Name: "Q2A", Quarter: 2, Month: 1},
		7:  {Name: "Q2B", Quarter: 2, Month: 2},
		8:  {Name: "Q2C", Quarter: 2, Month: 3},
		9:  {Name: "Q2D", Quarter: 2, Month: 4},
		10: {Name: "Q2E", Quarter: 2, Month: 5},
		11: {Name: "Q3A", Quarter: 3, Month: 1},
		12: {Name: "Q3B", Quarter: 3, Month: 2},
		13: {Name: "Q3C", Quarter: 3, Month: 3},
		14: {Name: "Q3D", Quarter: 3, Month: 4},
		15: {Name: "Q three E", Quarter: 3, Month: 5},
		16: {Name: "Q4A", Quarter: 4, Month: 1},
		17: {Name: "Q4B", Quarter: 4, Month: 2},
		18: {Name: "Q4C", Quarter: 4, Month: 3},
		19: {Name: "Q4D", Quarter: 4, Month: 4},
		20: {Name: "Q4E", Quarter: 4, Month: 5},
	},
	festive: map[string]MonthInfo{
		"Q1": {Name: "Q10", Quarter: 1, Month: 0},
		"Q2": {Name: "Q20", Quarter: 2, Month: 0},
		"Q3": {Name: "Q30", Quarter: 3, Month: 0},
		"Q4": {Name: "Quarter four", Quarter: 4, Month: 0},
		"YE": {Name: "YE", Quarter: 5, Month: 0},
		"LD": {Name: "LD", Quarter: 6, Month: 0},
	},
}

// monthsTerritorian names months for the South-Western Territories.
// Names as published, including the pipe in month 16.
var monthsTerritorian = monthTable{
	regular: [21]MonthInfo{
		1:  {Name: "Winter freeze", Quarter: 1, Month: 1},
		2:  {Name: "Winter wane", Quarter: 1, Month: 2},
		3:  {Name: "Winter end", Quarter: 1, Month: 3},
		4:  {Name: "Spring low", Quarter: 1, Month: 4},
		5:  {Name: "Spring break", Quarter: 1, Month: 5},
		6:  {Name: "Spring height", Quarter: 2, Month: 1},
		7:  {Name: "Spring wane", Quarter: 2, Month: 2},
		8:  {Name: "Spring end", Quarter: 2, Month: 3},
		9:  {Name: "Summer low", Quarter: 2, Month: 4},
		10: {Name: "Summer break", Quarter: 2, Month: 5},
		11: {Name: "Summer height", Quarter: 3, Month: 1},
		12: {Name: "Summer wane", Quarter: 3, Month: 2},
		13: {Name: "Summer end", Quarter: 3, Month: 3},
		14: {Name: "Autumn low", Quarter: 3, Month: 4},
		15: {Name: "Autumn fall", Quarter: 3, Month: 5},
		16: {Name: "Autumn lull|height", Quarter: 4, Month: 1},
		17: {Name: "Autumn wane", Quarter: 4, Month: 2},
		18: {Name: "Autumn end", Quarter: 4, Month: 3},
		19: {Name: "Winter low", Quarter: 4, Month: 4},
		20: {Name: "Winter chill", Quarter: 4, Month: 5},
	},
}

// monthsAustral mirrors the Territorian scheme half a year out of
// phase for the opposite hemisphere.
var monthsAustral = monthTable{
	regular: [21]MonthInfo{
		1:  {Name: "Summer height", Quarter: 1, Month: 1},
		2:  {Name: "Summer wane", Quarter: 1, Month: 2},
		3:  {Name: "Summer close", Quarter: 1, Month: 3},
		4:  {Name: "Autumn start", Quarter: 1, Month: 4},
		5:  {Name: "Autumn fall", Quarter: 1, Month: 5},
		6:  {Name: "Autumn lull", Quarter: 2, Month: 1},
		7:  {Name: "Autumn wane", Quarter: 2, Month: 2},
		8:  {Name: "Autumn close", Quarter: 2, Month: 3},
		9:  {Name: "Winter start", Quarter: 2, Month: 4},
		10: {Name: "Winter chill", Quarter: 2, Month: 5},
		11: {Name: "Winter lull", Quarter: 3, Month: 1},
		12: {Name: "Winter wane", Quarter: 3, Month: 2},
		13: {Name: "Winter close", Quarter: 3, Month: 3},
		14: {Name: "Spring start", Quarter: 3, Month: 4},
		15: {Name: "Spring break", Quarter: 3, Month: 5},
		16: {Name: "Spring run", Quarter: 4, Month: 1},
		17: {Name: "Spring wane", Quarter: 4, Month: 2},
		18: {Name: "Spring close", Quarter: 4, Month: 3},
		19: {Name: "Summer start", Quarter: 4, Month: 4},
		20: {Name: "Summer break", Quarter: 4, Month: 5},
	},
}
