package zipstate

// StateRange maps a state abbreviation to an inclusive ZIP interval.
// MinZip and MaxZip are always 5-character digit strings.
type StateRange struct {
	Code   string // Code is the two-letter state abbreviation.
	MinZip string // MinZip is the lowest ZIP assigned to the state.
	MaxZip string // MaxZip is the highest ZIP assigned to the state.
}

// Table is an ordered, read-only list of state ranges.
// Resolution is first-match in declaration order. A state may own several
// ranges; ranges of different states are expected not to overlap.
type Table struct {
	ranges []StateRange
}

// NewTable builds a table from the given ranges. The slice is copied.
func NewTable(ranges []StateRange) *Table {
	cp := make([]StateRange, len(ranges))
	copy(cp, ranges)

	return &Table{ranges: cp}
}

// defaultRanges covers the 50 states, DC and Puerto Rico.
var defaultRanges = []StateRange{
	{Code: "AK", MinZip: "99501", MaxZip: "99950"},
	{Code: "AL", MinZip: "35004", MaxZip: "36925"},
	{Code: "AR", MinZip: "71601", MaxZip: "72959"},
	{Code: "AZ", MinZip: "85001", MaxZip: "86556"},
	{Code: "CA", MinZip: "90001", MaxZip: "96162"},
	{Code: "CO", MinZip: "80001", MaxZip: "81658"},
	{Code: "CT", MinZip: "06001", MaxZip: "06928"},
	{Code: "DC", MinZip: "20001", MaxZip: "20599"},
	{Code: "DE", MinZip: "19701", MaxZip: "19980"},
	{Code: "FL", MinZip: "32004", MaxZip: "34997"},
	{Code: "GA", MinZip: "30001", MaxZip: "31999"},
	{Code: "HI", MinZip: "96701", MaxZip: "96898"},
	{Code: "IA", MinZip: "50001", MaxZip: "52809"},
	{Code: "ID", MinZip: "83201", MaxZip: "83876"},
	{Code: "IL", MinZip: "60001", MaxZip: "62999"},
	{Code: "IN", MinZip: "46001", MaxZip: "47997"},
	{Code: "KS", MinZip: "66002", MaxZip: "67954"},
	{Code: "KY", MinZip: "40003", MaxZip: "42788"},
	{Code: "LA", MinZip: "70001", MaxZip: "71497"},
	{Code: "MA", MinZip: "01001", MaxZip: "02791"},
	{Code: "MD", MinZip: "20601", MaxZip: "21930"},
	{Code: "ME", MinZip: "03901", MaxZip: "04992"},
	{Code: "MI", MinZip: "48001", MaxZip: "49971"},
	{Code: "MN", MinZip: "55001", MaxZip: "56763"},
	{Code: "MO", MinZip: "63001", MaxZip: "65899"},
	{Code: "MS", MinZip: "38601", MaxZip: "39776"},
	{Code: "MT", MinZip: "59001", MaxZip: "59937"},
	{Code: "NC", MinZip: "27006", MaxZip: "28909"},
	{Code: "ND", MinZip: "58001", MaxZip: "58856"},
	{Code: "NE", MinZip: "68001", MaxZip: "69367"},
	{Code: "NH", MinZip: "03031", MaxZip: "03897"},
	{Code: "NJ", MinZip: "07001", MaxZip: "08989"},
	{Code: "NM", MinZip: "87001", MaxZip: "88441"},
	{Code: "NV", MinZip: "88901", MaxZip: "89883"},
	// NY also owns the IRS codes in Holtsville, below PR and New England.
	{Code: "NY", MinZip: "00501", MaxZip: "00544"},
	{Code: "NY", MinZip: "10001", MaxZip: "14925"},
	{Code: "OH", MinZip: "43001", MaxZip: "45999"},
	{Code: "OK", MinZip: "73001", MaxZip: "74966"},
	{Code: "OR", MinZip: "97001", MaxZip: "97920"},
	{Code: "PA", MinZip: "15001", MaxZip: "19640"},
	{Code: "PR", MinZip: "00601", MaxZip: "00988"},
	{Code: "RI", MinZip: "02801", MaxZip: "02940"},
	{Code: "SC", MinZip: "29001", MaxZip: "29948"},
	{Code: "SD", MinZip: "57001", MaxZip: "57799"},
	{Code: "TN", MinZip: "37010", MaxZip: "38589"},
	{Code: "TX", MinZip: "75001", MaxZip: "79999"},
	{Code: "UT", MinZip: "84001", MaxZip: "84784"},
	{Code: "VA", MinZip: "22001", MaxZip: "24658"},
	{Code: "VT", MinZip: "05001", MaxZip: "05907"},
	{Code: "WA", MinZip: "98001", MaxZip: "99403"},
	{Code: "WI", MinZip: "53001", MaxZip: "54990"},
	{Code: "WV", MinZip: "24701", MaxZip: "26886"},
	{Code: "WY", MinZip: "82001", MaxZip: "83128"},
}

var defaultTable = NewTable(defaultRanges)

// DefaultTable returns the bundled US state range table.
func DefaultTable() *Table {
	return defaultTable
}
