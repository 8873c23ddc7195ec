package calendar

import "github.com/xuri/excelize/v2"

// Style selects the fill and font applied to an event cell.
type Style int

const (
	// StyleDefault is the orange fill used for ordinary events.
	StyleDefault Style = iota
	// StyleImportant is a red fill with white text.
	StyleImportant
	// StyleMeeting is a green fill.
	StyleMeeting
)

// ParseStyle maps a style name to its variant. Unknown names fall back to
// StyleDefault explicitly rather than failing.
func ParseStyle(name string) Style {
	switch name {
	case "important":
		return StyleImportant
	case "meeting":
		return StyleMeeting
	default:
		return StyleDefault
	}
}

func (s Style) String() string {
	switch s {
	case StyleImportant:
		return "important"
	case StyleMeeting:
		return "meeting"
	default:
		return "default"
	}
}

// cellStyle returns the excelize style definition for the variant. All
// variants wrap text and top-align so multi-event cells stay readable.
func (s Style) cellStyle() *excelize.Style {
	fill := "FAB07F"
	fontColor := "000000"
	switch s {
	case StyleImportant:
		fill = "FA5252"
		fontColor = "FFFFFF"
	case StyleMeeting:
		fill = "5CFF5C"
	}
	return &excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Font: &excelize.Font{Bold: true, Color: fontColor},
		Alignment: &excelize.Alignment{
			WrapText: true,
			Vertical: "top",
		},
	}
}
