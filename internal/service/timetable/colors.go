package timetable

// Color is a display-agnostic color token for a teacher: a token name for
// the interactive views and fill/border RGB values for the PDF export. Both
// consumers read this one table so the two surfaces stay consistent.
type Color struct {
	Token  string
	Fill   [3]int
	Border [3]int
}

var teacherColors = map[string]Color{
	"Jerome":    {Token: "yellow", Fill: [3]int{254, 252, 232}, Border: [3]int{250, 204, 21}},
	"Jo":        {Token: "blue", Fill: [3]int{239, 246, 255}, Border: [3]int{96, 165, 250}},
	"Sarah":     {Token: "green", Fill: [3]int{240, 253, 244}, Border: [3]int{74, 222, 128}},
	"Emily":     {Token: "red", Fill: [3]int{254, 242, 242}, Border: [3]int{248, 113, 113}},
	"Laurie":    {Token: "orange", Fill: [3]int{255, 247, 237}, Border: [3]int{251, 146, 60}},
	"Nadir":     {Token: "purple", Fill: [3]int{250, 245, 255}, Border: [3]int{192, 132, 252}},
	"Lucia":     {Token: "pink", Fill: [3]int{253, 242, 248}, Border: [3]int{244, 114, 182}},
	"Ana":       {Token: "indigo", Fill: [3]int{238, 242, 255}, Border: [3]int{129, 140, 248}},
	"Lucia/Ana": {Token: "pink", Fill: [3]int{253, 242, 248}, Border: [3]int{244, 114, 182}},
}

// NeutralColor is the fallback for unmapped teachers and empty cells.
var NeutralColor = Color{Token: "gray", Fill: [3]int{249, 250, 251}, Border: [3]int{156, 163, 175}}

// ColorFor returns the teacher's color token, falling back to NeutralColor.
func ColorFor(teacher string) Color {
	if c, ok := teacherColors[teacher]; ok {
		return c
	}
	return NeutralColor
}
