package gcode

import "strings"

// Profile describes a cutting-table controller dialect.
type Profile struct {
	Name          string
	CommentPrefix string
	CommentSuffix string
	RapidMove     string
	FeedMove      string
	DecimalPlaces int
	StartCode     []string
	EndCode       []string
}

var profiles = []Profile{
	{
		Name:          "generic",
		CommentPrefix: ";",
		RapidMove:     "G0",
		FeedMove:      "G1",
		DecimalPlaces: 1,
		StartCode:     []string{"G21 ; millimetres", "G90 ; absolute coordinates"},
		EndCode:       []string{"G0 X0 Y0", "M2"},
	},
	{
		Name:          "grbl",
		CommentPrefix: "(",
		CommentSuffix: ")",
		RapidMove:     "G0",
		FeedMove:      "G1",
		DecimalPlaces: 3,
		StartCode:     []string{"G21", "G90"},
		EndCode:       []string{"G0 X0 Y0", "M2"},
	},
}

// GetProfile returns the named profile; unknown names fall back to the
// generic dialect.
func GetProfile(name string) Profile {
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return profiles[0]
}

// ProfileNames lists the available dialects.
func ProfileNames() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
