package timetable

import "strings"

// onlineMarkers prefix labels of remotely delivered lessons, compared case-insensitively.
var onlineMarkers = []string{"online_", "online / "}

// truncatedSuffix is cut short in the source data for one module name.
const truncatedSuffix = "Beha"

// DecodeLabel splits a class label such as "Online_Econ101_lec_2" into the
// module name and the delivery format. Unknown shapes fall back to seminar.
func DecodeLabel(label string) (string, Format) {
	online := false
	label = strings.TrimSpace(label)
	for _, marker := range onlineMarkers {
		if len(label) >= len(marker) && strings.EqualFold(label[:len(marker)], marker) {
			label = label[len(marker):]
			online = true
			break
		}
	}

	name, rest, _ := strings.Cut(label, "_")
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, truncatedSuffix) {
		name += "viour"
	}

	return name, classify(rest, online)
}

func classify(rest string, online bool) Format {
	var format Format
	switch {
	case strings.Contains(rest, "lec_"):
		format = Lecture
	case strings.Contains(rest, "w_"):
		format = Workshop
	default:
		format = Seminar
	}

	if online {
		return "online " + format
	}
	return format
}
