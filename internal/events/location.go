package events

import "strings"

// ParseLocation splits a "City, ST" or "City, State" filter. The second part
// is only used as a state code when it is two letters long.
func ParseLocation(location string) (city, stateCode string) {
	if location == "" {
		return "", ""
	}

	parts := strings.Split(location, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) >= 2 {
		city = parts[0]
		if len(parts[1]) == 2 {
			stateCode = strings.ToUpper(parts[1])
		}
		return city, stateCode
	}

	return location, ""
}

var typeClasses = map[string]string{
	"Music":          "bg-purple-100 text-purple-800 hover:bg-purple-200",
	"Sports":         "bg-red-100 text-red-800 hover:bg-red-200",
	"Arts & Theatre": "bg-pink-100 text-pink-800 hover:bg-pink-200",
	"Film":           "bg-blue-100 text-blue-800 hover:bg-blue-200",
	"Miscellaneous":  "bg-gray-100 text-gray-800 hover:bg-gray-200",
	"Workshop":       "bg-blue-100 text-blue-800 hover:bg-blue-200",
	"Concert":        "bg-purple-100 text-purple-800 hover:bg-purple-200",
	"Meetup":         "bg-green-100 text-green-800 hover:bg-green-200",
	"Conference":     "bg-orange-100 text-orange-800 hover:bg-orange-200",
	"Festival":       "bg-pink-100 text-pink-800 hover:bg-pink-200",
}

// TypeClass returns the badge classes for an event type.
func TypeClass(eventType string) string {
	if c, ok := typeClasses[eventType]; ok {
		return c
	}
	return "bg-gray-100 text-gray-800 hover:bg-gray-200"
}
