package frontend

import "strings"

// variant identifies which RF board the module is driving. Each board has a
// fixed number of physical filter/duplexer sites.
type variant int

const (
	variantUnknown variant = iota
	variantClassic
	variantCompact784
	variantCompact872
	variantMk2
	variantTactical
)

// siteCount returns how many filter sites the board variant carries.
func (v variant) siteCount() int {
	switch v {
	case variantClassic:
		return 14
	case variantCompact784:
		return 8
	case variantCompact872:
		// this board has 10 duplexer slots rather than the standard 8, plus
		// a non-standard wideband connection.
		return 11
	case variantMk2:
		return 16
	case variantTactical:
		return 12
	default:
		return 0
	}
}

func (v variant) String() string {
	switch v {
	case variantClassic:
		return "classic"
	case variantCompact784:
		return "compact784"
	case variantCompact872:
		return "compact872"
	case variantMk2:
		return "mk2"
	case variantTactical:
		return "tactical"
	default:
		return "unknown"
	}
}

// getVariant parses the variant attribute from the config.
func getVariant(name string) variant {
	switch strings.ToLower(name) {
	case "classic":
		return variantClassic
	case "compact784", "784":
		return variantCompact784
	case "compact872", "872":
		return variantCompact872
	case "mk2":
		return variantMk2
	case "tactical":
		return variantTactical
	default:
		return variantUnknown
	}
}
