package convert

import (
	"testmorph/internal/formats"
	"testmorph/internal/jsonval"
)

// Mapper extracts the canonical model from one source format's shape.
// Mappers never fail on data problems; they return however much of the
// document they could recognize.
type Mapper interface {
	Map(doc jsonval.Value) Document
}

// ForFormat selects the mapper for a detected format. Unrecognized
// formats fall back to the generic lowest-common-denominator mapper.
func ForFormat(f formats.SupportedFormat) Mapper {
	switch f {
	case formats.Zephyr:
		return zephyrMapper{}
	case formats.JiraXray:
		return xrayMapper{}
	case formats.TestLink:
		return testLinkMapper{}
	case formats.TestRail:
		return testRailMapper{}
	default:
		return genericMapper{}
	}
}

// Convert maps a decoded document using the mapper for format f and
// stamps the source format on the result.
func Convert(doc any, f formats.SupportedFormat) Document {
	out := ForFormat(f).Map(jsonval.Of(doc))
	out.SourceFormat = f
	if out.Suites == nil {
		out.Suites = []Suite{}
	}
	return out
}
