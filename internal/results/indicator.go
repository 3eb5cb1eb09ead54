package results

import (
	"github.com/joseph-ayodele/idcard-extractor/constants"
	"github.com/joseph-ayodele/idcard-extractor/internal/schema"
)

// IndicatorFor applies the validity policy: an explicit flag wins, then an
// empty or absent value is missing, otherwise the validity is unknown.
func IndicatorFor(v schema.Value) constants.Indicator {
	switch {
	case v.Valid != nil && *v.Valid:
		return constants.IndicatorValid
	case v.Valid != nil:
		return constants.IndicatorInvalid
	case v.Empty():
		return constants.IndicatorMissing
	default:
		return constants.IndicatorUnknown
	}
}
