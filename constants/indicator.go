package constants

// Indicator is the validity badge shown next to an extracted field.
type Indicator string

const (
	IndicatorValid   Indicator = "valid"
	IndicatorInvalid Indicator = "invalid"
	IndicatorMissing Indicator = "missing"
	IndicatorUnknown Indicator = "unknown"
)

// NotDetected is shown in place of a missing value.
const NotDetected = "Not detected"
