package risk

// Percent100 is an allocation share on a 0-100 scale, the form used by
// planning-time entry and take-profit legs.
//
// Fraction01 is a share on a 0-1 scale, the form used by execution-time
// exit legs (fraction of the original position) and by risk fractions.
//
// The two are distinct types so a 0-100 value can never silently flow into
// a 0-1 call site or vice versa; all conversion happens through the
// methods below.
type Percent100 float64

type Fraction01 float64

// Fraction converts a 0-100 percent to its 0-1 form.
func (p Percent100) Fraction() Fraction01 { return Fraction01(p / 100) }

// Percent converts a 0-1 fraction to its 0-100 form.
func (f Fraction01) Percent() Percent100 { return Percent100(f * 100) }
