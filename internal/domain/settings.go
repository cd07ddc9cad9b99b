package domain

// Settings configures the matching engine. Every field is optional: nil
// fields fall back to the documented default, merged field-by-field, so
// callers can override a single knob without restating the rest.
type Settings struct {
	// FuzzyMatching enables the phase-2 fuzzy pass. Default true.
	FuzzyMatching *bool `json:"fuzzyMatching,omitempty" yaml:"fuzzyMatching"`
	// FuzzyThreshold is the minimum confidence to accept a fuzzy match,
	// in [0,1]. Default 0.7.
	FuzzyThreshold *float64 `json:"fuzzyThreshold,omitempty" yaml:"fuzzyThreshold"`
	// MatchByAmount enables the amount scoring factor. Default true.
	MatchByAmount *bool `json:"matchByAmount,omitempty" yaml:"matchByAmount"`
	// MatchByDescription enables the description scoring factor. Default true.
	MatchByDescription *bool `json:"matchByDescription,omitempty" yaml:"matchByDescription"`
	// MatchByReference enables the reference scoring factor. Default true.
	MatchByReference *bool `json:"matchByReference,omitempty" yaml:"matchByReference"`
	// MatchByDate enables the date scoring factor. Default true.
	MatchByDate *bool `json:"matchByDate,omitempty" yaml:"matchByDate"`
	// DateTolerance is the maximum day difference a fuzzy date match may
	// span. Default 3.
	DateTolerance *int `json:"dateTolerance,omitempty" yaml:"dateTolerance"`
	// AutoMatchExact enables the phase-1 exact pass. Default true.
	AutoMatchExact *bool `json:"autoMatchExact,omitempty" yaml:"autoMatchExact"`
}

// DefaultSettings returns the settings used when the caller supplies none.
func DefaultSettings() Settings {
	return Settings{
		FuzzyMatching:      Bool(true),
		FuzzyThreshold:     Float64(0.7),
		MatchByAmount:      Bool(true),
		MatchByDescription: Bool(true),
		MatchByReference:   Bool(true),
		MatchByDate:        Bool(true),
		DateTolerance:      Int(3),
		AutoMatchExact:     Bool(true),
	}
}

// WithDefaults returns a copy of s with every nil field replaced by its
// default. The receiver is not modified.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.FuzzyMatching == nil {
		s.FuzzyMatching = d.FuzzyMatching
	}
	if s.FuzzyThreshold == nil {
		s.FuzzyThreshold = d.FuzzyThreshold
	}
	if s.MatchByAmount == nil {
		s.MatchByAmount = d.MatchByAmount
	}
	if s.MatchByDescription == nil {
		s.MatchByDescription = d.MatchByDescription
	}
	if s.MatchByReference == nil {
		s.MatchByReference = d.MatchByReference
	}
	if s.MatchByDate == nil {
		s.MatchByDate = d.MatchByDate
	}
	if s.DateTolerance == nil {
		s.DateTolerance = d.DateTolerance
	}
	if s.AutoMatchExact == nil {
		s.AutoMatchExact = d.AutoMatchExact
	}
	return s
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Float64 returns a pointer to v.
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
