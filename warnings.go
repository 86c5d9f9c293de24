package extractor

import "github.com/rs/zerolog"

// WarningCode classifies a non-fatal extraction issue.
type WarningCode string

const (
	// WarnMissingShape marks a timing node that references a shape absent
	// from its slide's shape list.
	WarnMissingShape WarningCode = "missing-shape"
	// WarnUnknownShow marks a hyperlink to a custom show id that is not in
	// the show table.
	WarnUnknownShow WarningCode = "unknown-show"
	// WarnShowCycle marks a custom show reference truncated by the
	// active-path cycle guard.
	WarnShowCycle WarningCode = "show-cycle"
	// WarnDegenerateGeometry marks a segment shape that fell back to its
	// bounding box because its geometry could not be resolved.
	WarnDegenerateGeometry WarningCode = "degenerate-geometry"
)

// Warning records one non-fatal issue surfaced during extraction.
type Warning struct {
	Code    WarningCode `json:"code"`
	Slide   SlideRef    `json:"slide"`
	Message string      `json:"message"`
}

// Warnings accumulates non-fatal issues for audit. It is an explicit
// accumulator threaded through the builder rather than ambient global
// state, so repeated or concurrent runs do not interfere. Each recorded
// warning is also logged through the injected logger.
//
// A Warnings value is not safe for concurrent use; give each concurrently
// processed deck its own accumulator.
type Warnings struct {
	logger zerolog.Logger
	list   []Warning
}

// NewWarnings creates an accumulator that logs through the given logger.
// Use zerolog.Nop() for a silent accumulator.
func NewWarnings(logger zerolog.Logger) *Warnings {
	return &Warnings{logger: logger}
}

// Add records a warning and logs it.
func (w *Warnings) Add(slide SlideRef, code WarningCode, msg string) {
	w.list = append(w.list, Warning{Code: code, Slide: slide, Message: msg})
	w.logger.Warn().
		Str("code", string(code)).
		Str("slide", slide.String()).
		Msg(msg)
}

// All returns the recorded warnings in order.
func (w *Warnings) All() []Warning {
	return w.list
}

// Len returns the number of recorded warnings.
func (w *Warnings) Len() int {
	return len(w.list)
}
