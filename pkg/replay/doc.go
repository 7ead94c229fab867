// Package replay defines the value records returned by history replay and
// validation flows: the four response envelopes, the recorded history entry,
// and the per-state timeline and time-analysis records derived from history.
//
// # Architecture
//
// All four response types share one embedded Response shape: success flag,
// data map (never nil), message, and the nullable error and details fields.
// Each type offers three construction paths. The positional path
// (NewStatisticsResponse and friends) takes the success flag plus functional
// options. The map path (StatisticsResponseFromMap) is the preferred factory
// for transport payloads. The payload path (StatisticsResponseFromPayload)
// reproduces the legacy polymorphic constructor: its first argument is
// classified before any field is read, a property map drives map
// construction with any further arguments ignored, and array shapes that
// cannot carry a response (empty, callable pairs, sequential or
// numeric-keyed input) are rejected with their dedicated shape errors.
//
// HistoryEntry is one recorded transition. It captures the context envelope
// verbatim, class name plus raw payload, without hydrating it; replay decides
// later whether a context needs to be rebuilt.
//
// Timeline folds a model's history entries into chronological state
// occupancy, and AnalyzeStateTimes aggregates a timeline into per-state
// totals. Both are pure and operate on data already in memory.
//
// # Usage
//
//	resp, err := replay.NewStatisticsResponse(true,
//		replay.WithData(map[string]any{"states": 4}),
//		replay.WithMessage("Statistics generated"),
//	)
//
//	timeline := replay.Timeline(entries)
//	analysis := replay.AnalyzeStateTimes(timeline)
//
// # Error Handling
//
// Field-level failures are attrs.FieldError values; rejected payload shapes
// are attrs.ShapeError values. The analysis records additionally reject
// empty payloads with an EmptyPayloadError naming the type under
// construction. Construction either returns a fully populated record or an
// error, never both.
package replay
