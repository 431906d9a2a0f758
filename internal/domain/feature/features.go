package feature

// Feature keys shared with the fuzzy engine and the API payloads.
const (
	KeyPrice       = "price"
	KeyDistance    = "distance"
	KeyPopularity  = "popularity"
	KeyInterest    = "interest"
	KeyStartHour   = "start_hour"
	KeyLength      = "length"
	KeyDescription = "description"
)

// Weights of the diagnostic weighted aggregate.
const (
	aggregateInterestWeight = 0.4
	aggregateDistanceWeight = 0.2
	aggregateTimeWeight     = 0.2
	aggregateBudgetWeight   = 0.2
)

// Features is the fixed-key set of [0,1] match scores produced per event.
// It is the wire contract between the scorer and the fuzzy engine: callers
// must not rescale values before the engine's own clamp.
type Features struct {
	Price      float64 // budget alignment
	Distance   float64 // proximity match
	Popularity float64 // popularity rescaled from 0-100
	Interest   float64 // blended interest match
	StartHour  float64 // preferred-time overlap ratio
	Length     float64 // duration match against history

	// Description is the optional seventh score; valid when HasDescription.
	Description    float64
	HasDescription bool
}

// Map renders the features under their contract keys.
func (f Features) Map() map[string]float64 {
	m := map[string]float64{
		KeyPrice:      f.Price,
		KeyDistance:   f.Distance,
		KeyPopularity: f.Popularity,
		KeyInterest:   f.Interest,
		KeyStartHour:  f.StartHour,
		KeyLength:     f.Length,
	}
	if f.HasDescription {
		m[KeyDescription] = f.Description
	}
	return m
}

// WeightedAggregate is a secondary diagnostic score combining interest,
// proximity, time and budget as 0.4/0.2/0.2/0.2. It is surfaced alongside
// the fuzzy verdict, never fed into it.
func (f Features) WeightedAggregate() float64 {
	return aggregateInterestWeight*f.Interest +
		aggregateDistanceWeight*f.Distance +
		aggregateTimeWeight*f.StartHour +
		aggregateBudgetWeight*f.Price
}
