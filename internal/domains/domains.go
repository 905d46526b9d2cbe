// Package domains models the target data representations an inference
// model can be trained on. Only the uniform frequency domain is
// implemented; any other declared kind is rejected at construction.
package domains

import (
	"fmt"

	"gwprep/internal/config"
)

// Kind names a domain representation.
type Kind string

// KindFrequency is the sole supported domain kind.
const KindFrequency Kind = "FrequencyDomain"

// NotImplementedError reports a domain kind the pipeline cannot handle.
type NotImplementedError struct {
	Kind string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("unknown domain type %q", e.Kind)
}

// Domain describes a data representation's native array layout.
type Domain interface {
	// Kind identifies the representation.
	Kind() Kind
	// Size is the number of bins in the native layout.
	Size() int
	// SampleFrequencies returns the frequency of every bin in Hz.
	SampleFrequencies() []float64
}

// FromMetadata builds the domain object declared in model metadata.
func FromMetadata(md *config.ModelMetadata) (Domain, error) {
	return FromSpec(md.DatasetSettings.Domain)
}

// FromSpec builds a domain object from its declaration. Unknown kinds fail
// with a NotImplementedError.
func FromSpec(spec config.DomainSpec) (Domain, error) {
	switch Kind(spec.Type) {
	case KindFrequency:
		return NewFrequencyDomain(spec.FMin, spec.FMax, spec.DeltaF, spec.WindowFactor)
	default:
		return nil, &NotImplementedError{Kind: spec.Type}
	}
}
