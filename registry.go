package zxingraster

import "fmt"

// encoderFactory is a function that creates an Encoder.
type encoderFactory func() Encoder

var encoderFactories = map[Symbology]encoderFactory{}

// RegisterEncoder registers an encoder factory for the given symbology.
// Encoder packages call it from init.
func RegisterEncoder(symbology Symbology, factory func() Encoder) {
	encoderFactories[symbology] = factory
}

// EncoderFor returns a new encoder for the symbology.
func EncoderFor(symbology Symbology) (Encoder, error) {
	factory, ok := encoderFactories[symbology]
	if !ok {
		return nil, fmt.Errorf("no encoder registered for symbology %s: %w", symbology, ErrConfiguration)
	}
	return factory(), nil
}
