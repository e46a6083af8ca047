// Package client provides the generation-service clients for the insights domain.
package client

import "context"

// Image is an input image for a multimodal generation request.
type Image struct {
	Label    string
	MIMEType string
	Data     []byte
}

// Request is a single generation call: one prompt plus optional images.
type Request struct {
	Prompt string
	Images []Image
}

// Generator is the port to the external text-and-vision generation service.
// Implementations return the raw response text; extracting and validating
// the structured payload is the synthesizer's responsibility.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
