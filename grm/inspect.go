package grm

// Report is the result of a non-throwing structural inspection, for tooling
// that wants a verdict rather than an error chain.
type Report struct {
	// Valid is true when the header parsed cleanly.
	Valid bool

	// SchemaID extracted from the header, when parsable.
	SchemaID string

	// Signed is true when the signature slot carries non-zero bytes.
	Signed bool

	// PayloadSize is the number of bytes following the header.
	PayloadSize int

	// Err holds the parse error when Valid is false.
	Err error
}

// Inspect examines container bytes and reports their structure without
// failing. Payload contents are not decoded.
func Inspect(data []byte) Report {
	h, n, err := ParseHeader(data)
	if err != nil {
		return Report{Valid: false, Err: err}
	}
	return Report{
		Valid:       true,
		SchemaID:    h.SchemaID,
		Signed:      h.Signature != nil,
		PayloadSize: len(data) - n,
	}
}
