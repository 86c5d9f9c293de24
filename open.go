package extractor

// Open reads a PPTX file from disk and returns the flattened playback
// model together with the warnings recorded while building it.
// This is a convenience wrapper around NewReader + Read.
func Open(path string) (*Deck, *Warnings, error) {
	return NewReader().Read(path)
}
