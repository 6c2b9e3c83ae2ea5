package model

// Size is a target width and height in pixels.
type Size struct {
	Width  int
	Height int
}

// ProcessingConfig describes which stages the pipeline applies to every image
// of a batch. It is built once at startup and passed by value.
type ProcessingConfig struct {
	Square bool   // pad non-square images to square
	Resize *Size  // nil means "do not resize"
	Filter string // resampling kernel name, empty means the default
}

// Job pairs a source image with the path its processed version is written to.
type Job struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
}
