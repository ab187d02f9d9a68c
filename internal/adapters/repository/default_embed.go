package repository

import _ "embed"

// DefaultDataset is the embedded dataset used when no path is configured.
//
//go:embed default_dataset.yaml
var DefaultDataset []byte
