package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/odenysenko/postlens/internal/model"
)

// ReadKeywordConfig reads a keyword dictionary document from a JSON file.
// Every category in the document is optional; unknown categories are ignored.
func ReadKeywordConfig(path string) (*model.KeywordConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords: %w", err)
	}

	var cfg model.KeywordConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse keywords: %w", err)
	}

	return &cfg, nil
}
