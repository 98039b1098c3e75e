package models

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const modelFileName = ".protokoll/models.json"

// ModelConfig describes one configured completion model. Extra stores vendor
// specific additional parameters (e.g. the Ark region).
type ModelConfig struct {
	ID       string                 `json:"id"`
	Provider string                 `json:"provider"`
	Model    string                 `json:"model"`    // Model identifier
	Name     string                 `json:"name"`     // Display name
	BaseUrl  string                 `json:"base_url"` // API endpoint
	ApiKey   string                 `json:"api_key"`  // API key
	Extra    map[string]interface{} `json:"extra"`    // Vendor-specific fields
}

func (m *ModelConfig) Normalize() {
	if m.Extra == nil {
		m.Extra = map[string]interface{}{}
	}
}

// Get model storage file path
func getModelFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return modelFileName // fallback
	}
	return filepath.Join(home, modelFileName)
}

// LoadModels reads the configured model list.
func LoadModels() ([]*ModelConfig, error) {
	path := getModelFilePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return []*ModelConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var models []*ModelConfig
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, err
	}
	for _, m := range models {
		if m != nil {
			m.Normalize()
		}
	}
	return models, nil
}

// SaveModels writes the configured model list.
func SaveModels(models []*ModelConfig) error {
	path := getModelFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	for _, m := range models {
		if m != nil {
			m.Normalize()
		}
	}
	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SupportedModelProviders supported model providers
var SupportedModelProviders = map[string]struct{}{
	"openai":    {},
	"deepseek":  {},
	"anthropic": {},
	"google":    {},
	"ark":       {},
	"ollama":    {},
	"qianfan":   {},
	"qwen":      {},
	"custom":    {},
}
