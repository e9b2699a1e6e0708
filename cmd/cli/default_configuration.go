package cli

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const embeddedConfigurationDecodeErrorTemplateConstant = "failed to decode embedded configuration: %w"

//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns the embedded default configuration data and type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	duplicatedContent := make([]byte, len(embeddedDefaultConfigurationContent))
	copy(duplicatedContent, embeddedDefaultConfigurationContent)
	return duplicatedContent, configurationTypeConstant
}

// DecodeEmbeddedConfiguration parses the embedded defaults into the application
// configuration shape, keeping the shipped YAML and the programmatic defaults
// verifiably in sync.
func DecodeEmbeddedConfiguration() (ApplicationConfiguration, error) {
	var decodedConfiguration ApplicationConfiguration
	if decodeError := yaml.Unmarshal(embeddedDefaultConfigurationContent, &decodedConfiguration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(embeddedConfigurationDecodeErrorTemplateConstant, decodeError)
	}
	return decodedConfiguration, nil
}
