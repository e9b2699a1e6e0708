package cli

import (
	"strings"
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/temirov/wtx/cmd/cli/worktrees"
)

// nestConfigurationValues converts dotted default keys into the nested shape
// the configuration structs decode from.
func nestConfigurationValues(flatValues map[string]any) map[string]any {
	nestedValues := map[string]any{}
	for flatKey, value := range flatValues {
		segments := strings.Split(flatKey, ".")
		currentLevel := nestedValues
		for segmentIndex, segment := range segments {
			if segmentIndex == len(segments)-1 {
				currentLevel[segment] = value
				continue
			}
			childLevel, exists := currentLevel[segment].(map[string]any)
			if !exists {
				childLevel = map[string]any{}
				currentLevel[segment] = childLevel
			}
			currentLevel = childLevel
		}
	}
	return nestedValues
}

func TestEmbeddedConfigurationMatchesProgrammaticDefaults(testInstance *testing.T) {
	embeddedConfiguration, decodeError := DecodeEmbeddedConfiguration()
	require.NoError(testInstance, decodeError)

	defaultValues := nestConfigurationValues(worktrees.DefaultConfigurationValues(toolsConfigurationKeyConstant))
	var programmaticConfiguration ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(defaultValues, &programmaticConfiguration))

	require.Equal(testInstance, programmaticConfiguration.Tools, embeddedConfiguration.Tools)
	require.Equal(testInstance, "info", embeddedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "console", embeddedConfiguration.Common.LogFormat)
}

func TestEmbeddedConfigurationContentAvailable(testInstance *testing.T) {
	configurationContent, configurationType := EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, configurationContent)
	require.Equal(testInstance, configurationTypeConstant, configurationType)
}

func TestNewApplicationRegistersWorktreeCommands(testInstance *testing.T) {
	application := NewApplication()
	require.NotNil(testInstance, application.rootCommand)

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}
	require.True(testInstance, registeredCommandNames["start"])
	require.True(testInstance, registeredCommandNames["finish"])
}

func TestInitializeConfigurationAppliesFlagOverrides(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "structured"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}
