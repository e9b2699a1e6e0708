package finish

import (
	"fmt"
	"strings"
)

const (
	mergeStrategyNameConstant           = "merge"
	squashStrategyNameConstant          = "squash"
	fastForwardOnlyStrategyNameConstant = "ff-only"
	invalidStrategyTemplateConstant     = "invalid merge strategy %q (expected one of: %s)"
	strategyNameJoinSeparatorConstant   = ", "
)

// MergeStrategy selects how a feature branch is integrated into the target branch.
type MergeStrategy string

// Supported merge strategies.
const (
	StrategyMerge           MergeStrategy = MergeStrategy(mergeStrategyNameConstant)
	StrategySquash          MergeStrategy = MergeStrategy(squashStrategyNameConstant)
	StrategyFastForwardOnly MergeStrategy = MergeStrategy(fastForwardOnlyStrategyNameConstant)
)

// MergeStrategyNames lists the supported strategy names in presentation order.
func MergeStrategyNames() []string {
	return []string{mergeStrategyNameConstant, squashStrategyNameConstant, fastForwardOnlyStrategyNameConstant}
}

// InvalidStrategyError reports a strategy value outside the supported set.
type InvalidStrategyError struct {
	Value string
}

// Error describes the invalid strategy including the accepted values.
func (invalidStrategy InvalidStrategyError) Error() string {
	return fmt.Sprintf(invalidStrategyTemplateConstant, invalidStrategy.Value, strings.Join(MergeStrategyNames(), strategyNameJoinSeparatorConstant))
}

// ParseMergeStrategy validates a raw strategy value. An empty value selects the
// merge strategy.
func ParseMergeStrategy(rawValue string) (MergeStrategy, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	switch normalizedValue {
	case "", mergeStrategyNameConstant:
		return StrategyMerge, nil
	case squashStrategyNameConstant:
		return StrategySquash, nil
	case fastForwardOnlyStrategyNameConstant:
		return StrategyFastForwardOnly, nil
	default:
		return "", InvalidStrategyError{Value: rawValue}
	}
}
