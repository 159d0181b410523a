package cmd

import (
	"cmp"
	"slices"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
)

func autocompleteScenarioName(names []string, s string) []string {
	if s == "" {
		return names
	}

	matches := fuzzy.RankFindNormalizedFold(s, names)
	slices.SortStableFunc(matches, func(a, b fuzzy.Rank) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	suggestions := make([]string, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, m.Target)
	}

	return suggestions
}

func validArgsScenarios(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	names := slices.DeleteFunc(cfg.Names(), func(name string) bool {
		return slices.Contains(args, name)
	})

	return autocompleteScenarioName(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}
