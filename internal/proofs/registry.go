package proofs

import "github.com/roach88/nrcfold/internal/harness"

// ruleWidth is the width of banners and table rules in every report.
const ruleWidth = 70

// All returns the validation scenarios in registration order.
func All() []harness.Scenario {
	return []harness.Scenario{
		gizaResonance(),
		modularExclusion(),
		entropyCollapse(),
		phiIdentitiesScenario(),
		qrtExpansion(),
		mstLyapunov(),
		tuptExclusion(),
		pisanoPeriodScenario(),
		navierStokesDamping(),
		shardFolding(),
	}
}

// Names returns the scenario names in registration order.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
