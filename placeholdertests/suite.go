package placeholdertests

import (
	"github.com/launchdarkly/rest-contract-tests/framework"
	"github.com/launchdarkly/rest-contract-tests/restharness"
)

// RunTestSuite runs all of the Scenarios against the service described by env.
func RunTestSuite(
	env Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if env.Executor == nil {
		env.Executor = restharness.NewExecutor()
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, env: &env}
		for _, group := range groups(Scenarios) {
			t.Run(group.name, func(t *T) {
				for _, s := range group.scenarios {
					s.Run(t)
				}
			})
		}
	})
}

type scenarioGroup struct {
	name      string
	scenarios []Scenario
}

// groups collects scenarios by Group, keeping the order in which groups first appear.
func groups(scenarios []Scenario) []scenarioGroup {
	var out []scenarioGroup
	index := map[string]int{}
	for _, s := range scenarios {
		i, ok := index[s.Group]
		if !ok {
			i = len(out)
			index[s.Group] = i
			out = append(out, scenarioGroup{name: s.Group})
		}
		out[i].scenarios = append(out[i].scenarios, s)
	}
	return out
}
