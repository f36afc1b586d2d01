package convert

import "testmorph/internal/jsonval"

// zephyrMapper handles Zephyr Scale/Squad style exports: a testCase with
// an execution inside a cycle.
type zephyrMapper struct{}

func (zephyrMapper) Map(v jsonval.Value) Document {
	doc := Document{Project: v.Field("project").Str()}

	tc := v.Field("testCase")
	exec := v.Field("execution")
	cycle := v.Field("cycle")
	if tc.IsMissing() && exec.IsMissing() {
		return doc
	}

	c := Case{
		ID:   tc.Field("key").Str(),
		Name: tc.Field("name").Str(),
	}
	steps := tc.Field("testScript").Field("steps")
	for i := 0; i < steps.Len(); i++ {
		s := steps.Index(i)
		c.Steps = append(c.Steps, Step{
			Index:    i + 1,
			Action:   s.Field("description").Str(),
			Expected: s.Field("expectedResult").Str(),
		})
	}
	if !exec.IsMissing() {
		c.Execution = &Execution{
			Status:     NormalizeStatus(exec.Field("status").Str()),
			ExecutedAt: exec.Field("executedOn").Str(),
			CycleID:    cycle.Field("cycleId").Str(),
		}
	}

	doc.Suites = []Suite{{
		ID:    cycle.Field("cycleId").Str(),
		Name:  cycle.Field("name").Str(),
		Cases: []Case{c},
	}}
	return doc
}
