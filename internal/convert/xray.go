package convert

import "testmorph/internal/jsonval"

// xrayMapper handles JIRA/Xray exports: test issues plus testExecutions
// carrying per-test run statuses.
type xrayMapper struct{}

func (xrayMapper) Map(v jsonval.Value) Document {
	doc := Document{Project: v.Field("project").Str()}

	// Latest status per test key, from the execution list.
	statusByKey := make(map[string]Status)
	execs := v.Field("testExecutions")
	for i := 0; i < execs.Len(); i++ {
		tests := execs.Index(i).Field("tests")
		for j := 0; j < tests.Len(); j++ {
			t := tests.Index(j)
			if key := t.Field("testKey").Str(); key != "" {
				statusByKey[key] = NormalizeStatus(t.Field("status").Str())
			}
		}
	}

	suite := Suite{Name: "issues"}
	issues := v.Field("issues")
	for i := 0; i < issues.Len(); i++ {
		issue := issues.Index(i)
		key := issue.Field("key").Str()
		c := Case{
			ID:   key,
			Name: issue.At("fields.summary").Str(),
		}
		if st, ok := statusByKey[key]; ok {
			c.Execution = &Execution{Status: st}
		}
		suite.Cases = append(suite.Cases, c)
	}
	if len(suite.Cases) > 0 {
		doc.Suites = []Suite{suite}
	}
	return doc
}
