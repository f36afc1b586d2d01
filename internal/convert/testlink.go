package convert

import "testmorph/internal/jsonval"

// testLinkMapper handles TestLink's testsuites/testsuite/testcase nesting
// (the JSON rendering of its XML export).
type testLinkMapper struct{}

func (testLinkMapper) Map(v jsonval.Value) Document {
	var doc Document
	suites := v.At("testsuites.testsuite")
	for i := 0; i < suites.Len(); i++ {
		ts := suites.Index(i)
		suite := Suite{
			ID:   ts.Field("testsuiteid").Str(),
			Name: ts.Field("name").Str(),
		}
		cases := ts.Field("testcase")
		for j := 0; j < cases.Len(); j++ {
			tc := cases.Index(j)
			c := Case{
				ID:   tc.Field("externalid").Str(),
				Name: tc.Field("name").Str(),
			}
			steps := tc.At("steps.step")
			for k := 0; k < steps.Len(); k++ {
				st := steps.Index(k)
				c.Steps = append(c.Steps, Step{
					Index:    k + 1,
					Action:   st.Field("actions").Str(),
					Expected: st.Field("expectedresults").Str(),
				})
			}
			if s := tc.Field("execution_status").Str(); s != "" {
				c.Execution = &Execution{Status: NormalizeStatus(s)}
			}
			suite.Cases = append(suite.Cases, c)
		}
		doc.Suites = append(doc.Suites, suite)
	}
	return doc
}
