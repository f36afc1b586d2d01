package convert

import (
	"strconv"

	"testmorph/internal/jsonval"
)

// testRailMapper handles TestRail API-style exports: suites, sections and
// cases with custom_steps, optionally runs/tests with numeric status ids.
type testRailMapper struct{}

func (testRailMapper) Map(v jsonval.Value) Document {
	doc := Document{Project: v.Field("project").Str()}

	// Numeric status per case id, from run results.
	statusByCase := make(map[string]Status)
	runs := v.Field("runs")
	for i := 0; i < runs.Len(); i++ {
		tests := runs.Index(i).Field("tests")
		for j := 0; j < tests.Len(); j++ {
			t := tests.Index(j)
			caseID := numStr(t.Field("case_id"))
			if caseID == "" {
				continue
			}
			if st := t.Field("status_id"); st.Kind() == jsonval.Number {
				statusByCase[caseID] = statusFromTestRailID(st.Num())
			}
		}
	}

	suite := Suite{Name: "cases"}
	if suites := v.Field("suites"); suites.Len() > 0 {
		first := suites.Index(0)
		suite.ID = numStr(first.Field("id"))
		suite.Name = first.Field("name").Str()
	}

	cases := v.Field("cases")
	for i := 0; i < cases.Len(); i++ {
		tc := cases.Index(i)
		id := numStr(tc.Field("id"))
		c := Case{
			ID:   id,
			Name: tc.Field("title").Str(),
		}
		if steps := tc.Field("custom_steps").Str(); steps != "" {
			c.Steps = []Step{{Index: 1, Action: steps, Expected: tc.Field("custom_expected").Str()}}
		}
		if st, ok := statusByCase[id]; ok {
			c.Execution = &Execution{Status: st}
		}
		suite.Cases = append(suite.Cases, c)
	}
	if len(suite.Cases) > 0 || suite.ID != "" {
		doc.Suites = []Suite{suite}
	}
	return doc
}

// numStr renders a JSON number as its integer string form, or "" for
// anything else. TestRail ids are numeric; canonical ids are strings.
func numStr(v jsonval.Value) string {
	switch v.Kind() {
	case jsonval.Number:
		return strconv.FormatInt(int64(v.Num()), 10)
	case jsonval.String:
		return v.Str()
	default:
		return ""
	}
}
