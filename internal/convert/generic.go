package convert

import "testmorph/internal/jsonval"

// genericMapper is the lowest-common-denominator fallback for documents
// the detector could not attribute to a specific tool.
type genericMapper struct{}

func (genericMapper) Map(v jsonval.Value) Document {
	doc := Document{Project: v.Field("project").Str()}

	suite := Suite{Name: v.Field("name").Str()}
	tests := v.Field("tests")
	for i := 0; i < tests.Len(); i++ {
		t := tests.Index(i)
		c := Case{
			ID:   t.Field("id").Str(),
			Name: t.Field("name").Str(),
		}
		if s := t.Field("status").Str(); s != "" {
			c.Execution = &Execution{Status: NormalizeStatus(s)}
		}
		suite.Cases = append(suite.Cases, c)
	}
	if len(suite.Cases) == 0 {
		// Single-test shape: name/status at the root.
		if n := v.Field("name").Str(); n != "" {
			c := Case{Name: n}
			if s := v.Field("status").Str(); s != "" {
				c.Execution = &Execution{Status: NormalizeStatus(s)}
			}
			suite.Name = ""
			suite.Cases = []Case{c}
		}
	}
	if len(suite.Cases) > 0 {
		doc.Suites = []Suite{suite}
	}
	return doc
}
