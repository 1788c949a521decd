package placeholdertests

import (
	"fmt"
	"strconv"

	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/rest-contract-tests/jsonpath"
	"github.com/launchdarkly/rest-contract-tests/restharness"
)

// Scenario is one contract test: a request, and the checks to make against its response.
type Scenario struct {
	// Group is the name of the parent test, such as "posts".
	Group string
	// Name is the name of the test within its group.
	Name string
	// Request is applied to the environment's RequestSpec to build the request.
	Request []restharness.Override
	// Check makes assertions against the response.
	Check func(t *T, x *restharness.Expectation)
}

// Scenarios is the whole suite, in the order it runs.
var Scenarios = []Scenario{
	{
		Group:   "posts",
		Name:    "list is ordered by id",
		Request: []restharness.Override{restharness.Get("/posts")},
		Check: func(t *T, x *restharness.Expectation) {
			x.Status(200).FieldsOrdered(pathID)
		},
	},
	{
		Group: "posts",
		Name:  "get by id ignores user filter",
		Request: []restharness.Override{
			restharness.Get("/posts/99"),
			restharness.Param("userId", "10"),
		},
		Check: func(t *T, x *restharness.Expectation) {
			x.Status(200).FieldNonEmpty(pathTitle).FieldNonEmpty(pathBody)
		},
	},
	{
		Group:   "posts",
		Name:    "get unknown id is not found",
		Request: []restharness.Override{restharness.Get("/posts/150")},
		Check: func(t *T, x *restharness.Expectation) {
			x.Status(404)
		},
	},
	{
		Group: "posts",
		Name:  "create echoes fields",
		Request: []restharness.Override{
			restharness.Post("/posts"),
			restharness.JSONBody(newPost),
		},
		Check: func(t *T, x *restharness.Expectation) {
			x.Status(201).
				Field(pathTitle, "AlexExample").
				Field(pathBody, "example_body").
				Field(pathUserID, "1").
				Field(pathID, "101")
		},
	},
	postExists(1),
	postExists(50),
	postExists(100),
	postMissing(101),
	postMissing(500),
	{
		Group:   "users",
		Name:    "list contains fixture user",
		Request: []restharness.Override{restharness.Get("/users")},
		Check:   userAt(4),
	},
	{
		Group: "users",
		Name:  "filter by id returns fixture user",
		Request: []restharness.Override{
			restharness.Get("/users"),
			restharness.Param("id", "5"),
		},
		Check: userAt(0),
	},
	{
		Group: "users",
		Name:  "fixture fields survive re-serialization",
		Request: []restharness.Override{
			restharness.Get("/users"),
			restharness.Param("id", "5"),
		},
		Check: checkReserialized,
	},
}

func postExists(id int) Scenario {
	return Scenario{
		Group:   "posts",
		Name:    fmt.Sprintf("get post %d", id),
		Request: []restharness.Override{restharness.Get("/posts/" + strconv.Itoa(id))},
		Check: func(t *T, x *restharness.Expectation) {
			x.Status(200).
				Field(pathID, strconv.Itoa(id)).
				FieldNonEmpty(pathTitle).
				FieldNonEmpty(pathBody)
		},
	}
}

func postMissing(id int) Scenario {
	return Scenario{
		Group:   "posts",
		Name:    fmt.Sprintf("post %d is not found", id),
		Request: []restharness.Override{restharness.Get("/posts/" + strconv.Itoa(id))},
		Check: func(t *T, x *restharness.Expectation) {
			x.Status(404)
		},
	}
}

// userAt checks every fixture field of the record at the given position of a user list.
func userAt(index int) func(*T, *restharness.Expectation) {
	return func(t *T, x *restharness.Expectation) {
		x.Status(200)
		for _, f := range chelseyDietrich {
			x.Field(f.path.Index(index), f.expected)
		}
	}
}

func checkReserialized(t *T, x *restharness.Expectation) {
	x.Status(200)
	doc := x.Document()
	if doc == nil {
		return
	}
	again, err := jsonpath.ParseDocument(doc.JSON())
	require.NoError(t, err, "re-serialized document could not be parsed")
	for _, f := range chelseyDietrich {
		p := f.path.Index(0)
		first := x.Extract(p)
		second, err := again.Resolve(p)
		if err != nil {
			x.Equals(nil, err, "re-extracting "+p.String())
			continue
		}
		x.Equals(first.String(), second.String(), "re-extracted "+p.String())
		x.Equals(first.Value().Type(), second.Value().Type(), "type of re-extracted "+p.String())
	}
}

// Run runs the scenario as a subtest of t.
func (s Scenario) Run(t *T) {
	t.Run(s.Name, func(t *T) {
		resp, desc := t.Send(s.Request...)
		t.Defer(func() {
			if t.Failed() {
				t.Debug("reproduce with: %s", restharness.CurlCommand(desc))
			}
		})
		s.Check(t, t.Expect(resp, desc))
	})
}
