package placeholdertests

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/launchdarkly/rest-contract-tests/jsonpath"
)

var (
	pathID     = jsonpath.MustParse("id")
	pathTitle  = jsonpath.MustParse("title")
	pathBody   = jsonpath.MustParse("body")
	pathUserID = jsonpath.MustParse("userId")
)

// newPost is the body sent by the create-post test. All of its fields are strings, and the
// service is expected to echo them back unchanged.
var newPost = ldvalue.ObjectBuild().
	Set("title", ldvalue.String("AlexExample")).
	Set("body", ldvalue.String("example_body")).
	Set("userId", ldvalue.String("1")).
	Set("id", ldvalue.String("101")).
	Build()

type fixtureField struct {
	path     jsonpath.Path
	expected string
}

// chelseyDietrich is user 5, the fifth record of GET /users.
var chelseyDietrich = []fixtureField{
	{jsonpath.MustParse("name"), "Chelsey Dietrich"},
	{jsonpath.MustParse("username"), "Kamren"},
	{jsonpath.MustParse("email"), "Lucio_Hettinger@annie.ca"},
	{jsonpath.MustParse("address.street"), "Skiles Walks"},
	{jsonpath.MustParse("address.suite"), "Suite 351"},
	{jsonpath.MustParse("address.city"), "Roscoeview"},
	{jsonpath.MustParse("address.zipcode"), "33263"},
	{jsonpath.MustParse("address.geo.lat"), "-31.8129"},
	{jsonpath.MustParse("address.geo.lng"), "62.5342"},
	{jsonpath.MustParse("phone"), "(254)954-1289"},
	{jsonpath.MustParse("website"), "demarco.info"},
	{jsonpath.MustParse("company.name"), "Keebler LLC"},
	{jsonpath.MustParse("company.catchPhrase"), "User-centric fault-tolerant solution"},
	{jsonpath.MustParse("company.bs"), "revolutionize end-to-end systems"},
}
