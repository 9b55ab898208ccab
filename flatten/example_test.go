package flatten_test

import (
	"fmt"
	"log"

	"github.com/erraggy/inputsets/flatten"
	"github.com/erraggy/inputsets/fqn"
	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/tree"
)

// ExampleFlatten prints every leaf of a document with its path. Variables
// are addressed by name rather than by position.
func ExampleFlatten() {
	src := `pipeline:
  timeout: 10m
  variables:
    - name: region
      type: String
      value: us-east-1
`
	res, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	if err != nil {
		log.Fatal(err)
	}

	flat, err := flatten.Flatten(res.Document)
	if err != nil {
		log.Fatal(err)
	}
	for p, v := range flat.Map.All() {
		fmt.Printf("%s = %s\n", p, v.Text())
	}
	// Output:
	// pipeline.timeout = 10m
	// pipeline.variables.[name:region].name = region
	// pipeline.variables.[name:region].type = String
	// pipeline.variables.[name:region].value = us-east-1
}

// ExampleBuild rebuilds a document from a filtered map. The variable keeps
// its name and type so it can be identified again.
func ExampleBuild() {
	src := `pipeline:
  timeout: 10m
  variables:
    - name: region
      type: String
      value: us-east-1
`
	res, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	if err != nil {
		log.Fatal(err)
	}
	flat, err := flatten.Flatten(res.Document)
	if err != nil {
		log.Fatal(err)
	}

	values := flat.Map.Filter(func(p fqn.Path, _ *tree.Node) bool {
		return p.Last().IsKey("value")
	})
	out, err := parser.MarshalJSON(flatten.Build(values, flat.Root))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
	// Output:
	// {
	//   "pipeline": {
	//     "variables": [
	//       {
	//         "name": "region",
	//         "type": "String",
	//         "value": "us-east-1"
	//       }
	//     ]
	//   }
	// }
}
