package merger_test

import (
	"fmt"
	"log"

	"github.com/erraggy/inputsets/merger"
	"github.com/erraggy/inputsets/parser"
	"github.com/erraggy/inputsets/tree"
)

func mustParse(src string) *tree.Node {
	res, err := parser.ParseWithOptions(parser.WithBytes([]byte(src)))
	if err != nil {
		log.Fatal(err)
	}
	return res.Document
}

// ExampleMergeOverrides fills the runtime inputs of a pipeline from an input
// set and keeps the allowed values next to the chosen region.
func ExampleMergeOverrides() {
	base := mustParse(`pipeline:
  timeout: <+input>
  variables:
    - name: region
      type: String
      value: <+input>.allowedValues(us-east-1,eu-west-1)
`)
	inputSet := mustParse(`pipeline:
  timeout: 10m
  variables:
    - name: region
      type: String
      value: eu-west-1
`)

	res, err := merger.MergeOverrides(base, []*tree.Node{inputSet},
		merger.WithAppendValidator(true),
	)
	if err != nil {
		log.Fatal(err)
	}

	out, err := parser.MarshalJSON(res.Document)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(out))
	fmt.Printf("invalid paths: %d\n", len(res.InvalidPaths))
	// Output:
	// {
	//   "pipeline": {
	//     "timeout": "10m",
	//     "variables": [
	//       {
	//         "name": "region",
	//         "type": "String",
	//         "value": "eu-west-1.allowedValues(us-east-1,eu-west-1)"
	//       }
	//     ]
	//   }
	// }
	// invalid paths: 0
}
