package attr_test

import (
	"fmt"

	"github.com/matzehuels/dotkit/pkg/attr"
)

func ExampleFrom() {
	a, err := attr.From("label", "db", attr.ShapeBox, "label", "database")
	if err != nil {
		panic(err)
	}
	for k, v := range a.All() {
		fmt.Printf("%s=%s\n", k, v)
	}
	// Output:
	// label=database
	// shape=box
}

func ExampleFrom_error() {
	_, err := attr.From("color", "red", "shape")
	fmt.Println(err)
	// Output:
	// INVALID_ARGUMENT: last key 'shape' has no value
}
