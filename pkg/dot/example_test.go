package dot_test

import (
	"fmt"

	"github.com/matzehuels/dotkit/pkg/attr"
	"github.com/matzehuels/dotkit/pkg/dot"
	"github.com/matzehuels/dotkit/pkg/model"
)

func ExampleSerialize() {
	db := model.NewNode("db").With(attr.ShapeCylinder)
	api := model.NewNode("api").LinkTo(db.Compass(model.North))
	g := model.NewGraph("svc").Directed().With(attr.LeftToRight).WithNodes(api)

	fmt.Println(dot.Serialize(g))
	// Output:
	// digraph "svc" {
	// graph ["rankdir"="LR"]
	// "db" ["shape"="cylinder"]
	// "api" -> "db":n
	// }
}
