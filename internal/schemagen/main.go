// Command schemagen writes the JSON schema of the adastra Configuration kind.
// It is run by go generate from api/v1beta1/configs.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/adastra/api/v1beta1/configs"
	"github.com/macropower/adastra/pkg/schema"
)

var (
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
	apiDir  = flag.String("api", "..", "Directory of the api/v1beta1 package")
)

func main() {
	flag.Parse()

	gen := schema.NewGenerator(configs.New(), schema.Comments{
		Base: "github.com/macropower/adastra/api/v1beta1",
		Dir:  *apiDir,
	})

	b, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, b, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
