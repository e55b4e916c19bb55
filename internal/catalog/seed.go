package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lehmann314159/dreamcars/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

var exampleCars = mustParseExamples(seedYAML)

func mustParseExamples(data []byte) []models.Car {
	var cars []models.Car
	if err := yaml.Unmarshal(data, &cars); err != nil {
		panic(fmt.Sprintf("catalog: bad seed data: %v", err))
	}
	return cars
}

// examples returns the seed set with ids just after now, in file order.
func examples(nowMillis int64) []models.Car {
	cars := make([]models.Car, len(exampleCars))
	for i, c := range exampleCars {
		c.ID = nowMillis + int64(i) + 1
		cars[i] = c
	}
	return cars
}
