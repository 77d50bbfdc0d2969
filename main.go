package main

import (
	"github.com/researchagg/hostprep/cmd"
	"github.com/researchagg/hostprep/pkg/logger"
)

var version = "1.0.0"

func main() {
	if err := cmd.Execute(version); err != nil {
		logger.Fatalf("Error: %v", err)
	}
}
